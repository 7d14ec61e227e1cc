package goal

import "github.com/pdrpinto/longpath/fixed"

// PointIsInSquare reports whether point, relative to the square's center, is
// inside or on the edge of the square with unit axes u, v and the given
// half-size.
func PointIsInSquare(point, u, v, halfSize fixed.Vector2D) bool {
	return point.Dot(u).Absolute() <= halfSize.X && point.Dot(v).Absolute() <= halfSize.Y
}

// DistanceToSquare returns the distance from point to the square's edge.
// Points inside get the distance to the nearest edge.
func DistanceToSquare(point, u, v, halfSize fixed.Vector2D) fixed.Fixed {
	du := point.Dot(u).Absolute()
	dv := point.Dot(v).Absolute()
	hw, hh := halfSize.X, halfSize.Y

	switch {
	case du < hw && dv < hh:
		return fixed.Min2(hw.Sub(du), hh.Sub(dv))
	case du < hw:
		return dv.Sub(hh)
	case dv < hh:
		return du.Sub(hw)
	}
	return fixed.NewVector(du.Sub(hw), dv.Sub(hh)).Length()
}

// NearestPointOnSquare returns the point of the square's edge nearest to
// point, relative to the square's center.
func NearestPointOnSquare(point, u, v, halfSize fixed.Vector2D) fixed.Vector2D {
	du := point.Dot(u)
	dv := point.Dot(v)
	hw, hh := halfSize.X, halfSize.Y

	insideU := hw.Neg() < du && du < hw
	insideV := hh.Neg() < dv && dv < hh

	switch {
	case insideU && insideV:
		// Push out through the nearest edge.
		if hw.Sub(du.Absolute()) < hh.Sub(dv.Absolute()) {
			du = signedExtent(du, hw)
		} else {
			dv = signedExtent(dv, hh)
		}
	case insideU:
		dv = signedExtent(dv, hh)
	case insideV:
		du = signedExtent(du, hw)
	default:
		du = signedExtent(du, hw)
		dv = signedExtent(dv, hh)
	}
	return u.Multiply(du).Add(v.Multiply(dv))
}

func signedExtent(value, extent fixed.Fixed) fixed.Fixed {
	if value < 0 {
		return extent.Neg()
	}
	return extent
}
