package navgrid

import "github.com/pdrpinto/longpath/fixed"

// CheckLineMovement reports whether the segment (x0,z0)-(x1,z1) stays on
// navcells passable for mask. A segment may not pass between two diagonally
// adjacent navcells. Running exactly along the edge of an impassable navcell
// is allowed.
//
// A unit standing on an impassable navcell may move off it onto passable
// ground but not back.
func CheckLineMovement(x0, z0, x1, z1 fixed.Fixed, mask PassClass, grid *Grid[NavcellData]) bool {
	w, h := grid.Width(), grid.Height()
	i0, j0 := NearestNavcell(x0, z0, w, h)
	i1, j1 := NearestNavcell(x1, z1, w, h)

	di := sign(i1 - i0)
	dj := sign(j1 - j0)

	i, j := i0, j0
	start := fixed.NewVector(x0, z0)
	perpendicular := fixed.NewVector(x1.Sub(x0), z1.Sub(z0)).Perpendicular()
	onImpassable := !IsPassable(grid.Get(i0, j0), mask)

	for {
		if IsPassable(grid.Get(i, j), mask) {
			onImpassable = false
		} else if !onImpassable {
			return false
		}

		if i == i1 && j == j1 {
			return true
		}

		// Once aligned with the end cell on one axis, walk straight.
		if di == 0 || i == i1 {
			j += dj
			continue
		}
		if dj == 0 || j == j1 {
			i += di
			continue
		}

		// The line leaves through the horizontal edge (z = zj) unless both
		// ends of that edge lie strictly on the same side of it. Passing
		// exactly through a corner moves along j.
		xia := fixed.FromInt(i).Multiply(NavcellSize)
		xib := fixed.FromInt(i + 1).Multiply(NavcellSize)
		zj := fixed.FromInt(j + (dj+1)/2).Multiply(NavcellSize)

		dotA := fixed.NewVector(xia, zj).Sub(start).Dot(perpendicular)
		dotB := fixed.NewVector(xib, zj).Sub(start).Dot(perpendicular)
		if (dotA < 0 && dotB < 0) || (dotA > 0 && dotB > 0) {
			i += di
		} else {
			j += dj
		}
	}
}

func sign(value int) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	}
	return 0
}
