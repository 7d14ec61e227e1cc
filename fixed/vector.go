package fixed

import "math"

// Vector2D is a 2D vector of fixed-point components. In world space X is the
// x axis and Y the z axis.
type Vector2D struct {
	X, Y Fixed
}

func NewVector(x, y Fixed) Vector2D { return Vector2D{X: x, Y: y} }

func (v Vector2D) Add(o Vector2D) Vector2D   { return Vector2D{v.X.Add(o.X), v.Y.Add(o.Y)} }
func (v Vector2D) Sub(o Vector2D) Vector2D   { return Vector2D{v.X.Sub(o.X), v.Y.Sub(o.Y)} }
func (v Vector2D) Neg() Vector2D             { return Vector2D{v.X.Neg(), v.Y.Neg()} }
func (v Vector2D) Multiply(s Fixed) Vector2D { return Vector2D{v.X.Multiply(s), v.Y.Multiply(s)} }
func (v Vector2D) DivInt(n int) Vector2D     { return Vector2D{v.X.DivInt(n), v.Y.DivInt(n)} }
func (v Vector2D) IsZero() bool              { return v.X == 0 && v.Y == 0 }
func (v Vector2D) Perpendicular() Vector2D   { return Vector2D{v.Y, v.X.Neg()} }
func (v Vector2D) Equal(o Vector2D) bool     { return v.X == o.X && v.Y == o.Y }
func (v Vector2D) Floats() (x, y float64)    { return v.X.ToFloat(), v.Y.ToFloat() }

// Dot returns the dot product, computed with 64-bit intermediates.
func (v Vector2D) Dot(o Vector2D) Fixed {
	sum := int64(v.X)*int64(o.X) + int64(v.Y)*int64(o.Y)
	return saturate(sum >> FractBits)
}

// LengthSquared returns X*X + Y*Y in raw (2^-32) units.
func (v Vector2D) LengthSquared() uint64 {
	x, y := int64(v.X), int64(v.Y)
	return uint64(x*x) + uint64(y*y)
}

// Length returns the Euclidean length, rounded down.
func (v Vector2D) Length() Fixed {
	return saturate(int64(isqrt(v.LengthSquared())))
}

// CompareLength returns -1, 0 or +1 as the length of v is less than, equal to
// or greater than l. It is exact: no square root is taken.
func (v Vector2D) CompareLength(l Fixed) int {
	if l < 0 {
		return 1
	}
	lsq := uint64(int64(l) * int64(l))
	vsq := v.LengthSquared()
	switch {
	case vsq < lsq:
		return -1
	case vsq > lsq:
		return 1
	}
	return 0
}

// CompareLengthVector compares the lengths of v and o.
func (v Vector2D) CompareLengthVector(o Vector2D) int {
	a, b := v.LengthSquared(), o.LengthSquared()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Normalize returns v scaled to the given length. The zero vector is returned
// unchanged.
func (v Vector2D) Normalize(length Fixed) Vector2D {
	mag := int64(v.Length())
	if mag == 0 {
		return v
	}
	return Vector2D{
		X: saturate(int64(v.X) * int64(length) / mag),
		Y: saturate(int64(v.Y) * int64(length) / mag),
	}
}

func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
