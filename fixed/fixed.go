// Package fixed implements the signed 16.16 fixed-point scalar used for world
// positions, and the 2D vector built on top of it.
//
// Arithmetic saturates at the int32 range instead of wrapping, and products use
// 64-bit intermediates so no precision is lost before the final shift.
package fixed

import (
	"math"
	"strconv"
)

// FractBits is the number of fractional bits.
const FractBits = 16

const one = 1 << FractBits

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

const (
	Zero    Fixed = 0
	Epsilon Fixed = 1
	Max     Fixed = math.MaxInt32
	Min     Fixed = math.MinInt32
)

func FromInt(n int) Fixed       { return saturate(int64(n) << FractBits) }
func FromRaw(raw int32) Fixed   { return Fixed(raw) }
func FromFloat(f float64) Fixed { return saturateFloat(math.Round(f * one)) }

// FromFraction returns num/den, truncated towards zero.
func FromFraction(num, den int) Fixed {
	return saturate((int64(num) << FractBits) / int64(den))
}

func (f Fixed) Raw() int32       { return int32(f) }
func (f Fixed) ToFloat() float64 { return float64(f) / one }
func (f Fixed) IsZero() bool     { return f == 0 }

// ToIntRoundToNegInfinity returns floor(f).
func (f Fixed) ToIntRoundToNegInfinity() int { return int(f >> FractBits) }

// ToIntRoundToZero returns f truncated towards zero.
func (f Fixed) ToIntRoundToZero() int {
	if f >= 0 {
		return int(f >> FractBits)
	}
	return -int((-int64(f)) >> FractBits)
}

// ToIntRoundToNearest rounds half away from negative infinity.
func (f Fixed) ToIntRoundToNearest() int {
	return int((int64(f) + one/2) >> FractBits)
}

func (f Fixed) Add(g Fixed) Fixed { return saturate(int64(f) + int64(g)) }
func (f Fixed) Sub(g Fixed) Fixed { return saturate(int64(f) - int64(g)) }
func (f Fixed) Neg() Fixed        { return saturate(-int64(f)) }

// Multiply returns f*g using a 64-bit intermediate.
func (f Fixed) Multiply(g Fixed) Fixed {
	return saturate((int64(f) * int64(g)) >> FractBits)
}

// Div returns f/g. Division by zero saturates towards the sign of f.
func (f Fixed) Div(g Fixed) Fixed {
	if g == 0 {
		switch {
		case f > 0:
			return Max
		case f < 0:
			return Min
		}
		return Zero
	}
	return saturate((int64(f) << FractBits) / int64(g))
}

func (f Fixed) MulInt(n int) Fixed { return saturate(int64(f) * int64(n)) }

func (f Fixed) DivInt(n int) Fixed {
	if n == 0 {
		return f.Div(0)
	}
	return saturate(int64(f) / int64(n))
}

func (f Fixed) Absolute() Fixed {
	if f < 0 {
		return f.Neg()
	}
	return f
}

func (f Fixed) String() string {
	return strconv.FormatFloat(f.ToFloat(), 'f', -1, 64)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi Fixed) Fixed {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Min2(a, b Fixed) Fixed {
	if a < b {
		return a
	}
	return b
}

func Max2(a, b Fixed) Fixed {
	if a > b {
		return a
	}
	return b
}

func saturate(v int64) Fixed {
	if v > math.MaxInt32 {
		return Max
	}
	if v < math.MinInt32 {
		return Min
	}
	return Fixed(v)
}

func saturateFloat(v float64) Fixed {
	if v >= math.MaxInt32 {
		return Max
	}
	if v <= math.MinInt32 {
		return Min
	}
	return Fixed(v)
}
