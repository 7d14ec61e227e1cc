// Package goal describes path goals: a point, or a circle or square region
// that a unit must enter (or, for the inverse kinds, leave).
package goal

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/navgrid"
)

var (
	ErrNegativeExtent = errors.New("goal: negative radius or half-extent")
	ErrDegenerateAxis = errors.New("goal: zero-length square axis")
)

type Kind int

const (
	Point Kind = iota
	Circle
	InverseCircle
	Square
	InverseSquare
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Circle:
		return "circle"
	case InverseCircle:
		return "inverse-circle"
	case Square:
		return "square"
	case InverseSquare:
		return "inverse-square"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Goal is a path goal. For circles Hw is the radius. For squares U and V are
// the unit axes and Hw, Hh the half-extents along them. The inverse kinds
// contain everything outside the shape.
//
// MaxDist, when non-zero, is the largest allowed distance between
// consecutive waypoints.
type Goal struct {
	Kind    Kind
	X, Z    fixed.Fixed
	Hw, Hh  fixed.Fixed
	U, V    fixed.Vector2D
	MaxDist fixed.Fixed
}

var (
	axisU = fixed.NewVector(fixed.FromInt(1), fixed.Zero)
	axisV = fixed.NewVector(fixed.Zero, fixed.FromInt(1))
)

func NewPoint(x, z fixed.Fixed) Goal {
	return Goal{Kind: Point, X: x, Z: z, U: axisU, V: axisV}
}

func NewCircle(x, z, radius fixed.Fixed) (Goal, error) {
	return newCircle(Circle, x, z, radius)
}

func NewInverseCircle(x, z, radius fixed.Fixed) (Goal, error) {
	return newCircle(InverseCircle, x, z, radius)
}

func newCircle(kind Kind, x, z, radius fixed.Fixed) (Goal, error) {
	if radius < 0 {
		return Goal{}, fmt.Errorf("%s radius %s: %w", kind, radius, ErrNegativeExtent)
	}
	return Goal{Kind: kind, X: x, Z: z, Hw: radius, Hh: radius, U: axisU, V: axisV}, nil
}

// NewSquare returns a square goal centered on (x, z) whose width axis points
// along u. u is normalized; V is its perpendicular.
func NewSquare(x, z fixed.Fixed, u fixed.Vector2D, halfWidth, halfHeight fixed.Fixed) (Goal, error) {
	return newSquare(Square, x, z, u, halfWidth, halfHeight)
}

func NewInverseSquare(x, z fixed.Fixed, u fixed.Vector2D, halfWidth, halfHeight fixed.Fixed) (Goal, error) {
	return newSquare(InverseSquare, x, z, u, halfWidth, halfHeight)
}

func newSquare(kind Kind, x, z fixed.Fixed, u fixed.Vector2D, halfWidth, halfHeight fixed.Fixed) (Goal, error) {
	if halfWidth < 0 || halfHeight < 0 {
		return Goal{}, fmt.Errorf("%s extents %s x %s: %w", kind, halfWidth, halfHeight, ErrNegativeExtent)
	}
	if u.IsZero() {
		return Goal{}, fmt.Errorf("%s: %w", kind, ErrDegenerateAxis)
	}
	u = u.Normalize(fixed.FromInt(1))
	return Goal{Kind: kind, X: x, Z: z, Hw: halfWidth, Hh: halfHeight, U: u, V: u.Perpendicular()}, nil
}

// WithMaxDist returns a copy of g with MaxDist set.
func (g Goal) WithMaxDist(maxDist fixed.Fixed) Goal {
	g.MaxDist = maxDist
	return g
}

func (g Goal) Center() fixed.Vector2D { return fixed.NewVector(g.X, g.Z) }

// Inverted reports whether the goal is the outside of its shape.
func (g Goal) Inverted() bool { return g.Kind == InverseCircle || g.Kind == InverseSquare }

func (g Goal) String() string {
	switch g.Kind {
	case Point:
		return fmt.Sprintf("point(%s, %s)", g.X, g.Z)
	case Circle, InverseCircle:
		return fmt.Sprintf("%s(%s, %s, r=%s)", g.Kind, g.X, g.Z, g.Hw)
	}
	return fmt.Sprintf("%s(%s, %s, %sx%s)", g.Kind, g.X, g.Z, g.Hw, g.Hh)
}

func (g Goal) halfSize() fixed.Vector2D { return fixed.NewVector(g.Hw, g.Hh) }

// pointNavcell is the navcell containing a point goal, unclamped.
func (g Goal) pointNavcell() (int, int) {
	return g.X.Div(navgrid.NavcellSize).ToIntRoundToNegInfinity(),
		g.Z.Div(navgrid.NavcellSize).ToIntRoundToNegInfinity()
}

// navcellBounds returns the world-space rectangle covered by navcell (i, j).
func navcellBounds(i, j int) (x0, z0, x1, z1 fixed.Fixed) {
	x0 = fixed.FromInt(i).Multiply(navgrid.NavcellSize)
	z0 = fixed.FromInt(j).Multiply(navgrid.NavcellSize)
	return x0, z0, x0.Add(navgrid.NavcellSize), z0.Add(navgrid.NavcellSize)
}

// NavcellContainsGoal reports whether any point of navcell (i, j), edges
// included, satisfies the goal. A point goal is contained only by the
// navcell it lies in.
func (g Goal) NavcellContainsGoal(i, j int) bool {
	if g.Kind == Point {
		gi, gj := g.pointNavcell()
		return gi == i && gj == j
	}
	x0, z0, x1, z1 := navcellBounds(i, j)
	return g.RectContainsGoal(x0, z0, x1, z1)
}

// NavcellRectContainsGoal searches the navcells between (i0, j0) and
// (i1, j1) inclusive, starting from (i0, j0), and returns the first one that
// contains the goal. It is meant for ranges that are a single row or column,
// where the first hit is the one nearest to (i0, j0).
func (g Goal) NavcellRectContainsGoal(i0, j0, i1, j1 int) (gi, gj int, ok bool) {
	iMin, iMax := min(i0, i1), max(i0, i1)
	jMin, jMax := min(j0, j1), max(j0, j1)

	if g.Kind == Point {
		i, j := g.pointNavcell()
		if iMin <= i && i <= iMax && jMin <= j && j <= jMax {
			return i, j, true
		}
		return 0, 0, false
	}

	di, dj := 1, 1
	if i1 < i0 {
		di = -1
	}
	if j1 < j0 {
		dj = -1
	}
	for j := j0; jMin <= j && j <= jMax; j += dj {
		for i := i0; iMin <= i && i <= iMax; i += di {
			if g.NavcellContainsGoal(i, j) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// RectContainsGoal reports whether any point of the world-space rectangle
// [x0, x1] x [z0, z1] satisfies the goal.
func (g Goal) RectContainsGoal(x0, z0, x1, z1 fixed.Fixed) bool {
	center := g.Center()
	switch g.Kind {
	case Point:
		return x0 <= g.X && g.X <= x1 && z0 <= g.Z && g.Z <= z1

	case Circle:
		nearest := fixed.NewVector(fixed.Clamp(g.X, x0, x1), fixed.Clamp(g.Z, z0, z1))
		return nearest.Sub(center).CompareLength(g.Hw) <= 0

	case Square:
		nearest := fixed.NewVector(fixed.Clamp(g.X, x0, x1), fixed.Clamp(g.Z, z0, z1))
		return PointIsInSquare(nearest.Sub(center), g.U, g.V, g.halfSize())

	case InverseCircle, InverseSquare:
		// The shapes are convex, so if every corner is inside, all of the
		// rectangle is.
		for _, corner := range [4]fixed.Vector2D{
			fixed.NewVector(x0, z0), fixed.NewVector(x1, z0),
			fixed.NewVector(x0, z1), fixed.NewVector(x1, z1),
		} {
			if g.outsideShape(corner.Sub(center)) {
				return true
			}
		}
	}
	return false
}

// outsideShape tests an offset from the center for the inverse kinds. The
// boundary itself counts as outside.
func (g Goal) outsideShape(offset fixed.Vector2D) bool {
	if g.Kind == InverseCircle {
		return offset.CompareLength(g.Hw) >= 0
	}
	return !PointIsInSquare(offset, g.U, g.V, g.halfSize())
}

// DistanceToPoint returns the distance from pos to the nearest point
// satisfying the goal, zero if pos already satisfies it.
func (g Goal) DistanceToPoint(pos fixed.Vector2D) fixed.Fixed {
	offset := pos.Sub(g.Center())
	switch g.Kind {
	case Circle:
		if offset.CompareLength(g.Hw) <= 0 {
			return fixed.Zero
		}
		return offset.Length().Sub(g.Hw)
	case InverseCircle:
		if offset.CompareLength(g.Hw) >= 0 {
			return fixed.Zero
		}
		return g.Hw.Sub(offset.Length())
	case Square, InverseSquare:
		inside := PointIsInSquare(offset, g.U, g.V, g.halfSize())
		if (g.Kind == Square) == inside {
			return fixed.Zero
		}
		return DistanceToSquare(offset, g.U, g.V, g.halfSize())
	}
	return offset.Length()
}

// NearestPointOnGoal returns the point of the goal's boundary nearest to pos;
// for a point goal, the point itself.
func (g Goal) NearestPointOnGoal(pos fixed.Vector2D) fixed.Vector2D {
	center := g.Center()
	switch g.Kind {
	case Circle, InverseCircle:
		offset := pos.Sub(center)
		if offset.IsZero() {
			offset = axisU
		}
		return center.Add(offset.Normalize(g.Hw))
	case Square, InverseSquare:
		return center.Add(NearestPointOnSquare(pos.Sub(center), g.U, g.V, g.halfSize()))
	}
	return center
}
