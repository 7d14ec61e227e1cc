package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/longpath/fixed"
)

func f(v float64) fixed.Fixed { return fixed.FromFloat(v) }

func vec(x, z float64) fixed.Vector2D { return fixed.NewVector(f(x), f(z)) }

func TestConstructorsRejectBadGeometry(t *testing.T) {
	_, err := NewCircle(f(1), f(1), f(-1))
	assert.ErrorIs(t, err, ErrNegativeExtent)
	_, err = NewInverseSquare(f(1), f(1), vec(1, 0), f(1), f(-2))
	assert.ErrorIs(t, err, ErrNegativeExtent)
	_, err = NewSquare(f(1), f(1), fixed.Vector2D{}, f(1), f(1))
	assert.ErrorIs(t, err, ErrDegenerateAxis)

	square, err := NewSquare(f(0), f(0), vec(3, 4), f(1), f(1))
	require.NoError(t, err)
	assert.InDelta(t, 0.6, square.U.X.ToFloat(), 1e-4)
	assert.InDelta(t, 0.8, square.U.Y.ToFloat(), 1e-4)
	assert.Equal(t, square.U.Perpendicular(), square.V)
}

func TestPointContainment(t *testing.T) {
	point := NewPoint(f(3.5), f(2.25))
	assert.True(t, point.NavcellContainsGoal(3, 2))
	assert.False(t, point.NavcellContainsGoal(2, 2))
	assert.False(t, point.NavcellContainsGoal(3, 3))

	i, j, ok := point.NavcellRectContainsGoal(0, 2, 8, 2)
	assert.True(t, ok)
	assert.Equal(t, [2]int{3, 2}, [2]int{i, j})
	_, _, ok = point.NavcellRectContainsGoal(4, 2, 8, 2)
	assert.False(t, ok)

	assert.True(t, point.RectContainsGoal(f(3), f(2), f(4), f(3)))
	assert.False(t, point.RectContainsGoal(f(4), f(2), f(5), f(3)))
}

func TestCircleContainment(t *testing.T) {
	circle, err := NewCircle(f(5), f(5), f(1.5))
	require.NoError(t, err)

	assert.True(t, circle.NavcellContainsGoal(5, 5))
	assert.True(t, circle.NavcellContainsGoal(6, 5), "edge within radius")
	assert.False(t, circle.NavcellContainsGoal(7, 5))
	assert.True(t, circle.NavcellContainsGoal(6, 6), "diagonal corner within radius")
	assert.False(t, circle.NavcellContainsGoal(7, 7))

	i, j, ok := circle.NavcellRectContainsGoal(10, 5, 0, 5)
	assert.True(t, ok)
	assert.Equal(t, [2]int{6, 5}, [2]int{i, j}, "nearest to the start of the range")

	i, j, ok = circle.NavcellRectContainsGoal(0, 5, 10, 5)
	assert.True(t, ok)
	assert.Equal(t, [2]int{3, 5}, [2]int{i, j})
}

func TestInverseCircleContainment(t *testing.T) {
	inverse, err := NewInverseCircle(f(5), f(5), f(3))
	require.NoError(t, err)
	assert.False(t, inverse.NavcellContainsGoal(5, 5))
	assert.False(t, inverse.NavcellContainsGoal(4, 4))
	assert.True(t, inverse.NavcellContainsGoal(7, 7), "corner (8,8) is outside")
	assert.True(t, inverse.NavcellContainsGoal(0, 0))

	i, _, ok := inverse.NavcellRectContainsGoal(5, 5, 0, 5)
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestSquareContainment(t *testing.T) {
	square, err := NewSquare(f(5), f(5), vec(1, 0), f(2), f(1))
	require.NoError(t, err)
	assert.True(t, square.NavcellContainsGoal(6, 5))
	assert.True(t, square.NavcellContainsGoal(7, 4), "touches the corner")
	assert.False(t, square.NavcellContainsGoal(8, 5))
	assert.False(t, square.NavcellContainsGoal(5, 7))

	inverse, err := NewInverseSquare(f(5), f(5), vec(1, 0), f(2), f(2))
	require.NoError(t, err)
	assert.False(t, inverse.NavcellContainsGoal(4, 4))
	assert.False(t, inverse.NavcellContainsGoal(6, 6), "the boundary belongs to the square")
	assert.True(t, inverse.NavcellContainsGoal(7, 6))
	assert.True(t, inverse.NavcellContainsGoal(9, 5))
}

func TestRotatedSquare(t *testing.T) {
	diamond, err := NewSquare(f(10), f(10), vec(1, 1), f(2), f(2))
	require.NoError(t, err)
	assert.True(t, diamond.RectContainsGoal(f(12.5), f(9.9), f(12.6), f(10.1)))
	assert.False(t, diamond.RectContainsGoal(f(12), f(12), f(12.5), f(12.5)))
}

func TestDistanceToPoint(t *testing.T) {
	point := NewPoint(f(0), f(0))
	assert.Equal(t, f(5), point.DistanceToPoint(vec(3, 4)))

	circle, _ := NewCircle(f(0), f(0), f(2))
	assert.Equal(t, f(3), circle.DistanceToPoint(vec(3, 4)))
	assert.Equal(t, fixed.Zero, circle.DistanceToPoint(vec(1, 1)))

	inverse, _ := NewInverseCircle(f(0), f(0), f(10))
	assert.Equal(t, f(5), inverse.DistanceToPoint(vec(3, 4)))
	assert.Equal(t, fixed.Zero, inverse.DistanceToPoint(vec(30, 0)))

	square, _ := NewSquare(f(0), f(0), vec(1, 0), f(2), f(1))
	assert.Equal(t, f(3), square.DistanceToPoint(vec(5, 0)))
	assert.Equal(t, f(5), square.DistanceToPoint(vec(5, 5)))
	assert.Equal(t, fixed.Zero, square.DistanceToPoint(vec(1, 0)))

	inverseSquare, _ := NewInverseSquare(f(0), f(0), vec(1, 0), f(2), f(1))
	assert.Equal(t, f(0.5), inverseSquare.DistanceToPoint(vec(1, 0.5)))
}

func TestNearestPointOnGoal(t *testing.T) {
	point := NewPoint(f(1), f(2))
	assert.Equal(t, vec(1, 2), point.NearestPointOnGoal(vec(9, 9)))

	circle, _ := NewCircle(f(0), f(0), f(5))
	assert.Equal(t, vec(5, 0), circle.NearestPointOnGoal(vec(10, 0)))
	assert.Equal(t, vec(5, 0), circle.NearestPointOnGoal(vec(0, 0)))

	square, _ := NewSquare(f(0), f(0), vec(1, 0), f(2), f(1))
	assert.Equal(t, vec(2, 0.5), square.NearestPointOnGoal(vec(5, 0.5)))
	assert.Equal(t, vec(2, -1), square.NearestPointOnGoal(vec(5, -5)))
	assert.Equal(t, vec(2, 0.25), square.NearestPointOnGoal(vec(1.5, 0.25)))
	assert.Equal(t, vec(0.5, 1), square.NearestPointOnGoal(vec(0.5, 0.75)))
}
