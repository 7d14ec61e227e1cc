// Package navgrid holds the navigation grid: a dense 2D array of per-navcell
// passability bitmasks, the sparse grid used for per-search state, the RLE
// wire codec and the passability classes that assign the bits.
package navgrid

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned by element-wise operations on grids of
// different sizes.
var ErrDimensionMismatch = errors.New("navgrid: grid dimensions differ")

// Integer is the set of element types element-wise arithmetic is defined for.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Grid is a width x height row-major array. A blank grid has both dimensions
// zero and no backing storage.
type Grid[T comparable] struct {
	W, H uint16
	data []T
}

// New returns a zero-filled grid of the given size.
func New[T comparable](width, height uint16) *Grid[T] {
	grid := &Grid[T]{}
	grid.Resize(width, height)
	return grid
}

func (g *Grid[T]) Width() int  { return int(g.W) }
func (g *Grid[T]) Height() int { return int(g.H) }

// Blank reports whether the grid has no cells.
func (g *Grid[T]) Blank() bool { return g.W == 0 || g.H == 0 }

func (g *Grid[T]) InBounds(i, j int) bool {
	return i >= 0 && j >= 0 && i < int(g.W) && j < int(g.H)
}

func (g *Grid[T]) Get(i, j int) T {
	if boundsChecks && !g.InBounds(i, j) {
		panic(fmt.Sprintf("navgrid: Get(%d, %d) outside %dx%d grid", i, j, g.W, g.H))
	}
	return g.data[j*int(g.W)+i]
}

func (g *Grid[T]) Set(i, j int, value T) {
	if boundsChecks && !g.InBounds(i, j) {
		panic(fmt.Sprintf("navgrid: Set(%d, %d) outside %dx%d grid", i, j, g.W, g.H))
	}
	g.data[j*int(g.W)+i] = value
}

// Resize reallocates the grid. Previous contents are discarded.
func (g *Grid[T]) Resize(width, height uint16) {
	g.W, g.H = width, height
	if width == 0 || height == 0 {
		g.data = nil
		return
	}
	g.data = make([]T, int(width)*int(height))
}

// Reset zero-fills the grid without changing its size.
func (g *Grid[T]) Reset() {
	clear(g.data)
}

// Clear turns the grid into a blank grid.
func (g *Grid[T]) Clear() { g.Resize(0, 0) }

func (g *Grid[T]) Swap(other *Grid[T]) {
	g.W, other.W = other.W, g.W
	g.H, other.H = other.H, g.H
	g.data, other.data = other.data, g.data
}

func (g *Grid[T]) Clone() *Grid[T] {
	clone := &Grid[T]{W: g.W, H: g.H}
	if g.data != nil {
		clone.data = make([]T, len(g.data))
		copy(clone.data, g.data)
	}
	return clone
}

// Equal compares dimensions and contents.
func (g *Grid[T]) Equal(other *Grid[T]) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for index := range g.data {
		if g.data[index] != other.data[index] {
			return false
		}
	}
	return true
}

// Cells returns the backing row-major slice.
func (g *Grid[T]) Cells() []T { return g.data }

// Add adds src to dst element-wise.
func Add[T Integer](dst, src *Grid[T]) error {
	if dst.W != src.W || dst.H != src.H {
		return fmt.Errorf("add %dx%d to %dx%d: %w", src.W, src.H, dst.W, dst.H, ErrDimensionMismatch)
	}
	for index := range dst.data {
		dst.data[index] += src.data[index]
	}
	return nil
}

// BitwiseOr ors src into dst element-wise.
func BitwiseOr[T Integer](dst, src *Grid[T]) error {
	if dst.W != src.W || dst.H != src.H {
		return fmt.Errorf("or %dx%d into %dx%d: %w", src.W, src.H, dst.W, dst.H, ErrDimensionMismatch)
	}
	for index := range dst.data {
		dst.data[index] |= src.data[index]
	}
	return nil
}

// AnySetInSquare reports whether any cell in the square [i0, i0+size) x
// [j0, j0+size) has a bit of mask set. The square is clipped to the grid.
func AnySetInSquare[T Integer](g *Grid[T], i0, j0, size int, mask T) bool {
	iEnd := min(i0+size, int(g.W))
	jEnd := min(j0+size, int(g.H))
	for j := max(j0, 0); j < jEnd; j++ {
		for i := max(i0, 0); i < iEnd; i++ {
			if g.data[j*int(g.W)+i]&mask != 0 {
				return true
			}
		}
	}
	return false
}
