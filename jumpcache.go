package longpath

import (
	"unsafe"

	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

// jumpEntry is the next point after a cell, scanning in one direction.
// Obstruction points are the first impassable cell of a run; anything else
// is a jump point, where a forced neighbour appears.
type jumpEntry struct {
	next        uint16
	obstruction bool
}

type jumpRow []jumpEntry

func (row jumpRow) setRange(x0, x1 int, obstruction bool) {
	for x := x0; x < x1; x++ {
		row[x] = jumpEntry{next: uint16(x1), obstruction: obstruction}
	}
}

// JumpPointCache holds, for one passability class, the next jump point or
// obstruction in each of the four straight directions from every passable
// navcell. Entries for impassable navcells are meaningless.
//
// Diagonal jumps are not cached; they are frequent enough that a linear scan
// costs about as much as a lookup.
//
// A built cache is immutable and safe for concurrent use.
type JumpPointCache struct {
	width, height int
	// right and left are indexed by j, up and down by i. left and down are
	// stored mirrored.
	right, left, up, down []jumpRow
}

// NewJumpPointCache scans grid for the given class. Cells outside the grid
// count as impassable, so the grid does not need an impassable border.
func NewJumpPointCache(grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass) *JumpPointCache {
	return &JumpPointCache{
		width:  grid.Width(),
		height: grid.Height(),
		right:  computeRows(grid, passClass, false, false),
		left:   computeRows(grid, passClass, false, true),
		up:     computeRows(grid, passClass, true, false),
		down:   computeRows(grid, passClass, true, true),
	}
}

// computeRows scans in the +i direction, or +j when transposed, reversed
// when mirrored.
func computeRows(grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass, transpose, mirror bool) []jumpRow {
	w, h := grid.Width(), grid.Height()
	if transpose {
		w, h = h, w
	}

	passable := func(i, j int) bool {
		if mirror {
			i = w - 1 - i
		}
		if transpose {
			i, j = j, i
		}
		return grid.InBounds(i, j) && navgrid.IsPassable(grid.Get(i, j), passClass)
	}

	rows := make([]jumpRow, h)
	for j := 0; j < h; j++ {
		row := make(jumpRow, w)
		rows[j] = row

		i := 0
		for i < w {
			if !passable(i, j) {
				i++
				continue
			}

			// Extend the passable run from i0 to the next jump or
			// obstruction point.
			i0 := i
			for {
				i++
				if !passable(i, j) {
					row.setRange(i0, i, true)
					break
				}
				if (!passable(i-1, j-1) && passable(i, j-1)) ||
					(!passable(i-1, j+1) && passable(i, j+1)) {
					row.setRange(i0, i, false)
					break
				}
			}
		}
	}
	return rows
}

// JumpPointRight returns the i of the next point to explore from (i, j)
// towards +i: the nearest goal navcell before the cached point, else the
// cached jump point. It returns i when there is neither.
func (c *JumpPointCache) JumpPointRight(i, j int, g goal.Goal) int {
	entry := c.right[j][i]
	ip := int(entry.next)
	if ip-i > 1 {
		if gi, _, ok := g.NavcellRectContainsGoal(i+1, j, ip-1, j); ok {
			return gi
		}
	}
	if !entry.obstruction {
		return ip
	}
	return i
}

func (c *JumpPointCache) JumpPointLeft(i, j int, g goal.Goal) int {
	entry := c.left[j][c.width-1-i]
	ip := c.width - 1 - int(entry.next)
	if i-ip > 1 {
		if gi, _, ok := g.NavcellRectContainsGoal(i-1, j, ip+1, j); ok {
			return gi
		}
	}
	if !entry.obstruction {
		return ip
	}
	return i
}

func (c *JumpPointCache) JumpPointUp(i, j int, g goal.Goal) int {
	entry := c.up[i][j]
	jp := int(entry.next)
	if jp-j > 1 {
		if _, gj, ok := g.NavcellRectContainsGoal(i, j+1, i, jp-1); ok {
			return gj
		}
	}
	if !entry.obstruction {
		return jp
	}
	return j
}

func (c *JumpPointCache) JumpPointDown(i, j int, g goal.Goal) int {
	entry := c.down[i][c.height-1-j]
	jp := c.height - 1 - int(entry.next)
	if j-jp > 1 {
		if _, gj, ok := g.NavcellRectContainsGoal(i, j-1, i, jp+1); ok {
			return gj
		}
	}
	if !entry.obstruction {
		return jp
	}
	return j
}

// MemoryUsage returns the size of the cached rows in bytes.
func (c *JumpPointCache) MemoryUsage() int {
	entries := 0
	for _, rows := range [][]jumpRow{c.right, c.left, c.up, c.down} {
		for _, row := range rows {
			entries += len(row)
		}
	}
	return entries * int(unsafe.Sizeof(jumpEntry{}))
}
