// Package reach is a simple reachability collaborator for the long
// pathfinder. It labels the 4-connected passable regions of each class with
// a flood fill and moves goals into the start's region.
package reach

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

// Unreachable is the region label of impassable navcells.
const Unreachable uint32 = 0

var neighbours = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Regions labels connected components per passability class. Labels are
// computed on first use and dropped by Reload.
type Regions struct {
	mutex  sync.Mutex
	grid   *navgrid.Grid[navgrid.NavcellData]
	labels map[navgrid.PassClass]*navgrid.Grid[uint32]
	logger *zap.Logger
}

func New(grid *navgrid.Grid[navgrid.NavcellData], logger *zap.Logger) *Regions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Regions{
		grid:   grid,
		labels: make(map[navgrid.PassClass]*navgrid.Grid[uint32]),
		logger: logger,
	}
}

// Reload switches to a new grid.
func (r *Regions) Reload(grid *navgrid.Grid[navgrid.NavcellData]) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.grid = grid
	clear(r.labels)
}

func (r *Regions) labelsFor(passClass navgrid.PassClass) *navgrid.Grid[uint32] {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if labels, ok := r.labels[passClass]; ok {
		return labels
	}
	labels, count := label(r.grid, passClass)
	r.labels[passClass] = labels
	r.logger.Debug("labelled regions", zap.Uint16("passClass", passClass), zap.Uint32("regions", count))
	return labels
}

func label(grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass) (*navgrid.Grid[uint32], uint32) {
	labels := navgrid.New[uint32](grid.W, grid.H)
	var next uint32
	var queue [][2]int

	for j := 0; j < grid.Height(); j++ {
		for i := 0; i < grid.Width(); i++ {
			if labels.Get(i, j) != Unreachable || !navgrid.IsPassable(grid.Get(i, j), passClass) {
				continue
			}
			next++
			labels.Set(i, j, next)
			queue = append(queue[:0], [2]int{i, j})
			for len(queue) > 0 {
				cell := queue[0]
				queue = queue[1:]
				for _, offset := range neighbours {
					ni, nj := cell[0]+offset[0], cell[1]+offset[1]
					if !grid.InBounds(ni, nj) || labels.Get(ni, nj) != Unreachable ||
						!navgrid.IsPassable(grid.Get(ni, nj), passClass) {
						continue
					}
					labels.Set(ni, nj, next)
					queue = append(queue, [2]int{ni, nj})
				}
			}
		}
	}
	return labels, next
}

// Region returns the label of navcell (i, j), Unreachable if it is impassable
// or outside the grid.
func (r *Regions) Region(i, j int, passClass navgrid.PassClass) uint32 {
	labels := r.labelsFor(passClass)
	if !labels.InBounds(i, j) {
		return Unreachable
	}
	return labels.Get(i, j)
}

// IsReachable reports whether both navcells are passable and connected.
func (r *Regions) IsReachable(i0, j0, i1, j1 int, passClass navgrid.PassClass) bool {
	region := r.Region(i0, j0, passClass)
	return region != Unreachable && region == r.Region(i1, j1, passClass)
}

// FindNearestPassableNavcell returns the passable navcell closest to (i, j)
// in straight-line distance, searching rings of growing radius. It returns
// (i, j) unchanged when no navcell is passable.
func (r *Regions) FindNearestPassableNavcell(i, j int, passClass navgrid.PassClass) (int, int) {
	labels := r.labelsFor(passClass)
	if labels.InBounds(i, j) && labels.Get(i, j) != Unreachable {
		return i, j
	}

	maxRadius := max(labels.Width(), labels.Height())
	for radius := 1; radius <= maxRadius; radius++ {
		bestI, bestJ, bestDistance := 0, 0, -1
		for dj := -radius; dj <= radius; dj++ {
			for di := -radius; di <= radius; di++ {
				if max(abs(di), abs(dj)) != radius {
					continue
				}
				ni, nj := i+di, j+dj
				if !labels.InBounds(ni, nj) || labels.Get(ni, nj) == Unreachable {
					continue
				}
				if distance := di*di + dj*dj; bestDistance < 0 || distance < bestDistance {
					bestI, bestJ, bestDistance = ni, nj, distance
				}
			}
		}
		// A navcell on a later ring can still be closer than a ring
		// corner, so look one ring further before settling.
		if bestDistance >= 0 {
			return r.closestWithin(labels, i, j, radius, bestI, bestJ, bestDistance)
		}
	}
	return i, j
}

func (r *Regions) closestWithin(labels *navgrid.Grid[uint32], i, j, radius, bestI, bestJ, bestDistance int) (int, int) {
	// Rings up to radius*sqrt(2) may hold a closer navcell.
	limit := radius*3/2 + 1
	for ring := radius + 1; ring <= limit; ring++ {
		for dj := -ring; dj <= ring; dj++ {
			for di := -ring; di <= ring; di++ {
				if max(abs(di), abs(dj)) != ring {
					continue
				}
				ni, nj := i+di, j+dj
				if !labels.InBounds(ni, nj) || labels.Get(ni, nj) == Unreachable {
					continue
				}
				if distance := di*di + dj*dj; distance < bestDistance {
					bestI, bestJ, bestDistance = ni, nj, distance
				}
			}
		}
	}
	return bestI, bestJ
}

// MakeGoalReachable returns g unchanged when it is a point goal in the start's
// region. Otherwise it returns a point goal inside the navcell of the start's
// region reached first by a flood fill that contains the goal, or, if no such
// navcell exists, the one nearest to the goal. MaxDist is kept.
func (r *Regions) MakeGoalReachable(i0, j0 int, g goal.Goal, passClass navgrid.PassClass) goal.Goal {
	labels := r.labelsFor(passClass)
	region := Unreachable
	if labels.InBounds(i0, j0) {
		region = labels.Get(i0, j0)
	}
	if region == Unreachable {
		return g
	}

	if g.Kind == goal.Point {
		gi, gj := navgrid.NearestNavcell(g.X, g.Z, labels.Width(), labels.Height())
		if labels.Get(gi, gj) == region && g.NavcellContainsGoal(gi, gj) {
			return g
		}
	}

	visited := navgrid.New[bool](labels.W, labels.H)
	visited.Set(i0, j0, true)
	queue := [][2]int{{i0, j0}}
	bestI, bestJ := i0, j0
	bestDistance := g.DistanceToPoint(navgrid.NavcellCenterVector(i0, j0))

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		i, j := cell[0], cell[1]

		if g.NavcellContainsGoal(i, j) {
			return pointGoalIn(g, i, j)
		}
		if distance := g.DistanceToPoint(navgrid.NavcellCenterVector(i, j)); distance < bestDistance {
			bestI, bestJ, bestDistance = i, j, distance
		}

		for _, offset := range neighbours {
			ni, nj := i+offset[0], j+offset[1]
			if !labels.InBounds(ni, nj) || visited.Get(ni, nj) || labels.Get(ni, nj) != region {
				continue
			}
			visited.Set(ni, nj, true)
			queue = append(queue, [2]int{ni, nj})
		}
	}

	x, z := navgrid.NavcellCenter(bestI, bestJ)
	return goal.NewPoint(x, z).WithMaxDist(g.MaxDist)
}

// pointGoalIn returns a point goal inside navcell (i, j), which contains some
// point of g: the navcell center if it satisfies g, else the point of g's
// boundary nearest the center, clamped into the navcell.
func pointGoalIn(g goal.Goal, i, j int) goal.Goal {
	center := navgrid.NavcellCenterVector(i, j)
	target := center
	if !g.DistanceToPoint(center).IsZero() {
		target = g.NearestPointOnGoal(center)
	}

	x0 := fixed.FromInt(i).Multiply(navgrid.NavcellSize)
	z0 := fixed.FromInt(j).Multiply(navgrid.NavcellSize)
	last := navgrid.NavcellSize.Sub(fixed.Epsilon)
	x := fixed.Clamp(target.X, x0, x0.Add(last))
	z := fixed.Clamp(target.Y, z0, z0.Add(last))
	return goal.NewPoint(x, z).WithMaxDist(g.MaxDist)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
