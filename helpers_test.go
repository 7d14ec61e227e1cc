package longpath

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

// passthrough is a collaborator that knows nothing about regions: goals are
// left alone and impassable starts stay where they are.
type passthrough struct{}

func (passthrough) MakeGoalReachable(_, _ int, g goal.Goal, _ navgrid.PassClass) goal.Goal {
	return g
}

func (passthrough) FindNearestPassableNavcell(i, j int, _ navgrid.PassClass) (int, int) {
	return i, j
}

func at(v float64) fixed.Fixed { return fixed.FromFloat(v) }

func center(i, j int) (fixed.Fixed, fixed.Fixed) { return navgrid.NavcellCenter(i, j) }

func wp(x, z float64) Waypoint { return Waypoint{X: at(x), Z: at(z)} }

func landClass(t *testing.T) navgrid.PassClass {
	t.Helper()
	mask, err := navgrid.DefaultRegistry().Mask("default")
	require.NoError(t, err)
	return mask
}

func parseMap(text string) *navgrid.Grid[navgrid.NavcellData] {
	return navgrid.MustParseASCII(text, navgrid.DefaultRegistry())
}

// newTestPathfinder returns a pathfinder loaded with the given map.
func newTestPathfinder(t *testing.T, text string, options ...Option) *LongPathfinder {
	t.Helper()
	pathfinder := New(options...)
	require.NoError(t, pathfinder.Reload(parseMap(text)))
	return pathfinder
}

// randomMap returns a bordered square map with roughly density impassable
// navcells inside.
func randomMap(random *rand.Rand, size int, density float64) string {
	var builder strings.Builder
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			border := i == 0 || j == 0 || i == size-1 || j == size-1
			if border || random.Float64() < density {
				builder.WriteByte('#')
			} else {
				builder.WriteByte('.')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// shortestCost runs Dijkstra over single 8-connected steps that never cut a
// corner. ok is false when the target cannot be reached.
func shortestCost(grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass, i0, j0, i1, j1 int) (PathCost, bool) {
	passable := func(i, j int) bool {
		return grid.InBounds(i, j) && navgrid.IsPassable(grid.Get(i, j), passClass)
	}
	w, h := grid.Width(), grid.Height()
	index := func(i, j int) int { return j*w + i }

	const unreached = ^uint32(0)
	distance := make([]uint32, w*h)
	done := make([]bool, w*h)
	for k := range distance {
		distance[k] = unreached
	}
	distance[index(i0, j0)] = 0

	for {
		best := -1
		for k, d := range distance {
			if !done[k] && d != unreached && (best < 0 || d < distance[best]) {
				best = k
			}
		}
		if best < 0 {
			return PathCost{}, false
		}
		done[best] = true
		i, j := best%w, best/w
		if i == i1 && j == j1 {
			return PathCost{data: distance[best]}, true
		}
		for dj := -1; dj <= 1; dj++ {
			for di := -1; di <= 1; di++ {
				if (di == 0 && dj == 0) || !passable(i+di, j+dj) {
					continue
				}
				step := HorizVert(1)
				if di != 0 && dj != 0 {
					if !passable(i+di, j) || !passable(i, j+dj) {
						continue
					}
					step = Diag(1)
				}
				next := index(i+di, j+dj)
				if d := distance[best] + step.Scalar(); d < distance[next] {
					distance[next] = d
				}
			}
		}
	}
}
