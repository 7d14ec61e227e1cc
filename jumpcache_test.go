package longpath

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

// linearState scans without a cache and never detects goals.
func linearState(grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass) *searchState {
	return &searchState{
		terrain:   grid,
		passClass: passClass,
		open:      NewPriorityQueue(),
		tiles:     navgrid.NewSparse[PathfindTile](grid.W, grid.H),
		pointGoal: true,
	}
}

// assertMatchesLinearScan checks every direction from every passable navcell.
// The goal sits on an impassable navcell, so it never stops a scan.
func assertMatchesLinearScan(t *testing.T, grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass, nowhere goal.Goal) {
	t.Helper()
	cache := NewJumpPointCache(grid, passClass)
	state := linearState(grid, passClass)

	for j := 0; j < grid.Height(); j++ {
		for i := 0; i < grid.Width(); i++ {
			if !state.passable(i, j) {
				continue
			}
			assert.Equal(t, state.hasJumpedHoriz(i, j, +1, false), cache.JumpPointRight(i, j, nowhere), "right from %d,%d", i, j)
			assert.Equal(t, state.hasJumpedHoriz(i, j, -1, false), cache.JumpPointLeft(i, j, nowhere), "left from %d,%d", i, j)
			assert.Equal(t, state.hasJumpedVert(i, j, +1, false), cache.JumpPointUp(i, j, nowhere), "up from %d,%d", i, j)
			assert.Equal(t, state.hasJumpedVert(i, j, -1, false), cache.JumpPointDown(i, j, nowhere), "down from %d,%d", i, j)
		}
	}
}

func TestJumpPointCacheMatchesLinearScan(t *testing.T) {
	land := landClass(t)
	random := rand.New(rand.NewPCG(7, 11))
	nowhere := goal.NewPoint(at(0.5), at(0.5))

	for round := 0; round < 5; round++ {
		grid := parseMap(randomMap(random, 20, 0.3))
		assertMatchesLinearScan(t, grid, land, nowhere)
	}
}

func TestJumpPointCacheWithoutBorder(t *testing.T) {
	land := landClass(t)
	grid := parseMap(`
......
..#...
......
...#..
......
#.....
`)
	// Cells outside the grid count as impassable.
	assertMatchesLinearScan(t, grid, land, goal.NewPoint(at(0.5), at(5.5)))

	cache := NewJumpPointCache(grid, land)
	nowhere := goal.NewPoint(at(0.5), at(5.5))
	assert.Equal(t, 0, cache.JumpPointLeft(0, 0, nowhere))
	assert.Equal(t, 5, cache.JumpPointRight(5, 4, nowhere))
}

func TestJumpPointCacheStopsAtGoal(t *testing.T) {
	land := landClass(t)
	grid := parseMap(`
########
#......#
#......#
########
`)
	cache := NewJumpPointCache(grid, land)
	x, z := center(4, 1)
	target := goal.NewPoint(x, z)

	assert.Equal(t, 4, cache.JumpPointRight(1, 1, target))
	assert.Equal(t, 4, cache.JumpPointLeft(6, 1, target))
	// Without the goal in the way the run ends at the border.
	assert.Equal(t, 1, cache.JumpPointRight(1, 2, target))

	circle, err := goal.NewCircle(at(5.5), at(2.5), fixed.FromFraction(1, 4))
	assert.NoError(t, err)
	assert.Equal(t, 5, cache.JumpPointRight(1, 2, circle))
}

func TestJumpPointCacheIsDeterministic(t *testing.T) {
	land := landClass(t)
	grid := parseMap(randomMap(rand.New(rand.NewPCG(3, 5)), 24, 0.25))
	first := NewJumpPointCache(grid, land)
	second := NewJumpPointCache(grid, land)
	assert.Equal(t, first, second)
	// Four directions, one 4-byte entry per navcell each.
	assert.Equal(t, 4*24*24*4, first.MemoryUsage())
}
