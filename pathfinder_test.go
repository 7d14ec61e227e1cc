package longpath

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/internal/reach"
	"github.com/pdrpinto/longpath/navgrid"
)

const openMap = `
#####
#...#
#...#
#...#
#####
`

const pillarMap = `
#####
#...#
#.#.#
#...#
#####
`

const enclosedMap = `
#######
#.....#
#.###.#
#.#.#.#
#.###.#
#.....#
#######
`

// openSquareMap returns a bordered size x size map with no obstacles.
func openSquareMap(size int) string {
	wall := strings.Repeat("#", size)
	row := "#" + strings.Repeat(".", size-2) + "#"
	lines := []string{wall}
	for j := 0; j < size-2; j++ {
		lines = append(lines, row)
	}
	lines = append(lines, wall)
	return strings.Join(lines, "\n")
}

// bothModes runs the test with and without the jump point cache.
func bothModes(t *testing.T, test func(t *testing.T, cached bool)) {
	for _, cached := range []bool{true, false} {
		name := "linear"
		if cached {
			name = "cached"
		}
		t.Run(name, func(t *testing.T) { test(t, cached) })
	}
}

func TestComputePathDiagonal(t *testing.T) {
	land := landClass(t)
	bothModes(t, func(t *testing.T, cached bool) {
		pathfinder := newTestPathfinder(t, openMap, WithJumpPointCache(cached))
		path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
		require.NoError(t, err)

		assert.True(t, path.Reached)
		assert.Equal(t, Diag(2), path.Cost)
		assert.Equal(t, []Waypoint{wp(3.5, 3.5)}, path.Waypoints)
	})
}

func TestComputePathAroundPillar(t *testing.T) {
	land := landClass(t)
	bothModes(t, func(t *testing.T, cached bool) {
		pathfinder := newTestPathfinder(t, pillarMap, WithJumpPointCache(cached))
		path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
		require.NoError(t, err)

		assert.True(t, path.Reached)
		assert.Equal(t, HorizVert(4), path.Cost)
		assert.Equal(t, []Waypoint{wp(3.5, 3.5), wp(1.5, 3.5)}, path.Waypoints)
		next, ok := path.Next()
		require.True(t, ok)
		assert.Equal(t, wp(1.5, 3.5), next)
	})
}

func TestComputePathStraightLine(t *testing.T) {
	land := landClass(t)
	bothModes(t, func(t *testing.T, cached bool) {
		pathfinder := newTestPathfinder(t, openSquareMap(12), WithJumpPointCache(cached))
		path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(10.5), at(1.5)), land)
		require.NoError(t, err)

		assert.True(t, path.Reached)
		assert.Equal(t, HorizVert(9), path.Cost)
		assert.Equal(t, []Waypoint{wp(10.5, 1.5)}, path.Waypoints)
	})
}

func TestComputePathBestEffort(t *testing.T) {
	land := landClass(t)
	bothModes(t, func(t *testing.T, cached bool) {
		pathfinder := newTestPathfinder(t, enclosedMap, WithJumpPointCache(cached))
		path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
		require.NoError(t, err)

		assert.False(t, path.Reached)
		require.NotEmpty(t, path.Waypoints)
		// The path ends at an explored navcell closer to the goal than the
		// start is.
		end := path.Waypoints[0].Vector()
		assert.Less(t, fixed.NewVector(at(3.5), at(3.5)).Sub(end).CompareLength(at(2.8)), 0, "ends at %v", end)
		i, j := navgrid.NearestNavcell(end.X, end.Y, 7, 7)
		assert.True(t, navgrid.IsPassable(pathfinder.Grid().Get(i, j), land))
	})
}

func TestComputePathMovesUnreachableGoal(t *testing.T) {
	land := landClass(t)
	pathfinder := newTestPathfinder(t, enclosedMap)
	regions := reach.New(pathfinder.Grid(), nil)

	path, err := pathfinder.ComputePath(regions, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
	require.NoError(t, err)
	assert.True(t, path.Reached)
	assert.Equal(t, HorizVert(2), path.Cost)
	assert.Equal(t, []Waypoint{wp(3.5, 1.5)}, path.Waypoints)
}

func TestComputePathNoCornerCutting(t *testing.T) {
	land := landClass(t)
	bothModes(t, func(t *testing.T, cached bool) {
		pathfinder := newTestPathfinder(t, `
#####
#.#.#
##..#
#...#
#####
`, WithJumpPointCache(cached))
		path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(2.5), at(2.5)), land)
		require.NoError(t, err)

		assert.False(t, path.Reached)
		assert.Equal(t, PathCost{}, path.Cost)
		assert.Equal(t, []Waypoint{wp(1.5, 1.5)}, path.Waypoints)
	})
}

func TestComputePathImmediateGoal(t *testing.T) {
	land := landClass(t)
	pathfinder := newTestPathfinder(t, openMap)
	path, err := pathfinder.ComputePath(passthrough{}, at(3.2), at(3.7), goal.NewPoint(at(3.5), at(3.5)), land)
	require.NoError(t, err)
	assert.True(t, path.Reached)
	assert.Equal(t, PathCost{}, path.Cost)
	assert.Equal(t, []Waypoint{wp(3.5, 3.5)}, path.Waypoints)

	circle, err := goal.NewCircle(at(3.5), at(3.5), at(1))
	require.NoError(t, err)
	path, err = pathfinder.ComputePath(passthrough{}, at(3.2), at(3.7), circle, land)
	require.NoError(t, err)
	assert.Equal(t, []Waypoint{wp(3.2, 3.7)}, path.Waypoints, "a start inside an area goal is already there")
}

func TestComputePathImpassableStart(t *testing.T) {
	land := landClass(t)
	pathfinder := newTestPathfinder(t, openMap)
	regions := reach.New(pathfinder.Grid(), nil)

	path, err := pathfinder.ComputePath(regions, at(0.5), at(0.5), goal.NewPoint(at(3.5), at(3.5)), land)
	require.NoError(t, err)
	assert.True(t, path.Reached)
	assert.Equal(t, Diag(2), path.Cost)
	assert.Equal(t, []Waypoint{wp(3.5, 3.5)}, path.Waypoints)
}

func TestComputePathAreaGoals(t *testing.T) {
	land := landClass(t)
	tolerance := fixed.FromFraction(1, 100)

	t.Run("circle", func(t *testing.T) {
		bothModes(t, func(t *testing.T, cached bool) {
			pathfinder := newTestPathfinder(t, openMap, WithJumpPointCache(cached))
			circle, err := goal.NewCircle(at(3.5), at(3.5), at(1))
			require.NoError(t, err)

			path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), circle, land)
			require.NoError(t, err)
			assert.True(t, path.Reached)
			assert.Equal(t, Diag(1), path.Cost)
			require.Len(t, path.Waypoints, 1)
			assert.LessOrEqual(t, circle.DistanceToPoint(path.Waypoints[0].Vector()), tolerance)
		})
	})

	t.Run("square", func(t *testing.T) {
		pathfinder := newTestPathfinder(t, openMap)
		square, err := goal.NewSquare(at(3.5), at(3.5), fixed.NewVector(fixed.FromInt(1), fixed.Zero), at(0.5), at(0.5))
		require.NoError(t, err)

		path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), square, land)
		require.NoError(t, err)
		assert.True(t, path.Reached)
		require.NotEmpty(t, path.Waypoints)
		assert.LessOrEqual(t, square.DistanceToPoint(path.Waypoints[0].Vector()), tolerance)
	})

	t.Run("inverse circle", func(t *testing.T) {
		bothModes(t, func(t *testing.T, cached bool) {
			pathfinder := newTestPathfinder(t, openSquareMap(9), WithJumpPointCache(cached))
			inverse, err := goal.NewInverseCircle(at(4.5), at(4.5), at(2))
			require.NoError(t, err)

			path, err := pathfinder.ComputePath(passthrough{}, at(4.5), at(4.5), inverse, land)
			require.NoError(t, err)
			assert.True(t, path.Reached)
			require.NotEmpty(t, path.Waypoints)
			assert.LessOrEqual(t, inverse.DistanceToPoint(path.Waypoints[0].Vector()), tolerance)
		})
	})

	t.Run("moved by reachability", func(t *testing.T) {
		pathfinder := newTestPathfinder(t, openMap)
		circle, err := goal.NewCircle(at(3.5), at(3.5), at(1))
		require.NoError(t, err)

		path, err := pathfinder.ComputePath(reach.New(pathfinder.Grid(), nil), at(1.5), at(1.5), circle, land)
		require.NoError(t, err)
		assert.True(t, path.Reached)
		require.Len(t, path.Waypoints, 1)
		assert.LessOrEqual(t, circle.DistanceToPoint(path.Waypoints[0].Vector()), tolerance)
	})
}

func TestComputePathMaxDist(t *testing.T) {
	land := landClass(t)
	maxDist := at(3)
	bothModes(t, func(t *testing.T, cached bool) {
		pathfinder := newTestPathfinder(t, openSquareMap(12), WithJumpPointCache(cached))
		target := goal.NewPoint(at(10.5), at(1.5)).WithMaxDist(maxDist)

		path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), target, land)
		require.NoError(t, err)
		require.True(t, path.Reached)
		require.Greater(t, len(path.Waypoints), 1)
		assert.Equal(t, wp(10.5, 1.5), path.Waypoints[0])

		next, ok := path.Next()
		require.True(t, ok)
		start := fixed.NewVector(at(1.5), at(1.5))
		assert.LessOrEqual(t, next.Vector().Sub(start).CompareLength(maxDist), 0)
	})
}

func TestComputePathMatchesShortestPath(t *testing.T) {
	land := landClass(t)
	random := rand.New(rand.NewPCG(42, 1))

	for round := 0; round < 12; round++ {
		const size = 16
		grid := parseMap(randomMap(random, size, 0.25))
		cached := New(WithJumpPointCache(true))
		linear := New(WithJumpPointCache(false))
		require.NoError(t, cached.Reload(grid))
		require.NoError(t, linear.Reload(grid))

		var cells [][2]int
		for j := 0; j < size; j++ {
			for i := 0; i < size; i++ {
				if navgrid.IsPassable(grid.Get(i, j), land) {
					cells = append(cells, [2]int{i, j})
				}
			}
		}
		if len(cells) < 2 {
			continue
		}

		for pair := 0; pair < 8; pair++ {
			from := cells[random.IntN(len(cells))]
			to := cells[random.IntN(len(cells))]
			x0, z0 := center(from[0], from[1])
			x1, z1 := center(to[0], to[1])
			optimal, reachable := shortestCost(grid, land, from[0], from[1], to[0], to[1])

			for _, pathfinder := range []*LongPathfinder{cached, linear} {
				path, err := pathfinder.ComputePath(passthrough{}, x0, z0, goal.NewPoint(x1, z1), land)
				require.NoError(t, err)
				assert.Equal(t, reachable, path.Reached, "round %d from %v to %v", round, from, to)
				assert.NotEmpty(t, path.Waypoints)
				if reachable {
					assert.False(t, path.Cost.Less(optimal), "round %d from %v to %v: %v below optimum %v", round, from, to, path.Cost, optimal)
				}
			}
		}
	}
}

func TestReloadAndUpdate(t *testing.T) {
	land := landClass(t)
	pathfinder := New()

	_, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
	assert.ErrorIs(t, err, ErrGridNotSet)
	assert.ErrorIs(t, pathfinder.Update(parseMap(openMap)), ErrGridNotSet)
	assert.ErrorIs(t, pathfinder.Reload(nil), ErrGridNotSet)

	assert.ErrorIs(t, pathfinder.Reload(parseMap("....\n....\n")), ErrGridNotSquare)
	assert.ErrorIs(t, pathfinder.Reload(&navgrid.Grid[navgrid.NavcellData]{W: MaxGridSize + 1, H: MaxGridSize + 1}), ErrGridTooLarge)
	assert.Nil(t, pathfinder.Grid())

	require.NoError(t, pathfinder.Reload(parseMap(openMap)))
	path, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
	require.NoError(t, err)
	assert.Equal(t, Diag(2), path.Cost)
	assert.Equal(t, 1, pathfinder.caches.size())

	assert.ErrorIs(t, pathfinder.Update(parseMap(enclosedMap)), ErrGridSizeChanged)

	require.NoError(t, pathfinder.Update(parseMap(pillarMap)))
	assert.Equal(t, 0, pathfinder.caches.size(), "update drops the jump point caches")
	path, err = pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
	require.NoError(t, err)
	assert.Equal(t, HorizVert(4), path.Cost)
}

func TestSetJumpPointCache(t *testing.T) {
	land := landClass(t)
	pathfinder := newTestPathfinder(t, openMap, WithJumpPointCache(false))
	assert.False(t, pathfinder.UsesJumpPointCache())

	_, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
	require.NoError(t, err)
	assert.Equal(t, 0, pathfinder.caches.size())

	pathfinder.SetJumpPointCache(true)
	assert.True(t, pathfinder.UsesJumpPointCache())
	_, err = pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), goal.NewPoint(at(3.5), at(3.5)), land)
	require.NoError(t, err)
	assert.Equal(t, 1, pathfinder.caches.size())
}

func TestNextOnEmptyPath(t *testing.T) {
	_, ok := WaypointPath{}.Next()
	assert.False(t, ok)
}
