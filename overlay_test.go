package longpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

func TestCircularRegionContains(t *testing.T) {
	region := CircularRegion{X: at(3), Z: at(3), R: at(1)}
	assert.True(t, region.Contains(at(3), at(3)))
	assert.True(t, region.Contains(at(4), at(3)), "edge")
	assert.False(t, region.Contains(at(4), at(4)))
}

func TestGenerateSpecialMap(t *testing.T) {
	land := landClass(t)
	grid := parseMap(openSquareMap(7))
	overlay := generateSpecialMap(grid, land, []CircularRegion{{X: at(3.5), Z: at(3.5), R: at(0.5)}})

	assert.False(t, navgrid.IsPassable(overlay.Get(3, 3), navgrid.SpecialPassClass), "excluded")
	assert.False(t, navgrid.IsPassable(overlay.Get(0, 3), navgrid.SpecialPassClass), "impassable for the class")
	assert.True(t, navgrid.IsPassable(overlay.Get(2, 3), navgrid.SpecialPassClass))
	assert.True(t, navgrid.IsPassable(overlay.Get(4, 4), navgrid.SpecialPassClass))

	// The pathfinder's own grid is untouched.
	assert.True(t, navgrid.IsPassable(grid.Get(3, 3), navgrid.SpecialPassClass))
	assert.Equal(t, grid.Get(3, 3)&land, overlay.Get(3, 3)&land)
}

func TestComputePathExcluding(t *testing.T) {
	land := landClass(t)
	pathfinder := newTestPathfinder(t, openSquareMap(7))
	target := goal.NewPoint(at(5.5), at(3.5))

	direct, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(3.5), target, land)
	require.NoError(t, err)
	require.Equal(t, HorizVert(4), direct.Cost)

	unchanged, err := pathfinder.ComputePathExcluding(passthrough{}, at(1.5), at(3.5), target, land, nil)
	require.NoError(t, err)
	assert.Equal(t, direct, unchanged)

	region := CircularRegion{X: at(3.5), Z: at(3.5), R: at(0.5)}
	detour, err := pathfinder.ComputePathExcluding(passthrough{}, at(1.5), at(3.5), target, land, []CircularRegion{region})
	require.NoError(t, err)
	assert.True(t, detour.Reached)
	assert.Equal(t, NewPathCost(2, 2), detour.Cost)
	assert.Greater(t, len(detour.Waypoints), 1)
	for _, waypoint := range detour.Waypoints {
		assert.False(t, region.Contains(waypoint.X, waypoint.Z), "waypoint %v", waypoint)
	}

	// Searching the overlay leaves the shared grid and caches alone.
	again, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(3.5), target, land)
	require.NoError(t, err)
	assert.Equal(t, direct, again)
}

func TestComputePathExcludingGoal(t *testing.T) {
	land := landClass(t)
	pathfinder := newTestPathfinder(t, openSquareMap(7))
	excluded := []CircularRegion{{X: at(5.5), Z: at(3.5), R: at(0.6)}}

	path, err := pathfinder.ComputePathExcluding(passthrough{}, at(1.5), at(3.5), goal.NewPoint(at(5.5), at(3.5)), land, excluded)
	require.NoError(t, err)
	assert.False(t, path.Reached)
	assert.NotEmpty(t, path.Waypoints)
}

func TestComputePathExcludingWithoutGrid(t *testing.T) {
	_, err := New().ComputePathExcluding(passthrough{}, at(1), at(1), goal.NewPoint(at(2), at(2)), landClass(t), nil)
	assert.ErrorIs(t, err, ErrGridNotSet)
}
