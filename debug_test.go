package longpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/longpath/goal"
)

func TestDebugOverlay(t *testing.T) {
	land := landClass(t)
	target := goal.NewPoint(at(3.5), at(3.5))

	pathfinder := newTestPathfinder(t, pillarMap, WithDebugOverlay(true))
	_, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), target, land)
	require.NoError(t, err)

	data := pathfinder.DebugData()
	assert.Positive(t, data.Steps)
	assert.Equal(t, target, data.Goal)
	assert.Equal(t, land, data.PassClass)
	assert.False(t, data.HasPath)
	require.NotNil(t, data.Grid)
	assert.Equal(t, DebugTileClosed, data.Grid.Get(1, 1))
	assert.Zero(t, data.Grid.Get(3, 3), "the goal navcell is left out")
	assert.Zero(t, data.Grid.Get(2, 2), "impassable")

	// Callers get a copy.
	data.Grid.Set(1, 1, 0)
	assert.Equal(t, DebugTileClosed, pathfinder.DebugData().Grid.Get(1, 1))

	require.NoError(t, pathfinder.SetDebugPath(passthrough{}, at(1.5), at(1.5), target, land))
	data = pathfinder.DebugData()
	assert.True(t, data.HasPath)
	assert.Equal(t, HorizVert(4), data.Path.Cost)

	pathfinder.SetDebugOverlay(false)
	assert.Equal(t, DebugData{}, pathfinder.DebugData())
}

func TestDebugOverlayOff(t *testing.T) {
	land := landClass(t)
	pathfinder := newTestPathfinder(t, pillarMap)
	target := goal.NewPoint(at(3.5), at(3.5))

	_, err := pathfinder.ComputePath(passthrough{}, at(1.5), at(1.5), target, land)
	require.NoError(t, err)
	require.NoError(t, pathfinder.SetDebugPath(passthrough{}, at(1.5), at(1.5), target, land))
	assert.Equal(t, DebugData{}, pathfinder.DebugData())
}
