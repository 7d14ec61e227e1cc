package longpath

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

// Tile states in DebugData.Grid.
const (
	DebugTileOpen   uint8 = 1
	DebugTileClosed uint8 = 2
)

// DebugData describes the most recent search run with the debug overlay on.
type DebugData struct {
	Steps    int
	Duration time.Duration
	// Goal is the goal after reachability adjustment.
	Goal      goal.Goal
	PassClass navgrid.PassClass
	// Grid holds DebugTileOpen or DebugTileClosed per explored navcell. The
	// goal navcell is left out. Nil until a search has run.
	Grid *navgrid.Grid[uint8]
	// Path is the path last computed by SetDebugPath.
	Path    WaypointPath
	HasPath bool
}

type debugState struct {
	overlay atomic.Bool
	mutex   sync.Mutex
	data    DebugData
}

// SetDebugOverlay turns recording of debug data on or off. Turning it off
// drops what was recorded.
func (p *LongPathfinder) SetDebugOverlay(enabled bool) {
	p.debug.overlay.Store(enabled)
	if !enabled {
		p.debug.mutex.Lock()
		p.debug.data = DebugData{}
		p.debug.mutex.Unlock()
	}
}

// SetDebugPath computes a path and keeps it for DebugData. It does nothing
// while the overlay is off.
func (p *LongPathfinder) SetDebugPath(hier Hierarchical, x0, z0 fixed.Fixed, g goal.Goal, passClass navgrid.PassClass) error {
	if !p.debug.overlay.Load() {
		return nil
	}
	path, err := p.ComputePath(hier, x0, z0, g, passClass)
	if err != nil {
		return err
	}

	p.debug.mutex.Lock()
	defer p.debug.mutex.Unlock()
	p.debug.data.Path = path
	p.debug.data.HasPath = true
	p.debug.data.PassClass = passClass
	return nil
}

// DebugData returns a copy of the recorded debug data, safe to read while
// other searches run.
func (p *LongPathfinder) DebugData() DebugData {
	p.debug.mutex.Lock()
	defer p.debug.mutex.Unlock()

	data := p.debug.data
	if data.Grid != nil {
		data.Grid = data.Grid.Clone()
	}
	data.Path.Waypoints = append([]Waypoint(nil), data.Path.Waypoints...)
	return data
}

func (p *LongPathfinder) recordDebug(state *searchState, passClass navgrid.PassClass, elapsed time.Duration) {
	if !p.debug.overlay.Load() {
		return
	}

	snapshot := navgrid.New[uint8](state.terrain.W, state.terrain.H)
	state.tiles.ForEach(func(i, j int, tile PathfindTile) {
		if i == state.iGoal && j == state.jGoal {
			return
		}
		switch tile.Status {
		case Open:
			snapshot.Set(i, j, DebugTileOpen)
		case Closed:
			snapshot.Set(i, j, DebugTileClosed)
		}
	})

	p.debug.mutex.Lock()
	defer p.debug.mutex.Unlock()
	p.debug.data.Steps = state.steps
	p.debug.data.Duration = elapsed
	p.debug.data.Goal = state.goal
	p.debug.data.PassClass = passClass
	p.debug.data.Grid = snapshot
}
