package longpath

import (
	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

// StepSnapshot exposes the state of a search after one step.
type StepSnapshot struct {
	Current   TileID
	Open      []TileID
	Closed    []TileID
	Done      bool
	Found     bool
	Path      WaypointPath
	StepIndex int
}

// Stepper runs a search one open list pop at a time, to drive
// visualizations. It finds the same path as ComputePath.
type Stepper struct {
	pathfinder *LongPathfinder
	request    searchRequest
	state      *searchState
	path       WaypointPath
	done       bool
}

// NewStepper prepares a search without running it.
func (p *LongPathfinder) NewStepper(hier Hierarchical, x0, z0 fixed.Fixed, g goal.Goal, passClass navgrid.PassClass) (*Stepper, error) {
	if p.grid == nil {
		return nil, ErrGridNotSet
	}
	request := searchRequest{
		hier:        hier,
		x0:          x0,
		z0:          z0,
		goal:        g,
		passClass:   passClass,
		searchClass: passClass,
		terrain:     p.grid,
	}
	if p.useCache.Load() {
		request.jpc = p.caches.get(p.grid, passClass)
	}

	stepper := &Stepper{pathfinder: p, request: request}
	state, immediate := newSearch(request)
	if immediate != nil {
		stepper.path = *immediate
		stepper.done = true
	}
	stepper.state = state
	return stepper, nil
}

// Step advances the search by one tile expansion and returns a snapshot.
// Once done, further calls return the final snapshot again.
func (s *Stepper) Step() StepSnapshot {
	if s.done {
		return s.snapshot(TileID{})
	}

	current, done := s.state.step()
	if done {
		s.done = true
		s.path = s.pathfinder.finishSearch(s.state, s.request)
	}
	return s.snapshot(current)
}

// Run steps until the search is done.
func (s *Stepper) Run() StepSnapshot {
	snapshot := s.Step()
	for !snapshot.Done {
		snapshot = s.Step()
	}
	return snapshot
}

func (s *Stepper) snapshot(current TileID) StepSnapshot {
	snapshot := StepSnapshot{
		Current: current,
		Done:    s.done,
	}
	if s.done {
		snapshot.Found = s.path.Reached
		snapshot.Path = s.path
	}
	if s.state == nil {
		return snapshot
	}

	snapshot.StepIndex = s.state.steps
	s.state.tiles.ForEach(func(i, j int, tile PathfindTile) {
		switch tile.Status {
		case Open:
			snapshot.Open = append(snapshot.Open, NewTileID(i, j))
		case Closed:
			snapshot.Closed = append(snapshot.Closed, NewTileID(i, j))
		}
	})
	return snapshot
}
