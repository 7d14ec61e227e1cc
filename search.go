package longpath

import (
	"fmt"
	"time"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/internal"
	"github.com/pdrpinto/longpath/internal/metrics"
	"github.com/pdrpinto/longpath/navgrid"
)

type searchRequest struct {
	hier   Hierarchical
	x0, z0 fixed.Fixed
	goal   goal.Goal
	// passClass is what the hierarchical pathfinder is asked about;
	// searchClass is the mask tested against terrain. They differ when
	// searching an excluded-region overlay.
	passClass   navgrid.PassClass
	searchClass navgrid.PassClass
	terrain     *navgrid.Grid[navgrid.NavcellData]
	// jpc is nil for linear scans.
	jpc *JumpPointCache
}

// searchState is the state of one A*/JPS search.
type searchState struct {
	terrain   *navgrid.Grid[navgrid.NavcellData]
	passClass navgrid.PassClass
	jpc       *JumpPointCache

	goal         goal.Goal
	pointGoal    bool
	iGoal, jGoal int
	i0, j0       int

	open  *PriorityQueue
	tiles *navgrid.SparseGrid[PathfindTile]

	iBest, jBest int
	hBest        PathCost

	steps   int
	reached bool
	done    bool
}

// exactGoalPoint is where a path that reached g should end, seen from pos: the
// point itself for point goals, else pos if it satisfies the goal, else the
// nearest point of the goal's boundary.
func exactGoalPoint(g goal.Goal, pos fixed.Vector2D) Waypoint {
	if g.Kind == goal.Point {
		return Waypoint{X: g.X, Z: g.Z}
	}
	if g.DistanceToPoint(pos).IsZero() {
		return waypointAt(pos)
	}
	return waypointAt(g.NearestPointOnGoal(pos))
}

// newSearch snaps the start, adjusts the goal and seeds the open list. It
// returns a finished path instead when the start navcell already satisfies
// the goal.
func newSearch(request searchRequest) (*searchState, *WaypointPath) {
	size := request.terrain.Width()
	i0, j0 := navgrid.NearestNavcell(request.x0, request.z0, size, size)
	if !navgrid.IsPassable(request.terrain.Get(i0, j0), request.searchClass) {
		// Units are not supposed to stand on impassable navcells, but
		// searching from one would be wrong, so move the start.
		i0, j0 = request.hier.FindNearestPassableNavcell(i0, j0, request.passClass)
	}

	adjusted := request.hier.MakeGoalReachable(i0, j0, request.goal, request.passClass)
	if adjusted.NavcellContainsGoal(i0, j0) {
		start := fixed.NewVector(request.x0, request.z0)
		return nil, &WaypointPath{
			Waypoints: []Waypoint{exactGoalPoint(adjusted, start)},
			Reached:   true,
		}
	}

	iGoal, jGoal := navgrid.NearestNavcell(adjusted.X, adjusted.Z, size, size)
	state := &searchState{
		terrain:   request.terrain,
		passClass: request.searchClass,
		jpc:       request.jpc,
		goal:      adjusted,
		pointGoal: adjusted.Kind == goal.Point,
		iGoal:     iGoal,
		jGoal:     jGoal,
		i0:        i0,
		j0:        j0,
		open:      NewPriorityQueue(),
		tiles:     navgrid.NewSparse[PathfindTile](request.terrain.W, request.terrain.H),
		iBest:     i0,
		jBest:     j0,
	}
	state.hBest = state.heuristic(i0, j0)

	start := state.tiles.Ref(i0, j0)
	start.Status = Open
	start.SetPred(i0, j0, i0, j0)
	start.G = PathCost{}
	state.open.Push(NewTileID(i0, j0), state.hBest, state.hBest)
	return state, nil
}

func (s *searchState) passable(i, j int) bool {
	return s.terrain.InBounds(i, j) && navgrid.IsPassable(s.terrain.Get(i, j), s.passClass)
}

// heuristic never overestimates the cost from (i, j) to a goal navcell.
func (s *searchState) heuristic(i, j int) PathCost {
	if !s.pointGoal {
		if s.goal.Inverted() {
			return PathCost{}
		}
		// A goal navcell's center lies within one navcell of the goal.
		distance := s.goal.DistanceToPoint(navgrid.NavcellCenterVector(i, j))
		return FromFixed(distance.Sub(navgrid.NavcellSize))
	}
	di := internal.Abs(i - s.iGoal)
	dj := internal.Abs(j - s.jGoal)
	diag := min(di, dj)
	return NewPathCost(di+dj-2*diag, diag)
}

// processNeighbour relaxes the edge from (pi, pj), whose cost is pg, to
// (i, j).
func (s *searchState) processNeighbour(pi, pj, i, j int, pg PathCost) {
	if !s.passable(i, j) {
		return
	}
	tile := s.tiles.Ref(i, j)
	if tile.IsClosed() {
		return
	}

	var dg PathCost
	switch {
	case pi == i:
		dg = HorizVert(internal.Abs(pj - j))
	case pj == j:
		dg = HorizVert(internal.Abs(pi - i))
	default:
		if internal.Abs(pi-i) != internal.Abs(pj-j) {
			panic(fmt.Sprintf("longpath: jump from (%d,%d) to (%d,%d) is not straight or diagonal", pi, pj, i, j))
		}
		dg = Diag(internal.Abs(pi - i))
	}

	g := pg.Add(dg)
	h := s.heuristic(i, j)
	id := NewTileID(i, j)

	if tile.IsUnexplored() {
		// Remember the closest tile in case the goal is never reached.
		if h.Less(s.hBest) {
			s.hBest = h
			s.iBest, s.jBest = i, j
		}
	} else {
		if !g.Less(tile.G) {
			return
		}
		if tile.IsOpen() {
			oldG := tile.G
			tile.G = g
			tile.SetPred(pi, pj, i, j)
			// The tile is no longer queued if the open list was cleared.
			if !s.open.Promote(id, oldG.Add(h), g.Add(h), h) {
				s.open.Push(id, g.Add(h), h)
			}
			return
		}
	}

	tile.Status = Open
	tile.G = g
	tile.SetPred(pi, pj, i, j)
	s.open.Push(id, g.Add(h), h)
}

// onTheWay reports whether scanning from (i, j) in direction (di, dj) moves
// towards the goal navcell without leaving its row or column.
func (s *searchState) onTheWay(i, j, di, dj int) bool {
	if dj != 0 {
		if (s.jGoal-j)*dj < 0 {
			return false
		}
	} else if j != s.jGoal {
		return false
	}

	if di != 0 {
		if (s.iGoal-i)*di < 0 {
			return false
		}
	} else if i != s.iGoal {
		return false
	}
	return true
}

// detectsGoal reports whether a scan should stop at goal navcells. Area goals
// are checked on every scan; point goals only on scans heading for them.
func (s *searchState) detectsGoal(i, j, di, dj int) bool {
	return !s.pointGoal || s.onTheWay(i, j, di, dj)
}

// scanHitsGoal reports whether (i, j) is a goal navcell a scan should stop
// at. A point goal found by a scan heading straight for it is on an optimal
// path, so the rest of the open list is dropped.
func (s *searchState) scanHitsGoal(i, j int, detectGoal bool) bool {
	if !detectGoal || !s.goal.NavcellContainsGoal(i, j) {
		return false
	}
	if s.pointGoal {
		s.open.Clear()
	}
	return true
}

// hasJumpedHoriz returns the i of the next jump point from (i, j) in
// direction di, or i if there is none.
func (s *searchState) hasJumpedHoriz(i, j, di int, detectGoal bool) int {
	if s.jpc != nil {
		if di > 0 {
			return s.jpc.JumpPointRight(i, j, s.goal)
		}
		return s.jpc.JumpPointLeft(i, j, s.goal)
	}

	for ni := i + di; ; ni += di {
		if !s.passable(ni, j) {
			return i
		}
		if s.scanHitsGoal(ni, j, detectGoal) {
			return ni
		}
		if (!s.passable(ni-di, j-1) && s.passable(ni, j-1)) ||
			(!s.passable(ni-di, j+1) && s.passable(ni, j+1)) {
			return ni
		}
	}
}

func (s *searchState) hasJumpedVert(i, j, dj int, detectGoal bool) int {
	if s.jpc != nil {
		if dj > 0 {
			return s.jpc.JumpPointUp(i, j, s.goal)
		}
		return s.jpc.JumpPointDown(i, j, s.goal)
	}

	for nj := j + dj; ; nj += dj {
		if !s.passable(i, nj) {
			return j
		}
		if s.scanHitsGoal(i, nj, detectGoal) {
			return nj
		}
		if (!s.passable(i-1, nj-dj) && s.passable(i-1, nj)) ||
			(!s.passable(i+1, nj-dj) && s.passable(i+1, nj)) {
			return nj
		}
	}
}

func (s *searchState) addJumpedHoriz(i, j, di int, g PathCost) {
	if jump := s.hasJumpedHoriz(i, j, di, s.detectsGoal(i, j, di, 0)); jump != i {
		s.processNeighbour(i, j, jump, j, g)
	}
}

func (s *searchState) addJumpedVert(i, j, dj int, g PathCost) {
	if jump := s.hasJumpedVert(i, j, dj, s.detectsGoal(i, j, 0, dj)); jump != j {
		s.processNeighbour(i, j, i, jump, g)
	}
}

// addJumpedDiag scans diagonally. Diagonal jump points are never cached.
// A diagonal step may not cut the corner of an impassable navcell.
func (s *searchState) addJumpedDiag(i, j, di, dj int, g PathCost) {
	detectGoal := s.detectsGoal(i, j, di, dj)
	for ni, nj := i+di, j+dj; ; ni, nj = ni+di, nj+dj {
		if !s.passable(ni, nj) {
			return
		}
		if !s.passable(ni-di, nj) || !s.passable(ni, nj-dj) {
			return
		}

		if s.scanHitsGoal(ni, nj, detectGoal) {
			s.processNeighbour(i, j, ni, nj, g)
			return
		}

		fi := s.hasJumpedHoriz(ni, nj, di, detectGoal && s.detectsGoal(ni, nj, di, 0))
		fj := s.hasJumpedVert(ni, nj, dj, detectGoal && s.detectsGoal(ni, nj, 0, dj))
		if fi != ni || fj != nj {
			s.processNeighbour(i, j, ni, nj, g)

			g = g.Add(Diag(internal.Abs(ni - i)))
			if fi != ni {
				s.processNeighbour(ni, nj, fi, nj, g)
			}
			if fj != nj {
				s.processNeighbour(ni, nj, ni, fj, g)
			}
			return
		}
	}
}

// expand adds the successors of (i, j). Only the directions that JPS cannot
// prune, given the direction from the predecessor, are scanned.
func (s *searchState) expand(i, j int, tile PathfindTile) {
	g := tile.G
	dpi := internal.Sign(tile.PredDI())
	dpj := internal.Sign(tile.PredDJ())

	switch {
	case dpi != 0 && dpj == 0:
		// Moving horizontally.
		if !s.passable(i+dpi, j-1) {
			s.addJumpedDiag(i, j, -dpi, -1, g)
			s.addJumpedVert(i, j, -1, g)
		}
		if !s.passable(i+dpi, j+1) {
			s.addJumpedDiag(i, j, -dpi, +1, g)
			s.addJumpedVert(i, j, +1, g)
		}
		s.addJumpedHoriz(i, j, -dpi, g)

	case dpi == 0 && dpj != 0:
		// Moving vertically.
		if !s.passable(i-1, j+dpj) {
			s.addJumpedDiag(i, j, -1, -dpj, g)
			s.addJumpedHoriz(i, j, -1, g)
		}
		if !s.passable(i+1, j+dpj) {
			s.addJumpedDiag(i, j, +1, -dpj, g)
			s.addJumpedHoriz(i, j, +1, g)
		}
		s.addJumpedVert(i, j, -dpj, g)

	case dpi != 0 && dpj != 0:
		// Moving diagonally.
		s.addJumpedHoriz(i, j, -dpi, g)
		s.addJumpedVert(i, j, -dpj, g)
		s.addJumpedDiag(i, j, -dpi, -dpj, g)

	default:
		// The start tile: take single steps in every direction.
		left := s.passable(i-1, j)
		right := s.passable(i+1, j)
		down := s.passable(i, j-1)
		up := s.passable(i, j+1)

		if left && down {
			s.processNeighbour(i, j, i-1, j-1, g)
		}
		if right && down {
			s.processNeighbour(i, j, i+1, j-1, g)
		}
		if left && up {
			s.processNeighbour(i, j, i-1, j+1, g)
		}
		if right && up {
			s.processNeighbour(i, j, i+1, j+1, g)
		}
		if left {
			s.processNeighbour(i, j, i-1, j, g)
		}
		if right {
			s.processNeighbour(i, j, i+1, j, g)
		}
		if down {
			s.processNeighbour(i, j, i, j-1, g)
		}
		if up {
			s.processNeighbour(i, j, i, j+1, g)
		}
	}
}

// step pops and expands one tile. It reports the popped tile and whether the
// search has finished.
func (s *searchState) step() (TileID, bool) {
	if s.done {
		return TileID{}, true
	}
	s.steps++

	if s.open.Empty() {
		s.done = true
		return TileID{}, true
	}

	current := s.open.Pop().ID
	i, j := int(current.I), int(current.J)
	tile := s.tiles.Ref(i, j)
	tile.Status = Closed

	if s.goal.NavcellContainsGoal(i, j) {
		s.iBest, s.jBest = i, j
		s.hBest = PathCost{}
		s.reached = true
		s.done = true
		return current, true
	}

	s.expand(i, j, *tile)
	return current, false
}

// reconstruct walks back from the best tile and returns one waypoint per
// jump, goal first, at navcell centers. When the goal was reached the first
// waypoint is moved onto the goal itself. A search that never left its start
// navcell returns the start navcell's center.
func (s *searchState) reconstruct() WaypointPath {
	predecessor := func(id TileID) TileID {
		i, j := int(id.I), int(id.J)
		tile := s.tiles.Get(i, j)
		return NewTileID(tile.PredI(i), tile.PredJ(j))
	}
	jumps := internal.ReconstructPath(predecessor, NewTileID(s.iBest, s.jBest), NewTileID(s.i0, s.j0))

	path := WaypointPath{
		Waypoints: make([]Waypoint, 0, max(len(jumps), 1)),
		Cost:      s.tiles.Get(s.iBest, s.jBest).G,
		Reached:   s.reached,
	}
	for _, id := range jumps {
		path.Waypoints = append(path.Waypoints, waypointAt(navgrid.NavcellCenterVector(int(id.I), int(id.J))))
	}

	if len(path.Waypoints) == 0 {
		path.Waypoints = append(path.Waypoints, waypointAt(navgrid.NavcellCenterVector(s.i0, s.j0)))
		return path
	}
	if s.reached {
		path.Waypoints[0] = exactGoalPoint(s.goal, path.Waypoints[0].Vector())
	}
	return path
}

// computeJPSPath runs a whole search.
func (p *LongPathfinder) computeJPSPath(request searchRequest) WaypointPath {
	started := time.Now()

	state, immediate := newSearch(request)
	if immediate != nil {
		p.metrics.ObserveSearch(metrics.ResultImmediate, 0, time.Since(started))
		return *immediate
	}

	for {
		if _, done := state.step(); done {
			break
		}
	}

	path := p.finishSearch(state, request)
	elapsed := time.Since(started)

	result := metrics.ResultReached
	if !path.Reached {
		result = metrics.ResultBestEffort
	}
	p.metrics.ObserveSearch(result, state.steps, elapsed)
	p.recordDebug(state, request.passClass, elapsed)
	return path
}

func (p *LongPathfinder) finishSearch(state *searchState, request searchRequest) WaypointPath {
	path := state.reconstruct()
	improvePathWaypoints(&path, request.terrain, request.searchClass, request.goal.MaxDist, request.x0, request.z0)
	return path
}
