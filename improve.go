package longpath

import (
	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/navgrid"
)

// straightTolerance is how far off a straight line, as a cross product, a
// waypoint may be and still be dropped without a line check.
var straightTolerance = fixed.Epsilon.MulInt(100)

// improvePathWaypoints smooths a path in one greedy pass, goal first. A
// waypoint is dropped when the line from the last kept waypoint to the one
// after it is clear; the start position (x0, z0) acts as the waypoint after
// the last one. With maxDist set, a waypoint is inserted maxDist from the
// start when the first leg is longer, and legs longer than maxDist get a
// midpoint.
//
// This is not a global shortest-path smoother, but it never adds a segment
// that crosses an impassable navcell.
func improvePathWaypoints(path *WaypointPath, terrain *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass, maxDist, x0, z0 fixed.Fixed) {
	waypoints := path.Waypoints
	if len(waypoints) == 0 {
		return
	}
	start := fixed.NewVector(x0, z0)

	if maxDist > 0 {
		offset := waypoints[len(waypoints)-1].Vector().Sub(start)
		if offset.CompareLength(maxDist) > 0 {
			waypoints = append(waypoints, waypointAt(start.Add(offset.Normalize(maxDist))))
		}
	}

	improved := make([]Waypoint, 0, len(waypoints))
	improved = append(improved, waypoints[0])
	prev := waypoints[0].Vector()
	last := len(waypoints) - 1

	for k := 1; k <= last; k++ {
		curr := waypoints[k].Vector()
		ahead := start
		if k < last {
			ahead = waypoints[k+1].Vector()
		}

		if maxDist > 0 && curr.Sub(prev).CompareLength(maxDist) > 0 {
			prev = prev.Add(curr.Sub(prev).DivInt(2))
			improved = append(improved, waypointAt(prev))
		}

		// The waypoint nearest the start stays when dropping it would
		// leave a first leg longer than maxDist.
		if k == last && maxDist > 0 && prev.Sub(start).CompareLength(maxDist) > 0 {
			improved = append(improved, waypoints[k])
			continue
		}

		if ahead.Sub(curr).Perpendicular().Dot(curr.Sub(prev)).Absolute() <= straightTolerance {
			continue
		}

		if !navgrid.CheckLineMovement(prev.X, prev.Y, ahead.X, ahead.Y, passClass, terrain) {
			prev = curr
			improved = append(improved, waypoints[k])
		}
	}
	path.Waypoints = improved
}
