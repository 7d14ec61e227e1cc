// Package longpath provides a long-range pathfinder for units moving on a
// uniform-cost navigation grid.
//
// Searches run A* with jump point search, optionally backed by a per-class
// cache of the next jump point in each straight direction. The entry points
// are:
//
//   - LongPathfinder.ComputePath: run a search to completion and get a WaypointPath.
//   - LongPathfinder.NewStepper: iterate a search one expansion at a time to drive UIs or debugging tools.
//   - RequestQueue: batch requests and compute them on a bounded worker pool.
//
// Paths are returned goal first. Reachability is delegated to a Hierarchical
// collaborator; internal/reach holds a flood-fill implementation of it.
package longpath
