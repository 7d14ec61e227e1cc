package longpath

import (
	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/internal/metrics"
	"github.com/pdrpinto/longpath/navgrid"
)

// CircularRegion is an area a path must avoid.
type CircularRegion struct {
	X, Z, R fixed.Fixed
}

// Contains reports whether (x, z) lies inside or on the region's edge.
func (r CircularRegion) Contains(x, z fixed.Fixed) bool {
	return fixed.NewVector(x.Sub(r.X), z.Sub(r.Z)).CompareLength(r.R) <= 0
}

// generateSpecialMap returns a copy of grid in which SpecialPassClass marks
// every navcell that is impassable for passClass or whose center lies in an
// excluded region. The bit is cleared everywhere else.
func generateSpecialMap(grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass, excluded []CircularRegion) *navgrid.Grid[navgrid.NavcellData] {
	overlay := grid.Clone()
	for j := 0; j < overlay.Height(); j++ {
		for i := 0; i < overlay.Width(); i++ {
			cell := overlay.Get(i, j) &^ navgrid.SpecialPassClass
			if !navgrid.IsPassable(cell, passClass) || inAnyRegion(i, j, excluded) {
				cell |= navgrid.SpecialPassClass
			}
			overlay.Set(i, j, cell)
		}
	}
	return overlay
}

func inAnyRegion(i, j int, regions []CircularRegion) bool {
	if len(regions) == 0 {
		return false
	}
	x, z := navgrid.NavcellCenter(i, j)
	for _, region := range regions {
		if region.Contains(x, z) {
			return true
		}
	}
	return false
}

// ComputePathExcluding is ComputePath with the given regions treated as
// impassable. It searches a private overlay of the grid, so it can run
// concurrently with other searches. The jump point cache is not used.
func (p *LongPathfinder) ComputePathExcluding(hier Hierarchical, x0, z0 fixed.Fixed, g goal.Goal, passClass navgrid.PassClass, excluded []CircularRegion) (WaypointPath, error) {
	if p.grid == nil {
		p.logger.Error("navigation grid has not been set up, aborting path computation")
		p.metrics.ObserveSearch(metrics.ResultError, 0, 0)
		return WaypointPath{}, ErrGridNotSet
	}
	return p.computeJPSPath(searchRequest{
		hier:        hier,
		x0:          x0,
		z0:          z0,
		goal:        g,
		passClass:   passClass,
		searchClass: navgrid.SpecialPassClass,
		terrain:     generateSpecialMap(p.grid, passClass, excluded),
	}), nil
}
