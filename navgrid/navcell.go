package navgrid

import "github.com/pdrpinto/longpath/fixed"

// NavcellData holds one bit per passability class; a set bit means the navcell
// is impassable for that class.
type NavcellData = uint16

// PassClass is a mask selecting one or more passability classes.
type PassClass = uint16

// PassClassBits is the number of classes a NavcellData can describe.
const PassClassBits = 16

// SpecialPassClass is the reserved top bit. It is never assigned to a
// registered class and marks cells of a temporary excluded-region overlay.
const SpecialPassClass PassClass = 1 << (PassClassBits - 1)

// MaskFromIndex returns the mask of the class with the given index.
func MaskFromIndex(index int) PassClass { return PassClass(1) << index }

// IsPassable reports whether a navcell is passable for every class in mask.
func IsPassable(cell NavcellData, mask PassClass) bool { return cell&mask == 0 }

// NavcellSize is the width of a navcell in world units.
var NavcellSize = fixed.FromInt(1)

const navcellSizeInt = 1

// ClearanceExtensionRadius is added to the largest class clearance when
// sizing obstruction queries.
var ClearanceExtensionRadius = fixed.FromInt(1)

// NearestNavcell returns the navcell containing (x, z), clamped to a w x h grid.
func NearestNavcell(x, z fixed.Fixed, w, h int) (i, j int) {
	i = clampInt(x.DivInt(navcellSizeInt).ToIntRoundToNegInfinity(), 0, w-1)
	j = clampInt(z.DivInt(navcellSizeInt).ToIntRoundToNegInfinity(), 0, h-1)
	return i, j
}

// NavcellCenter returns the world position of the center of navcell (i, j).
func NavcellCenter(i, j int) (x, z fixed.Fixed) {
	half := NavcellSize.DivInt(2)
	return fixed.FromInt(i*2 + 1).Multiply(half), fixed.FromInt(j*2 + 1).Multiply(half)
}

// NavcellCenterVector is NavcellCenter as a vector.
func NavcellCenterVector(i, j int) fixed.Vector2D {
	x, z := NavcellCenter(i, j)
	return fixed.NewVector(x, z)
}

func clampInt(value, low, high int) int {
	if high < low {
		return low
	}
	return min(max(value, low), high)
}
