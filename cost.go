package longpath

import (
	"fmt"
	"math"

	"github.com/pdrpinto/longpath/fixed"
)

const (
	horizVertUnit = 65536
	diagUnit      = 92682 // 65536 * sqrt(2), rounded up
)

// Step limits of PathCost. A longer path does not fit in 32 bits.
const (
	MaxHorizVertSteps = math.MaxUint32 / horizVertUnit
	MaxDiagSteps      = math.MaxUint32 / diagUnit
)

// PathCost is the length of a grid path in 16.16 fixed point: horizontal and
// vertical steps cost 1, diagonal steps cost sqrt(2) rounded up, so a cost is
// never less than the Euclidean distance it covers.
type PathCost struct {
	data uint32
}

// NewPathCost returns the cost of hv straight steps plus diag diagonal steps.
// It panics if the total does not fit.
func NewPathCost(hv, diag int) PathCost {
	if hv < 0 || diag < 0 {
		panic(fmt.Sprintf("longpath: negative step count %d/%d", hv, diag))
	}
	total := uint64(hv)*horizVertUnit + uint64(diag)*diagUnit
	if total > math.MaxUint32 {
		panic(fmt.Sprintf("longpath: path of %d straight and %d diagonal steps overflows PathCost", hv, diag))
	}
	return PathCost{data: uint32(total)}
}

func HorizVert(n int) PathCost { return NewPathCost(n, 0) }
func Diag(n int) PathCost      { return NewPathCost(0, n) }

// FromFixed converts a non-negative world distance to a cost.
func FromFixed(distance fixed.Fixed) PathCost {
	if distance <= 0 {
		return PathCost{}
	}
	return PathCost{data: uint32(distance.Raw())}
}

// Add returns c + o, saturating at the largest representable cost.
func (c PathCost) Add(o PathCost) PathCost {
	sum := uint64(c.data) + uint64(o.data)
	if sum > math.MaxUint32 {
		return PathCost{data: math.MaxUint32}
	}
	return PathCost{data: uint32(sum)}
}

func (c PathCost) Less(o PathCost) bool   { return c.data < o.data }
func (c PathCost) LessEq(o PathCost) bool { return c.data <= o.data }

func (c PathCost) Compare(o PathCost) int {
	switch {
	case c.data < o.data:
		return -1
	case c.data > o.data:
		return 1
	}
	return 0
}

func (c PathCost) Scalar() uint32 { return c.data }

func (c PathCost) Float() float64 { return float64(c.data) / horizVertUnit }

func (c PathCost) String() string { return fmt.Sprintf("%.4f", c.Float()) }
