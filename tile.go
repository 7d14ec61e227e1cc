package longpath

import "fmt"

// TileID identifies a navcell in the open list.
type TileID struct {
	I, J uint16
}

func NewTileID(i, j int) TileID { return TileID{I: uint16(i), J: uint16(j)} }

// Less orders tiles by I, then J.
func (t TileID) Less(o TileID) bool {
	if t.I != o.I {
		return t.I < o.I
	}
	return t.J < o.J
}

// Key packs the tile into 32 bits.
func (t TileID) Key() uint32 { return uint32(t.I)<<16 | uint32(t.J) }

func (t TileID) String() string { return fmt.Sprintf("(%d,%d)", t.I, t.J) }

type TileStatus uint8

const (
	Unexplored TileStatus = iota
	Open
	Closed
)

// Predecessor deltas are kept in 15 signed bits.
const (
	minPredDelta = -1 << 14
	maxPredDelta = 1<<14 - 1
)

// PathfindTile is the per-search state of one navcell.
type PathfindTile struct {
	Status TileStatus
	predDI int16
	predDJ int16
	G      PathCost
}

// SetPred records (pi, pj) as the predecessor of (i, j). It panics when the
// jump is longer than a predecessor delta can hold.
func (t *PathfindTile) SetPred(pi, pj, i, j int) {
	di, dj := pi-i, pj-j
	if di < minPredDelta || di > maxPredDelta || dj < minPredDelta || dj > maxPredDelta {
		panic(fmt.Sprintf("longpath: predecessor delta (%d,%d) out of range", di, dj))
	}
	t.predDI, t.predDJ = int16(di), int16(dj)
}

func (t PathfindTile) PredI(i int) int { return i + int(t.predDI) }
func (t PathfindTile) PredJ(j int) int { return j + int(t.predDJ) }

// PredDI returns pi - i.
func (t PathfindTile) PredDI() int { return int(t.predDI) }
func (t PathfindTile) PredDJ() int { return int(t.predDJ) }

func (t PathfindTile) IsOpen() bool       { return t.Status == Open }
func (t PathfindTile) IsClosed() bool     { return t.Status == Closed }
func (t PathfindTile) IsUnexplored() bool { return t.Status == Unexplored }
