package navgrid

const (
	bucketBits = 4
	bucketSize = 1 << bucketBits
)

// SparseGrid is a grid whose storage is allocated lazily in 16x16 buckets.
// Unallocated cells read as the zero value of T.
type SparseGrid[T any] struct {
	W, H             uint16
	bucketsPerRow    int
	buckets          [][]T
	allocatedBuckets int
}

func NewSparse[T any](width, height uint16) *SparseGrid[T] {
	bucketsPerRow := (int(width) + bucketSize - 1) >> bucketBits
	bucketsPerColumn := (int(height) + bucketSize - 1) >> bucketBits
	return &SparseGrid[T]{
		W:             width,
		H:             height,
		bucketsPerRow: bucketsPerRow,
		buckets:       make([][]T, bucketsPerRow*bucketsPerColumn),
	}
}

func (g *SparseGrid[T]) bucketIndex(i, j int) (bucket, cell int) {
	bucket = (j>>bucketBits)*g.bucketsPerRow + (i >> bucketBits)
	cell = (j&(bucketSize-1))<<bucketBits | (i & (bucketSize - 1))
	return bucket, cell
}

func (g *SparseGrid[T]) Get(i, j int) T {
	bucket, cell := g.bucketIndex(i, j)
	if g.buckets[bucket] == nil {
		var zero T
		return zero
	}
	return g.buckets[bucket][cell]
}

func (g *SparseGrid[T]) Set(i, j int, value T) {
	*g.Ref(i, j) = value
}

// Ref returns a pointer to the cell, allocating its bucket if needed.
func (g *SparseGrid[T]) Ref(i, j int) *T {
	bucket, cell := g.bucketIndex(i, j)
	if g.buckets[bucket] == nil {
		g.buckets[bucket] = make([]T, bucketSize*bucketSize)
		g.allocatedBuckets++
	}
	return &g.buckets[bucket][cell]
}

// Reset drops every bucket.
func (g *SparseGrid[T]) Reset() {
	clear(g.buckets)
	g.allocatedBuckets = 0
}

func (g *SparseGrid[T]) AllocatedBuckets() int { return g.allocatedBuckets }

// ForEach calls fn for every in-bounds cell of every allocated bucket.
func (g *SparseGrid[T]) ForEach(fn func(i, j int, value T)) {
	for bucket, cells := range g.buckets {
		if cells == nil {
			continue
		}
		bi := (bucket % g.bucketsPerRow) << bucketBits
		bj := (bucket / g.bucketsPerRow) << bucketBits
		for cell, value := range cells {
			i := bi + cell&(bucketSize-1)
			j := bj + cell>>bucketBits
			if i < int(g.W) && j < int(g.H) {
				fn(i, j, value)
			}
		}
	}
}
