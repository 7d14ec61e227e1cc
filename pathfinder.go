package longpath

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/internal/metrics"
	"github.com/pdrpinto/longpath/navgrid"
)

var (
	ErrGridNotSet      = errors.New("longpath: navigation grid has not been set up")
	ErrGridNotSquare   = errors.New("longpath: navigation grid is not square")
	ErrGridSizeChanged = errors.New("longpath: navigation grid size changed")
	ErrGridTooLarge    = errors.New("longpath: navigation grid is too large")
)

// MaxGridSize is the widest grid whose jumps fit in a predecessor delta.
const MaxGridSize = maxPredDelta + 1

// Hierarchical is the coarse reachability pathfinder consulted before every
// search.
type Hierarchical interface {
	// MakeGoalReachable returns a goal that can be reached from navcell
	// (i0, j0), moving it closer when the original lies in another region.
	MakeGoalReachable(i0, j0 int, g goal.Goal, passClass navgrid.PassClass) goal.Goal
	// FindNearestPassableNavcell returns the passable navcell nearest to
	// (i, j).
	FindNearestPassableNavcell(i, j int, passClass navgrid.PassClass) (int, int)
}

// Waypoint is a world-space position.
type Waypoint struct {
	X, Z fixed.Fixed
}

func (w Waypoint) Vector() fixed.Vector2D { return fixed.NewVector(w.X, w.Z) }

func waypointAt(v fixed.Vector2D) Waypoint { return Waypoint{X: v.X, Z: v.Y} }

// WaypointPath is the result of a search. Waypoints are stored in reverse
// travel order: the goal comes first and the next waypoint to head for is
// the last one.
type WaypointPath struct {
	Waypoints []Waypoint
	// Cost of the grid path before smoothing.
	Cost PathCost
	// Reached is false for a best-effort path that stops short of the goal.
	Reached bool
}

// Next returns the waypoint to head for first.
func (p WaypointPath) Next() (Waypoint, bool) {
	if len(p.Waypoints) == 0 {
		return Waypoint{}, false
	}
	return p.Waypoints[len(p.Waypoints)-1], true
}

// Options defines parameters for the pathfinder.
type Options struct {
	UseJumpPointCache bool
	DebugOverlay      bool
	// NumberOfWorkers bounds the concurrent searches of a RequestQueue.
	NumberOfWorkers int
	// MaxSameTurnMoves bounds the requests a RequestQueue computes per
	// Process call. Zero means no bound.
	MaxSameTurnMoves int
	Logger           *zap.Logger
	Metrics          *metrics.Metrics
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithJumpPointCache switches between cached jump point lookups and linear
// scans. Both find paths of the same cost.
func WithJumpPointCache(enabled bool) Option {
	return func(options *Options) { options.UseJumpPointCache = enabled }
}

// WithDebugOverlay keeps a snapshot of the last search for DebugData.
func WithDebugOverlay(enabled bool) Option {
	return func(options *Options) { options.DebugOverlay = enabled }
}

// WithWorkers specifies how many searches a RequestQueue runs at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func WithMaxSameTurnMoves(moves int) Option {
	return func(options *Options) { options.MaxSameTurnMoves = moves }
}

func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func WithMetrics(recorder *metrics.Metrics) Option {
	return func(options *Options) { options.Metrics = recorder }
}

// LongPathfinder computes long-range paths over a navigation grid with jump
// point search.
//
// Searches may run concurrently. Reload and Update replace the grid and must
// not be called while searches are running.
type LongPathfinder struct {
	options  Options
	logger   *zap.Logger
	metrics  *metrics.Metrics
	useCache atomic.Bool

	grid     *navgrid.Grid[navgrid.NavcellData]
	gridSize int

	caches *cacheStore
	debug  debugState
}

func New(options ...Option) *LongPathfinder {
	// --- Apply options ---
	pathfinderOptions := Options{
		UseJumpPointCache: true,
		NumberOfWorkers:   runtime.NumCPU(),
	}
	for _, option := range options {
		option(&pathfinderOptions)
	}
	if pathfinderOptions.Logger == nil {
		pathfinderOptions.Logger = zap.NewNop()
	}
	if pathfinderOptions.NumberOfWorkers < 1 {
		pathfinderOptions.NumberOfWorkers = 1
	}

	pathfinder := &LongPathfinder{
		options: pathfinderOptions,
		logger:  pathfinderOptions.Logger,
		metrics: pathfinderOptions.Metrics,
		caches:  newCacheStore(pathfinderOptions.Logger, pathfinderOptions.Metrics),
	}
	pathfinder.useCache.Store(pathfinderOptions.UseJumpPointCache)
	pathfinder.debug.overlay.Store(pathfinderOptions.DebugOverlay)
	return pathfinder
}

// Reload sets a new grid, which must be square. The pathfinder keeps a
// reference to it: the caller must not modify it while searches run.
func (p *LongPathfinder) Reload(grid *navgrid.Grid[navgrid.NavcellData]) error {
	if grid == nil {
		return ErrGridNotSet
	}
	if grid.W != grid.H {
		p.logger.Error("rejected non-square navigation grid", zap.Uint16("width", grid.W), zap.Uint16("height", grid.H))
		return fmt.Errorf("%dx%d: %w", grid.W, grid.H, ErrGridNotSquare)
	}
	if grid.Width() > MaxGridSize {
		return fmt.Errorf("%dx%d exceeds %d: %w", grid.W, grid.H, MaxGridSize, ErrGridTooLarge)
	}
	p.grid = grid
	p.gridSize = grid.Width()
	p.caches.invalidate()
	return nil
}

// Update replaces the grid after its contents changed. The size must be
// unchanged.
func (p *LongPathfinder) Update(grid *navgrid.Grid[navgrid.NavcellData]) error {
	if p.grid == nil {
		return ErrGridNotSet
	}
	if grid.Width() != p.gridSize || grid.Height() != p.gridSize {
		return fmt.Errorf("%dx%d, want %dx%d: %w", grid.W, grid.H, p.gridSize, p.gridSize, ErrGridSizeChanged)
	}
	p.grid = grid
	p.caches.invalidate()
	return nil
}

// Grid returns the current navigation grid, nil before Reload.
func (p *LongPathfinder) Grid() *navgrid.Grid[navgrid.NavcellData] { return p.grid }

// SetJumpPointCache toggles cached jump point lookups for later searches.
func (p *LongPathfinder) SetJumpPointCache(enabled bool) { p.useCache.Store(enabled) }

func (p *LongPathfinder) UsesJumpPointCache() bool { return p.useCache.Load() }

// ComputePath finds a path from (x0, z0) to g for passClass. An unreachable
// goal is not an error: the path then leads to the navcell closest to it and
// Reached is false.
func (p *LongPathfinder) ComputePath(hier Hierarchical, x0, z0 fixed.Fixed, g goal.Goal, passClass navgrid.PassClass) (WaypointPath, error) {
	if p.grid == nil {
		p.logger.Error("navigation grid has not been set up, aborting path computation")
		p.metrics.ObserveSearch(metrics.ResultError, 0, 0)
		return WaypointPath{}, ErrGridNotSet
	}

	var jpc *JumpPointCache
	if p.useCache.Load() {
		jpc = p.caches.get(p.grid, passClass)
	}
	return p.computeJPSPath(searchRequest{
		hier:        hier,
		x0:          x0,
		z0:          z0,
		goal:        g,
		passClass:   passClass,
		searchClass: passClass,
		terrain:     p.grid,
		jpc:         jpc,
	}), nil
}
