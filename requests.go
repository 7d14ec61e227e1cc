package longpath

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/navgrid"
)

// EntityID identifies whoever should be told about a computed path.
type EntityID uint32

// LongPathRequest is a queued path computation.
type LongPathRequest struct {
	Ticket    uint32
	X0, Z0    fixed.Fixed
	Goal      goal.Goal
	PassClass navgrid.PassClass
	// Excluded regions, if any, are searched around.
	Excluded []CircularRegion
	Notify   EntityID
}

// PathResult is the outcome of one request.
type PathResult struct {
	Ticket uint32
	Notify EntityID
	Path   WaypointPath
	Err    error
}

// RequestQueue collects path requests and computes them in batches on a
// bounded number of goroutines.
type RequestQueue struct {
	pathfinder *LongPathfinder
	hier       Hierarchical

	mutex      sync.Mutex
	pending    []LongPathRequest
	nextTicket uint32
}

func NewRequestQueue(pathfinder *LongPathfinder, hier Hierarchical) *RequestQueue {
	return &RequestQueue{pathfinder: pathfinder, hier: hier}
}

// ComputePathAsync queues a request and returns its ticket. Tickets start at
// 1 and increase.
func (q *RequestQueue) ComputePathAsync(x0, z0 fixed.Fixed, g goal.Goal, passClass navgrid.PassClass, notify EntityID) uint32 {
	return q.enqueue(LongPathRequest{X0: x0, Z0: z0, Goal: g, PassClass: passClass, Notify: notify})
}

// ComputePathExcludingAsync queues a request that avoids the given regions.
func (q *RequestQueue) ComputePathExcludingAsync(x0, z0 fixed.Fixed, g goal.Goal, passClass navgrid.PassClass, excluded []CircularRegion, notify EntityID) uint32 {
	return q.enqueue(LongPathRequest{X0: x0, Z0: z0, Goal: g, PassClass: passClass, Excluded: excluded, Notify: notify})
}

func (q *RequestQueue) enqueue(request LongPathRequest) uint32 {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.nextTicket++
	request.Ticket = q.nextTicket
	q.pending = append(q.pending, request)
	return request.Ticket
}

func (q *RequestQueue) Pending() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.pending)
}

// ComputePathImmediate computes a path synchronously, bypassing the queue.
func (q *RequestQueue) ComputePathImmediate(x0, z0 fixed.Fixed, g goal.Goal, passClass navgrid.PassClass) (WaypointPath, error) {
	return q.pathfinder.ComputePath(q.hier, x0, z0, g, passClass)
}

// Process computes the oldest queued requests, at most MaxSameTurnMoves of
// them when that option is set, and returns their results in request order.
// Requests not started before ctx is done get ctx's error as their result.
func (q *RequestQueue) Process(ctx context.Context) []PathResult {
	q.mutex.Lock()
	count := len(q.pending)
	if limit := q.pathfinder.options.MaxSameTurnMoves; limit > 0 && count > limit {
		count = limit
	}
	batch := append([]LongPathRequest(nil), q.pending[:count]...)
	q.pending = q.pending[count:]
	q.mutex.Unlock()

	if len(batch) == 0 {
		return nil
	}

	results := make([]PathResult, len(batch))
	group := new(errgroup.Group)
	group.SetLimit(q.pathfinder.options.NumberOfWorkers)
	for index, request := range batch {
		group.Go(func() error {
			result := PathResult{Ticket: request.Ticket, Notify: request.Notify}
			if err := ctx.Err(); err != nil {
				result.Err = err
			} else {
				result.Path, result.Err = q.compute(request)
			}
			results[index] = result
			return nil
		})
	}
	_ = group.Wait()

	q.pathfinder.metrics.ObserveBatch(len(batch))
	q.pathfinder.logger.Debug("processed path requests",
		zap.Int("requests", len(batch)),
		zap.Int("pending", q.Pending()))
	return results
}

func (q *RequestQueue) compute(request LongPathRequest) (WaypointPath, error) {
	if len(request.Excluded) > 0 {
		return q.pathfinder.ComputePathExcluding(q.hier, request.X0, request.Z0, request.Goal, request.PassClass, request.Excluded)
	}
	return q.pathfinder.ComputePath(q.hier, request.X0, request.Z0, request.Goal, request.PassClass)
}
