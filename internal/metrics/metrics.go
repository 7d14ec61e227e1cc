// Package metrics exposes pathfinder counters and histograms to Prometheus.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search results.
const (
	ResultReached    = "reached"
	ResultBestEffort = "best_effort"
	ResultImmediate  = "immediate"
	ResultError      = "error"
)

type Metrics struct {
	searches           *prometheus.CounterVec
	searchSteps        prometheus.Histogram
	searchDuration     prometheus.Histogram
	cacheBuilds        *prometheus.CounterVec
	cacheBuildDuration prometheus.Histogram
	cacheBytes         *prometheus.GaugeVec
	cacheInvalidations prometheus.Counter
	batchRequests      prometheus.Histogram
}

// New registers the pathfinder metrics with registerer.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "longpath_searches_total",
			Help: "Long path searches by result",
		}, []string{"result"}),
		searchSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "longpath_search_steps",
			Help:    "Open list pops per search",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "longpath_search_duration_seconds",
			Help:    "Search duration",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
		cacheBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "longpath_jump_point_cache_builds_total",
			Help: "Jump point cache builds by passability class mask",
		}, []string{"class"}),
		cacheBuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "longpath_jump_point_cache_build_duration_seconds",
			Help:    "Jump point cache build duration",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		}),
		cacheBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "longpath_jump_point_cache_bytes",
			Help: "Memory held by the jump point cache of each class",
		}, []string{"class"}),
		cacheInvalidations: factory.NewCounter(prometheus.CounterOpts{
			Name: "longpath_jump_point_cache_invalidations_total",
			Help: "Grid reloads and updates that dropped the jump point caches",
		}),
		batchRequests: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "longpath_batch_requests",
			Help:    "Requests computed per processed batch",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500},
		}),
	}
}

func (m *Metrics) ObserveSearch(result string, steps int, duration time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(result).Inc()
	m.searchSteps.Observe(float64(steps))
	m.searchDuration.Observe(duration.Seconds())
}

func (m *Metrics) ObserveCacheBuild(passClass uint16, bytes int, duration time.Duration) {
	if m == nil {
		return
	}
	class := strconv.Itoa(int(passClass))
	m.cacheBuilds.WithLabelValues(class).Inc()
	m.cacheBytes.WithLabelValues(class).Set(float64(bytes))
	m.cacheBuildDuration.Observe(duration.Seconds())
}

func (m *Metrics) ObserveInvalidation() {
	if m == nil {
		return
	}
	m.cacheInvalidations.Inc()
	m.cacheBytes.Reset()
}

func (m *Metrics) ObserveBatch(requests int) {
	if m == nil {
		return
	}
	m.batchRequests.Observe(float64(requests))
}
