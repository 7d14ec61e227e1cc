package longpath

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdrpinto/longpath/internal/metrics"
	"github.com/pdrpinto/longpath/navgrid"
)

type cacheEntry struct {
	once  sync.Once
	cache *JumpPointCache
}

// cacheStore owns the jump point caches, one per passability class. The
// first search for a class builds its cache; concurrent searches for the same
// class wait for that build instead of starting their own.
type cacheStore struct {
	mutex   sync.Mutex
	entries map[navgrid.PassClass]*cacheEntry

	logger  *zap.Logger
	metrics *metrics.Metrics
}

func newCacheStore(logger *zap.Logger, recorder *metrics.Metrics) *cacheStore {
	return &cacheStore{
		entries: make(map[navgrid.PassClass]*cacheEntry),
		logger:  logger,
		metrics: recorder,
	}
}

func (store *cacheStore) get(grid *navgrid.Grid[navgrid.NavcellData], passClass navgrid.PassClass) *JumpPointCache {
	store.mutex.Lock()
	entry, ok := store.entries[passClass]
	if !ok {
		entry = &cacheEntry{}
		store.entries[passClass] = entry
	}
	store.mutex.Unlock()

	entry.once.Do(func() {
		started := time.Now()
		entry.cache = NewJumpPointCache(grid, passClass)
		elapsed := time.Since(started)

		bytes := entry.cache.MemoryUsage()
		store.logger.Debug("built jump point cache",
			zap.Uint16("passClass", passClass),
			zap.Int("memoryKB", bytes/1024),
			zap.Duration("elapsed", elapsed))
		store.metrics.ObserveCacheBuild(passClass, bytes, elapsed)
	})
	return entry.cache
}

// invalidate drops every cache. Searches still holding a cache keep using
// their own copy.
func (store *cacheStore) invalidate() {
	store.mutex.Lock()
	dropped := len(store.entries)
	store.entries = make(map[navgrid.PassClass]*cacheEntry)
	store.mutex.Unlock()

	if dropped > 0 {
		store.logger.Debug("dropped jump point caches", zap.Int("classes", dropped))
	}
	store.metrics.ObserveInvalidation()
}

func (store *cacheStore) size() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return len(store.entries)
}
