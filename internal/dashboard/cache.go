package dashboard

import (
	"sync"

	"hoteldash/internal/models"

	"github.com/golang/groupcache/lru"
)

// rangeCache remembers view-models per range for previews.
// groupcache's LRU is not goroutine safe, hence the mutex.
type rangeCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func newRangeCache(size int) *rangeCache {
	return &rangeCache{cache: lru.New(size)}
}

func (rc *rangeCache) Get(rng models.DateRange) (*models.DashboardData, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	v, ok := rc.cache.Get(rng.Key())
	if !ok {
		return nil, false
	}
	return v.(*models.DashboardData), true
}

func (rc *rangeCache) Set(rng models.DateRange, data *models.DashboardData) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Add(rng.Key(), data)
}

func (rc *rangeCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Clear()
}

func (rc *rangeCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cache.Len()
}
