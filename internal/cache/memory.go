package cache

import (
	"context"
	"sync"
	"time"

	"estimator/internal/model"
)

// MemoryCache keeps the ranges in process. A zero ttl never expires.
type MemoryCache struct {
	mu      sync.RWMutex
	ranges  model.Ranges
	set     bool
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

var _ RangeCache = (*MemoryCache)(nil)

// NewMemoryCache creates an in-process range cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context) (model.Ranges, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.set || (c.ttl > 0 && !c.now().Before(c.expires)) {
		return model.Ranges{}, false, nil
	}
	return c.ranges, true, nil
}

func (c *MemoryCache) Set(_ context.Context, r model.Ranges) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ranges, c.set = r, true
	c.expires = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ranges, c.set = model.Ranges{}, false
	return nil
}
