package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/leguplabs/capframe/internal/model"
)

// MemoryCache implements in-memory caching of parse results.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves an event from the cache.
func (c *MemoryCache) Get(key string) (*model.CapitalEvent, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(*model.CapitalEvent), true
	}
	return nil, false
}

// Set stores an event in the cache with the given TTL. Events are immutable
// after assembly, so sharing the pointer is safe.
func (c *MemoryCache) Set(key string, ev *model.CapitalEvent, ttl time.Duration) {
	c.cache.Set(key, ev, ttl)
}
