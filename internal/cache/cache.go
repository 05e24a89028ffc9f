package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// EntityCache maps normalized entity names to their database ids. It is a
// per-run performance layer only; the store stays the source of truth and
// misses fall through to a select-or-insert there.
type EntityCache interface {
	Get(kind, normalized string) (uint, bool)
	Set(kind, normalized string, id uint)
	Clear()
	Stats() Stats
}

type Stats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

type entityCache struct {
	cache *cache.Cache
	mu    sync.RWMutex
	stats Stats
}

func NewEntityCache(ttl time.Duration) EntityCache {
	return &entityCache{
		cache: cache.New(ttl, ttl*2),
		stats: Stats{},
	}
}

func (c *entityCache) Get(kind, normalized string) (uint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(entityKey(kind, normalized)); found {
		if id, ok := data.(uint); ok {
			c.stats.Hits++
			return id, true
		}
	}

	c.stats.Misses++
	return 0, false
}

func (c *entityCache) Set(kind, normalized string, id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Set(entityKey(kind, normalized), id, cache.DefaultExpiration)
}

func (c *entityCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.stats = Stats{}
}

func (c *entityCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.stats.Size = c.cache.ItemCount()
	return c.stats
}

func entityKey(kind, normalized string) string {
	return fmt.Sprintf("%s:%s", kind, normalized)
}
