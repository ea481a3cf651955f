// Package cache provides the in-memory group cache adapter.
package cache

import (
	"sync"
	"time"

	"github.com/hckaye/noice-board/internal/domain"
)

// MemoryCache is an in-memory group cache with TTL support.
type MemoryCache struct {
	groups sync.Map
	ttl    time.Duration
}

// cacheEntry holds a cached group with expiration metadata.
type cacheEntry struct {
	group     domain.PostGroup
	expiresAt time.Time
	syncedAt  time.Time
}

// NewMemoryCache creates a new in-memory cache with the specified TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	cache := &MemoryCache{ttl: ttl}
	go cache.cleanup()
	return cache
}

// Get retrieves a group from the cache.
// Returns the group and true if found and not expired, otherwise false.
func (c *MemoryCache) Get(path domain.PostGroupPath) (domain.PostGroup, bool) {
	value, ok := c.groups.Load(path.String())
	if !ok {
		return domain.PostGroup{}, false
	}

	entry := value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.groups.Delete(path.String())
		return domain.PostGroup{}, false
	}

	return entry.group, true
}

// Set stores a group in the cache with the configured TTL.
func (c *MemoryCache) Set(path domain.PostGroupPath, group domain.PostGroup) {
	now := time.Now()
	c.groups.Store(path.String(), &cacheEntry{
		group:     group,
		expiresAt: now.Add(c.ttl),
		syncedAt:  now,
	})
}

// Invalidate drops a cached group so the next read goes to the scraper.
func (c *MemoryCache) Invalidate(path domain.PostGroupPath) {
	c.groups.Delete(path.String())
}

// cleanup periodically removes expired entries from the cache.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		c.groups.Range(func(key, value interface{}) bool {
			entry := value.(*cacheEntry)
			if now.After(entry.expiresAt) {
				c.groups.Delete(key)
			}
			return true
		})
	}
}
