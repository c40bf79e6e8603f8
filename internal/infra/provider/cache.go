package provider

import (
	"sync"

	"geosynth/internal/domain/entity"
)

// Cache memoizes geocoding results per normalized query text so the same
// address never hits the upstream twice within a process lifetime. Each
// provider owns the cache handed to its constructor; tests reset state
// between cases through Clear.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entity.GeocodedPoint
}

// NewCache creates an empty memoization cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entity.GeocodedPoint)}
}

// Get returns the memoized point for the key. A nil point with ok true is a
// memoized negative result.
func (c *Cache) Get(key string) (*entity.GeocodedPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	point, ok := c.entries[key]

	return point, ok
}

// Put memoizes the point, nil included, under the key.
func (c *Cache) Put(key string, point *entity.GeocodedPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = point
}

// Clear drops every memoized entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entity.GeocodedPoint)
}
