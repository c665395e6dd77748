package llm

import (
	"sync"
	"time"
)

// cacheEntry represents a cached extraction result.
type cacheEntry struct {
	expiry   time.Time
	criteria CriteriaResponse
}

// criteriaCache provides thread-safe caching for extraction results so
// repeated identical descriptions do not re-hit the API.
type criteriaCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newCriteriaCache creates a new cache with the specified TTL.
func newCriteriaCache(ttl time.Duration) *criteriaCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &criteriaCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get retrieves a result from the cache if it exists and hasn't expired.
func (c *criteriaCache) get(key string) (CriteriaResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return CriteriaResponse{}, false
	}

	if time.Now().After(entry.expiry) {
		return CriteriaResponse{}, false
	}

	return entry.criteria, true
}

// set stores a result in the cache.
func (c *criteriaCache) set(key string, criteria CriteriaResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		criteria: criteria,
		expiry:   time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *criteriaCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// size returns the number of entries in the cache.
func (c *criteriaCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *criteriaCache) Close() {
	close(c.stopCh)
}
