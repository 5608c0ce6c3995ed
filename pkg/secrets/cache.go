package secrets

import (
	"sync"
	"time"
)

// defaultCacheSize bounds the cache. Courier resolves a handful of
// secrets, so the bound exists only to keep misuse from growing memory.
const defaultCacheSize = 64

// cacheEntry represents a cached secret with expiration.
type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Cache provides thread-safe caching of secrets with TTL and a size bound.
//
// Secrets are cached in memory to reduce backend calls. When the bound is
// reached the entry closest to expiry is evicted. A non-positive TTL
// disables caching entirely, which means every lookup goes to the
// providers.
type Cache struct {
	ttl     time.Duration
	maxSize int
	entries map[string]*cacheEntry
	mu      sync.RWMutex
}

// NewCache creates a new secret cache. A non-positive ttl disables
// caching; a non-positive maxSize applies the default bound.
func NewCache(ttl time.Duration, maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	return &Cache{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// Get retrieves a secret from the cache.
//
// Returns (value, true) if the secret exists and has not expired.
// Returns ("", false) if caching is disabled, the secret is not cached,
// or it has expired.
func (c *Cache) Get(key string) (string, bool) {
	if c.ttl <= 0 {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		return "", false
	}

	return entry.value, true
}

// Set stores a secret in the cache with the configured TTL.
//
// If the cache is full, the entry closest to expiry is evicted to make
// room for the new entry.
func (c *Cache) Set(key, value string) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		first := true

		for k, e := range c.entries {
			if first || e.expiresAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.expiresAt
				first = false
			}
		}

		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache.
//
// This is typically called when secrets need to be refreshed
// or when the cache needs to be invalidated.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Delete removes a specific entry from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Size returns the current number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
