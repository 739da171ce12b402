package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jmfancher/weather-widget-service/internal/models"
)

// Cache defines the interface for search-result caching implementations.
// Keys are normalized city names; values are whole SearchResults so a hit
// skips both upstream calls.
type Cache interface {
	Get(ctx context.Context, key string) (models.SearchResult, bool, error)
	Set(ctx context.Context, key string, value models.SearchResult, ttl time.Duration) error
}

// InMemoryCache implements Cache using an in-memory map with TTL-based
// expiration. Expired entries are removed on access.
type InMemoryCache struct {
	mu   sync.Mutex
	data map[string]cacheEntry
}

// cacheEntry stores a cached search result with its expiration timestamp.
type cacheEntry struct {
	value     models.SearchResult
	expiresAt time.Time
}

// NewInMemoryCache creates a new in-memory cache instance.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		data: make(map[string]cacheEntry),
	}
}

// Get retrieves the cached result for the key if present and not expired.
// Returns (result, true, nil) on cache hit, (zero, false, nil) on miss or
// expiration. Expired entries are removed on access.
func (c *InMemoryCache) Get(ctx context.Context, key string) (models.SearchResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[key]
	if !ok {
		return models.SearchResult{}, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.data, key)
		return models.SearchResult{}, false, nil
	}

	return entry.value, true, nil
}

// Set stores a search result with the specified TTL duration. The entry
// expires after TTL elapses and is removed on the next Get access.
func (c *InMemoryCache) Set(ctx context.Context, key string, value models.SearchResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}
