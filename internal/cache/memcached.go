package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/jmfancher/weather-widget-service/internal/models"
)

// keyPrefix namespaces search entries so the service can share a memcached
// pool with other tenants.
const keyPrefix = "search:"

// Memcached expiration values above 30 days are interpreted as absolute unix
// timestamps, so relative TTLs must stay below that.
const maxRelativeExpSec = 30 * 24 * 60 * 60

// MemcachedCache stores search results in memcached as JSON.
type MemcachedCache struct {
	client *memcache.Client
}

// NewMemcachedCache connects to the servers in addrs, a comma-separated
// host:port list. Zero timeout or maxIdleConns keep the client defaults.
func NewMemcachedCache(addrs string, timeout time.Duration, maxIdleConns int) (*MemcachedCache, error) {
	servers := parseAddrs(addrs)
	if len(servers) == 0 {
		servers = []string{"localhost:11211"}
	}
	client := memcache.New(servers...)
	if timeout > 0 {
		client.Timeout = timeout
	}
	if maxIdleConns > 0 {
		client.MaxIdleConns = maxIdleConns
	}
	return &MemcachedCache{client: client}, nil
}

func parseAddrs(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Get returns the cached result for a normalized city, reporting a miss
// without error.
func (c *MemcachedCache) Get(ctx context.Context, key string) (models.SearchResult, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.SearchResult{}, false, err
	}
	item, err := c.client.Get(keyPrefix + key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return models.SearchResult{}, false, nil
	}
	if err != nil {
		return models.SearchResult{}, false, fmt.Errorf("memcached get: %w", err)
	}
	var result models.SearchResult
	if err := json.Unmarshal(item.Value, &result); err != nil {
		return models.SearchResult{}, false, fmt.Errorf("decode cached result: %w", err)
	}
	return result, true, nil
}

// Set stores a result under the normalized city key for the given TTL.
func (c *MemcachedCache) Set(ctx context.Context, key string, value models.SearchResult, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	expSec := int32(ttl.Seconds())
	if expSec <= 0 || expSec > maxRelativeExpSec {
		expSec = 600
	}
	return c.client.Set(&memcache.Item{
		Key:        keyPrefix + key,
		Value:      raw,
		Expiration: expSec,
	})
}

// Ping reports whether any configured memcached server is reachable.
func (c *MemcachedCache) Ping() error {
	return c.client.Ping()
}

// Close releases idle connections. Call during shutdown.
func (c *MemcachedCache) Close() error {
	return c.client.Close()
}
