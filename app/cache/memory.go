// Package cache provides result cache backends for the news service.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lysyi3m/news-map/app/news"
)

type memoryKey struct {
	regionID string
	limit    int
}

// MemoryCache keeps results in process memory, bounded by entry count.
// Entries older than ttl are reported as absent and dropped in the
// background by the LRU's own expiry loop.
type MemoryCache struct {
	entries *expirable.LRU[memoryKey, *news.Result]
	size    int
	ttl     time.Duration
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	onEvict := func(key memoryKey, _ *news.Result) {
		slog.Debug("Cache entry evicted", "region_id", key.regionID, "limit", key.limit)
	}

	return &MemoryCache{
		entries: expirable.NewLRU[memoryKey, *news.Result](size, onEvict, ttl),
		size:    size,
		ttl:     ttl,
	}
}

func (c *MemoryCache) Get(ctx context.Context, regionID string, limit int) (*news.Result, bool, error) {
	result, ok := c.entries.Get(memoryKey{regionID, limit})
	return result, ok, nil
}

// Put replaces the entry for the key as a whole and restarts its TTL.
func (c *MemoryCache) Put(ctx context.Context, regionID string, limit int, result *news.Result) error {
	c.entries.Add(memoryKey{regionID, limit}, result)
	return nil
}

// Len returns the number of stored entries. Expired entries count until
// the expiry loop reaches them.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

func (c *MemoryCache) Health(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status":      "healthy",
		"type":        "memory",
		"entry_count": c.Len(),
		"max_entries": c.size,
		"ttl_seconds": int(c.ttl.Seconds()),
	}
}

func (c *MemoryCache) Close() error {
	c.entries.Purge()
	return nil
}
