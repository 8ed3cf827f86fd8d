package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/news-map/app/news"
	"github.com/redis/go-redis/v9"
)

// RedisCache shares results between instances. Expiry is delegated to
// the Redis key TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", addr)

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// Key returns the Redis key for a region and limit.
func Key(regionID string, limit int) string {
	return fmt.Sprintf("news:%s:%d", regionID, limit)
}

func (c *RedisCache) Get(ctx context.Context, regionID string, limit int) (*news.Result, bool, error) {
	key := Key(regionID, limit)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	var result news.Result
	if err := json.Unmarshal(data, &result); err != nil || result.RegionID == "" {
		// Unreadable payloads are dropped and reported as a miss.
		if delErr := c.client.Del(ctx, key).Err(); delErr != nil {
			slog.Warn("Failed to drop unreadable cache entry", "key", key, "error", delErr)
		}
		return nil, false, nil
	}

	return &result, true, nil
}

func (c *RedisCache) Put(ctx context.Context, regionID string, limit int, result *news.Result) error {
	key := Key(regionID, limit)

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Health(ctx context.Context) map[string]interface{} {
	health := map[string]interface{}{
		"status": "healthy",
		"type":   "redis",
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
		return health
	}

	if size, err := c.client.DBSize(ctx).Result(); err == nil {
		health["key_count"] = size
	}

	return health
}
