package cache

import (
	"context"

	"github.com/lysyi3m/news-map/app/news"
)

// Backend is a result cache the service and health endpoint can use.
type Backend interface {
	news.ResultCache
	Health(ctx context.Context) map[string]interface{}
	Close() error
}

var (
	_ Backend = (*MemoryCache)(nil)
	_ Backend = (*RedisCache)(nil)
)
