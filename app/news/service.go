package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/news-map/app/metrics"
	"golang.org/x/sync/singleflight"
)

// CacheStatus reports how a read was served.
type CacheStatus string

const (
	CacheHit    CacheStatus = "HIT"
	CacheMiss   CacheStatus = "MISS"
	CacheBypass CacheStatus = "BYPASS"
)

// Service is the cached read path over an Aggregator.
type Service struct {
	aggregator *Aggregator
	cache      ResultCache
	group      singleflight.Group
}

func NewService(aggregator *Aggregator, cache ResultCache) *Service {
	return &Service{
		aggregator: aggregator,
		cache:      cache,
	}
}

// ClampLimit maps a requested limit into the accepted range.
func (s *Service) ClampLimit(limit int) int {
	return s.aggregator.ClampLimit(limit)
}

// RegionNews returns the news for a region. A forced read always
// aggregates and leaves the cache untouched. Otherwise a fresh cache entry
// is returned as is, and concurrent misses for one key share a single
// aggregation whose result is written back.
func (s *Service) RegionNews(ctx context.Context, regionID string, limit int, force bool) (*Result, CacheStatus, error) {
	limit = s.ClampLimit(limit)

	if force {
		metrics.RecordCacheLookup(metrics.CacheBypass)
		result, err := s.aggregator.Aggregate(ctx, regionID, limit)
		if err != nil {
			return nil, CacheBypass, err
		}
		return result, CacheBypass, nil
	}

	cached, ok, err := s.cache.Get(ctx, regionID, limit)
	switch {
	case err != nil:
		metrics.RecordCacheLookup(metrics.CacheError)
		slog.Warn("Cache lookup failed", "region", regionID, "limit", limit, "error", err)
	case ok:
		metrics.RecordCacheLookup(metrics.CacheHit)
		return cached, CacheHit, nil
	default:
		metrics.RecordCacheLookup(metrics.CacheMiss)
	}

	key := fmt.Sprintf("%s:%d", regionID, limit)
	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Shared by every waiter, so it must not inherit one caller's cancellation.
		return s.refresh(context.WithoutCancel(ctx), regionID, limit)
	})
	if err != nil {
		return nil, CacheMiss, err
	}

	return value.(*Result), CacheMiss, nil
}

// Warm aggregates a region and stores the result regardless of any
// existing entry.
func (s *Service) Warm(ctx context.Context, regionID string, limit int) error {
	_, err := s.refresh(ctx, regionID, s.ClampLimit(limit))
	return err
}

func (s *Service) refresh(ctx context.Context, regionID string, limit int) (*Result, error) {
	result, err := s.aggregator.Aggregate(ctx, regionID, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, regionID, limit, result); err != nil {
		slog.Warn("Cache store failed", "region", regionID, "limit", limit, "error", err)
	}

	return result, nil
}

// IsNotFound reports whether err means the region id is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRegionNotFound)
}
