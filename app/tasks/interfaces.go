package tasks

import (
	"context"

	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/news"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API to run background work.
// Example usage:
//
//	scheduler := NewScheduler(configCache, regionRepo, service, warmInterval, workerCount, limit)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewWarmRegionTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// RegionWriter persists region definitions.
type RegionWriter interface {
	UpsertRegion(ctx context.Context, region database.Region) error
}

// Warmer aggregates a region and stores the result in the result cache.
type Warmer interface {
	Warm(ctx context.Context, regionID string, limit int) error
}

var (
	_ RegionWriter = (*database.SQLRegionRepository)(nil)
	_ Warmer       = (*news.Service)(nil)
)
