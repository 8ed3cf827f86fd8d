package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/region"
)

type SyncRegionConfigTask struct {
	Task
	RegionConfig *region.Config
	regionRepo   RegionWriter
}

func NewSyncRegionConfigTask(regionConfig *region.Config, regionRepo RegionWriter) *SyncRegionConfigTask {
	return &SyncRegionConfigTask{
		Task:         NewTask(TaskTypeSyncRegionConfig, regionConfig.ID),
		RegionConfig: regionConfig,
		regionRepo:   regionRepo,
	}
}

func (t *SyncRegionConfigTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := t.regionRepo.UpsertRegion(ctx, toRegion(t.RegionConfig))
	if err != nil {
		slog.Error("Task failed", "type", "SyncRegionConfig", "region", t.RegionID, "error", err)
		return fmt.Errorf("failed to sync region config to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncRegionConfig",
		"region", t.RegionID,
		"feeds", len(t.RegionConfig.Feeds),
		"duration", t.GetDuration())

	return nil
}

// SyncRegions writes every loaded region config to the store in order and
// returns how many succeeded. Failures are logged and skipped.
func SyncRegions(ctx context.Context, configs []*region.Config, regionRepo RegionWriter) int {
	synced := 0
	for _, regionConfig := range configs {
		task := NewSyncRegionConfigTask(regionConfig, regionRepo)
		task.Start()
		if err := task.Execute(ctx); err != nil {
			continue
		}
		synced++
	}
	return synced
}

func toRegion(regionConfig *region.Config) database.Region {
	feeds := make([]database.Feed, 0, len(regionConfig.Feeds))
	for _, f := range regionConfig.Feeds {
		feeds = append(feeds, database.Feed{URL: f.URL, Category: f.Category})
	}

	return database.Region{
		ID:      regionConfig.ID,
		Name:    regionConfig.Name,
		Country: regionConfig.Country,
		Lat:     regionConfig.Lat,
		Lng:     regionConfig.Lng,
		Feeds:   feeds,
	}
}
