package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type WarmRegionTask struct {
	Task
	Limit  int
	warmer Warmer
}

func NewWarmRegionTask(regionID string, limit int, warmer Warmer) *WarmRegionTask {
	return &WarmRegionTask{
		Task:   NewTask(TaskTypeWarmRegion, regionID),
		Limit:  limit,
		warmer: warmer,
	}
}

func (t *WarmRegionTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.warmer.Warm(ctx, t.RegionID, t.Limit); err != nil {
		slog.Error("Task failed", "type", "WarmRegion", "region", t.RegionID, "error", err)
		return fmt.Errorf("failed to warm region cache: %w", err)
	}

	slog.Debug("Task completed",
		"type", "WarmRegion",
		"region", t.RegionID,
		"limit", t.Limit,
		"duration", t.GetDuration())

	return nil
}
