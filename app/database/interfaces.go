package database

import (
	"context"
)

type RegionRepository interface {
	// GetRegion returns nil without error when the region does not exist.
	GetRegion(ctx context.Context, regionID string) (*Region, error)
	ListRegions(ctx context.Context) ([]Region, error)
	GetRegionCount(ctx context.Context) (int, error)

	UpsertRegion(ctx context.Context, region Region) error
}
