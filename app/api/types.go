package api

import (
	"context"

	"github.com/lysyi3m/news-map/app/cache"
	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/news"
	"github.com/lysyi3m/news-map/app/tasks"
)

type NewsReader interface {
	RegionNews(ctx context.Context, regionID string, limit int, force bool) (*news.Result, news.CacheStatus, error)
}

type RegionLister interface {
	ListRegions(ctx context.Context) ([]database.Region, error)
	GetRegionCount(ctx context.Context) (int, error)
}

type HealthReporter interface {
	Health(ctx context.Context) map[string]interface{}
}

type RegionReloader interface {
	ReloadRegion(regionID string) ([]tasks.TaskInterface, error)
}

var (
	_ NewsReader     = (*news.Service)(nil)
	_ RegionLister   = (*database.SQLRegionRepository)(nil)
	_ HealthReporter = (cache.Backend)(nil)
	_ RegionReloader = (*tasks.Scheduler)(nil)
)

type Handler struct {
	news         NewsReader
	regions      RegionLister
	cache        HealthReporter
	reloader     RegionReloader
	defaultLimit int
	version      string
}

type regionResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Country string         `json:"country"`
	Lat     float64        `json:"lat"`
	Lng     float64        `json:"lng"`
	Feeds   []feedResponse `json:"feeds"`
}

type feedResponse struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}
