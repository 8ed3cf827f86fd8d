package news

import (
	"context"
	"time"

	"github.com/lysyi3m/news-map/app/classify"
	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/feed"
)

// Item is a classified news item as served to clients.
type Item struct {
	Title    string            `json:"title"`
	Link     string            `json:"link"`
	IsoDate  *time.Time        `json:"isoDate"`
	Source   string            `json:"source"`
	Category classify.Category `json:"category"`
}

// Result is one aggregation run for a region. It is never mutated after
// construction; a later run replaces it.
type Result struct {
	RegionID         string            `json:"regionId"`
	DominantCategory classify.Category `json:"dominantCategory"`
	Count            int               `json:"count"`
	Items            []Item            `json:"items"`
}

// RegionLookup resolves a region id. A nil region with nil error means
// the id is unknown.
type RegionLookup interface {
	GetRegion(ctx context.Context, regionID string) (*database.Region, error)
}

// FeedFetcher retrieves one feed and never fails; broken feeds yield no
// items.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) []feed.Item
}

// ResultCache stores aggregation results keyed by region id and limit.
// Expired entries must be reported as absent.
type ResultCache interface {
	Get(ctx context.Context, regionID string, limit int) (*Result, bool, error)
	Put(ctx context.Context, regionID string, limit int, result *Result) error
}

var (
	_ RegionLookup = (*database.SQLRegionRepository)(nil)
	_ FeedFetcher  = (*feed.Fetcher)(nil)
)
