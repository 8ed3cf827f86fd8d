// Package news aggregates, classifies and caches region news.
package news

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/lysyi3m/news-map/app/classify"
	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/feed"
	"github.com/lysyi3m/news-map/app/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxLimit bounds response size and fetch cost.
const DefaultMaxLimit = 200

type Aggregator struct {
	regions    RegionLookup
	fetcher    FeedFetcher
	classifier *classify.Classifier
	maxLimit   int
}

func NewAggregator(regions RegionLookup, fetcher FeedFetcher, classifier *classify.Classifier, maxLimit int) *Aggregator {
	if classifier == nil {
		classifier = classify.Default()
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}

	return &Aggregator{
		regions:    regions,
		fetcher:    fetcher,
		classifier: classifier,
		maxLimit:   maxLimit,
	}
}

// ClampLimit maps a requested limit into [0, maxLimit].
func (a *Aggregator) ClampLimit(limit int) int {
	return min(max(limit, 0), a.maxLimit)
}

// Aggregate fetches every feed of the region concurrently, classifies the
// merged items by title and returns the newest limit items.
func (a *Aggregator) Aggregate(ctx context.Context, regionID string, limit int) (*Result, error) {
	start := time.Now()
	limit = a.ClampLimit(limit)

	region, err := a.regions.GetRegion(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve region %s: %w", regionID, err)
	}
	if region == nil {
		return nil, &NotFoundError{RegionID: regionID}
	}

	var items []Item
	if limit > 0 {
		items = a.collect(ctx, region.Feeds)
	}

	sortNewestFirst(items)
	if len(items) > limit {
		items = slices.Clip(items[:limit])
	}
	if items == nil {
		items = []Item{}
	}

	categories := make([]classify.Category, len(items))
	for i, item := range items {
		categories[i] = item.Category
	}

	result := &Result{
		RegionID:         regionID,
		DominantCategory: a.classifier.DominantCategory(categories),
		Count:            len(items),
		Items:            items,
	}

	metrics.RecordAggregation(time.Since(start), result.Count)
	slog.Debug("Region aggregated",
		"region", regionID,
		"feeds", len(region.Feeds),
		"items", result.Count,
		"dominant", result.DominantCategory,
		"duration", time.Since(start))

	return result, nil
}

// collect runs one fetch per feed and waits for all of them. Batches are
// merged in feed-list order so completion order never leaks into output.
func (a *Aggregator) collect(ctx context.Context, feeds []database.Feed) []Item {
	batches := make([][]feed.Item, len(feeds))

	var g errgroup.Group
	for i, f := range feeds {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Feed fetch panicked", "url", f.URL, "panic", r)
					batches[i] = nil
				}
			}()
			batches[i] = a.fetcher.Fetch(ctx, f.URL)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, batch := range batches {
		total += len(batch)
	}

	items := make([]Item, 0, total)
	for _, batch := range batches {
		for _, fi := range batch {
			items = append(items, Item{
				Title:    fi.Title,
				Link:     fi.Link,
				IsoDate:  fi.PublishedAt,
				Source:   fi.Source,
				Category: a.classifier.Classify(fi.Title),
			})
		}
	}

	return items
}

// sortNewestFirst orders items by date descending; undated items count
// as the zero time and keep their relative order.
func sortNewestFirst(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(timestamp(b), timestamp(a))
	})
}

func timestamp(item Item) int64 {
	if item.IsoDate == nil {
		return time.Time{}.UnixNano()
	}
	return item.IsoDate.UnixNano()
}
