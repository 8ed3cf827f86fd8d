package news

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/feed"
)

type fakeRegions struct {
	regions map[string]*database.Region
	err     error
}

func (f *fakeRegions) GetRegion(ctx context.Context, regionID string) (*database.Region, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.regions[regionID], nil
}

func regionWithFeeds(id string, urls ...string) *database.Region {
	feeds := make([]database.Feed, 0, len(urls))
	for _, url := range urls {
		feeds = append(feeds, database.Feed{URL: url, Category: "war"})
	}
	return &database.Region{ID: id, Name: id, Feeds: feeds}
}

type fakeFetcher struct {
	items  map[string][]feed.Item
	delays map[string]time.Duration
	calls  atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, feedURL string) []feed.Item {
	f.calls.Add(1)
	if d, ok := f.delays[feedURL]; ok {
		time.Sleep(d)
	}
	if items, ok := f.items[feedURL]; ok {
		return items
	}
	return []feed.Item{}
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*Result
	gets    int
	puts    int
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*Result)}
}

func cacheKey(regionID string, limit int) string {
	return fmt.Sprintf("%s/%d", regionID, limit)
}

func (c *memoryCache) Get(ctx context.Context, regionID string, limit int) (*Result, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	result, ok := c.entries[cacheKey(regionID, limit)]
	return result, ok, nil
}

func (c *memoryCache) Put(ctx context.Context, regionID string, limit int, result *Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[cacheKey(regionID, limit)] = result
	return nil
}

var errStoreDown = errors.New("store down")

func at(hour int) *time.Time {
	t := time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC)
	return &t
}
