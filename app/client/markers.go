package client

import (
	"context"
	"errors"
	"sync"

	"github.com/lysyi3m/news-map/app/classify"
	"github.com/lysyi3m/news-map/app/news"
	"golang.org/x/sync/errgroup"
)

// ErrSuperseded is returned for a selection that finished after the user
// had already moved on to another region.
var ErrSuperseded = errors.New("selection superseded")

const markerConcurrency = 4

// Marker is the state of one region pin on the map.
type Marker struct {
	Region   Region
	Category classify.Category
	Count    int
	Err      error
}

// RefreshMarkers loads every region and derives its marker category. A
// failing region gets its error recorded and never affects the others.
func (c *Client) RefreshMarkers(ctx context.Context, regions []Region, force bool) []Marker {
	markers := make([]Marker, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(markerConcurrency)
	for i, region := range regions {
		g.Go(func() error {
			markers[i].Region = region
			payload, err := c.RegionNews(gctx, region.ID, force)
			if err != nil {
				markers[i].Err = err
				markers[i].Category = classify.Others
				return nil
			}
			markers[i].Category = LatestCategory(payload.Items)
			markers[i].Count = payload.Count
			return nil
		})
	}
	_ = g.Wait()

	return markers
}

// Selector tracks the region the user looked at last. Only the newest
// selection, or one for the same region, is delivered.
type Selector struct {
	client *Client

	mu      sync.Mutex
	seq     uint64
	current string
}

func NewSelector(client *Client) *Selector {
	return &Selector{client: client}
}

// Select loads a region. In-flight loads are never cancelled; a load
// that completes after a newer selection of a different region returns
// ErrSuperseded.
func (s *Selector) Select(ctx context.Context, regionID string, force bool) (*news.Result, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.current = regionID
	s.mu.Unlock()

	payload, err := s.client.RegionNews(ctx, regionID, force)

	s.mu.Lock()
	superseded := s.seq != seq && s.current != regionID
	s.mu.Unlock()

	if superseded {
		return nil, ErrSuperseded
	}
	return payload, err
}

// Current returns the most recently selected region id.
func (s *Selector) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
