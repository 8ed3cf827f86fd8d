// Package client mirrors what the map front end does against the news
// API: it keeps a short-lived per-region copy of the last payload,
// derives a marker category from the newest item and drops region
// selections that were superseded while in flight.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lysyi3m/news-map/app/classify"
	"github.com/lysyi3m/news-map/app/news"
)

const (
	DefaultLimit = 30
	DefaultTTL   = 2 * time.Minute
)

// APIError is a non-200 answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Region is a map region as listed by the server.
type Region struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type entry struct {
	fetchedAt time.Time
	payload   *news.Result
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limit      int
	ttl        time.Duration

	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithLimit(limit int) Option {
	return func(c *Client) { c.limit = limit }
}

func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limit:      DefaultLimit,
		ttl:        DefaultTTL,
		entries:    make(map[string]entry),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegionNews returns the region payload, from the local copy when it is
// younger than the TTL. force always asks the server and replaces the
// local copy.
func (c *Client) RegionNews(ctx context.Context, regionID string, force bool) (*news.Result, error) {
	now := c.now()

	if !force {
		c.mu.Lock()
		e, ok := c.entries[regionID]
		c.mu.Unlock()
		if ok && now.Sub(e.fetchedAt) < c.ttl {
			return e.payload, nil
		}
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.limit))
	if force {
		query.Set("force", "1")
	}

	var payload news.Result
	if err := c.get(ctx, "/api/news/"+url.PathEscape(regionID)+"?"+query.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Items == nil {
		payload.Items = []news.Item{}
	}

	c.mu.Lock()
	c.entries[regionID] = entry{fetchedAt: now, payload: &payload}
	c.mu.Unlock()

	return &payload, nil
}

func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	var regions []Region
	if err := c.get(ctx, "/api/regions", &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// LatestCategory is the category of the newest item, used for map
// markers. It intentionally differs from the server dominant category.
func LatestCategory(items []news.Item) classify.Category {
	if len(items) == 0 || items[0].Category == "" {
		return classify.Others
	}
	return items[0].Category
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil && json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
