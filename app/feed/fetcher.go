package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/lysyi3m/news-map/app/metrics"
	"golang.org/x/time/rate"
)

// maxFeedSize caps how much of a response body is read.
const maxFeedSize = 10 << 20

// Fetcher retrieves and normalizes a single feed. It never fails: any
// network, HTTP, timeout or parse error is logged and yields no items.
type Fetcher struct {
	httpClient *http.Client
	parser     *Parser
	limiter    *rate.Limiter
	userAgent  string
	timeout    time.Duration
}

// NewHTTPClient returns a client whose dial, TLS handshake, response
// header and overall request time are all bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// NewFetcher creates a fetcher. limiter may be nil to disable outgoing
// rate limiting.
func NewFetcher(httpClient *http.Client, parser *Parser, userAgent string, timeout time.Duration, limiter *rate.Limiter) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		parser:     parser,
		limiter:    limiter,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, feedURL string) []Item {
	start := time.Now()

	items, err := f.fetch(ctx, feedURL)
	if err != nil {
		metrics.RecordFeedFetch(metrics.FetchFailure)
		slog.Warn("Feed fetch failed", "url", feedURL, "duration", time.Since(start), "error", err)
		return []Item{}
	}

	metrics.RecordFeedFetch(metrics.FetchSuccess)
	slog.Debug("Feed fetched", "url", feedURL, "items", len(items), "duration", time.Since(start))

	return items
}

func (f *Fetcher) fetch(ctx context.Context, feedURL string) ([]Item, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if f.limiter != nil {
		if err := f.limiter.Wait(timeoutCtx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	data, err := f.download(timeoutCtx, feedURL)
	if err != nil {
		return nil, err
	}

	_, items, err := f.parser.Run(data, feedURL)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (f *Fetcher) download(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
