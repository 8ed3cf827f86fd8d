// Package metrics provides Prometheus metrics for the news pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FetchSuccess = "success"
	FetchFailure = "failure"

	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
	CacheError  = "error"
)

var (
	// FeedFetchTotal counts feed fetches by outcome.
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsmap",
			Name:      "feed_fetch_total",
			Help:      "Total number of feed fetches",
		},
		[]string{"status"},
	)

	// CacheLookupsTotal counts result cache lookups by outcome.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsmap",
			Name:      "cache_lookups_total",
			Help:      "Total number of result cache lookups",
		},
		[]string{"result"},
	)

	// AggregationDuration measures full region aggregation runs.
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "newsmap",
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of region aggregation runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// AggregationItems observes how many items an aggregation returned.
	AggregationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "newsmap",
			Name:      "aggregation_items",
			Help:      "Distribution of item counts per aggregation",
			Buckets:   []float64{0, 5, 10, 30, 60, 100, 200},
		},
	)
)

// RecordFeedFetch records a single feed fetch outcome.
func RecordFeedFetch(status string) {
	FeedFetchTotal.WithLabelValues(status).Inc()
}

// RecordCacheLookup records a result cache lookup outcome.
func RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordAggregation records an aggregation run.
func RecordAggregation(duration time.Duration, items int) {
	AggregationDuration.Observe(duration.Seconds())
	AggregationItems.Observe(float64(items))
}
