package feed

import (
	"time"
)

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Item is one normalized feed entry. PublishedAt is nil when the feed
// carries no parseable date.
type Item struct {
	Title       string
	Link        string
	PublishedAt *time.Time
	Source      string
}
