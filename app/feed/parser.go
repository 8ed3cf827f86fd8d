package feed

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Parser is safe for concurrent use. gofeed.Parser fills its translators
// lazily on first use, so every Run gets its own instance.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run parses an RSS, Atom or JSON feed document fetched from feedURL.
// Items are labelled with the feed title, or the feedURL host when the
// feed has none.
func (p *Parser) Run(data []byte, feedURL string) (*Metadata, []Item, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       strings.TrimSpace(feed.Title),
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	source := metadata.Title
	if source == "" {
		source = hostname(feedURL)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.normalizeItem(item, source))
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item, source string) Item {
	normalized := Item{
		Title:  plainText(item.Title),
		Link:   strings.TrimSpace(item.Link),
		Source: source,
	}

	if item.PublishedParsed != nil {
		published := item.PublishedParsed.UTC()
		normalized.PublishedAt = &published
	} else if item.UpdatedParsed != nil {
		updated := item.UpdatedParsed.UTC()
		normalized.PublishedAt = &updated
	}

	return normalized
}

// plainText strips markup some feeds leave in titles and collapses
// whitespace.
func plainText(s string) string {
	if strings.ContainsRune(s, '<') {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func hostname(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
