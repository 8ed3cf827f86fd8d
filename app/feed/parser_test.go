package feed

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <language>en-us</language>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <guid>item-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>  Test Item 2  </title>
      <link>https://example.com/item2</link>
      <guid>item-2</guid>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	metadata, items, err := parser.Run([]byte(rssData), "https://example.com/rss.xml")
	require.NoError(t, err)

	assert.Equal(t, "Test Feed", metadata.Title)
	assert.Equal(t, "en-us", metadata.Language)
	require.Len(t, items, 2)

	item1 := items[0]
	assert.Equal(t, "Test Item 1", item1.Title)
	assert.Equal(t, "https://example.com/item1", item1.Link)
	assert.Equal(t, "Test Feed", item1.Source)
	require.NotNil(t, item1.PublishedAt)
	assert.True(t, item1.PublishedAt.Equal(time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)))

	item2 := items[1]
	assert.Equal(t, "Test Item 2", item2.Title, "title should be trimmed")
	assert.Nil(t, item2.PublishedAt)
}

func TestParseAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:1234567890</id>
  <entry>
    <title>Test Entry</title>
    <link href="https://example.com/entry1"/>
    <id>urn:uuid:entry-1</id>
    <updated>2023-07-03T10:00:00Z</updated>
  </entry>
</feed>`

	parser := NewParser()
	metadata, items, err := parser.Run([]byte(atomData), "https://example.com/atom.xml")
	require.NoError(t, err)

	assert.Equal(t, "Test Atom Feed", metadata.Title)
	require.Len(t, items, 1)

	// Atom entries without <published> fall back to <updated>
	require.NotNil(t, items[0].PublishedAt)
	assert.True(t, items[0].PublishedAt.Equal(time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "https://example.com/entry1", items[0].Link)
}

func TestParseSourceFallsBackToHost(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title></title>
    <item>
      <title>Untitled feed item</title>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	_, items, err := parser.Run([]byte(rssData), "https://news.example.org:8443/feed?format=rss")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "news.example.org", items[0].Source)
	assert.Empty(t, items[0].Link)
}

func TestParseInvalidFeed(t *testing.T) {
	parser := NewParser()
	_, _, err := parser.Run([]byte("this is not a feed"), "https://example.com/feed")
	assert.Error(t, err)
}

func TestParseRSSWithHTMLEntities(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>News &amp; Views</title>
    <item>
      <title>Markets &amp; Trade &#8211; weekly</title>
      <link>https://example.com/a</link>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	_, items, err := parser.Run([]byte(rssData), "https://example.com/feed")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "News & Views", items[0].Source)
	assert.Equal(t, "Markets & Trade – weekly", items[0].Title)
}

func TestParserStripsMarkupFromTitles(t *testing.T) {
	rss := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Wire</title>
    <item>
      <title><![CDATA[<b>Breaking:</b>   missile
 strike reported]]></title>
    </item>
    <item>
      <title>Growth &lt; 2% this year</title>
    </item>
  </channel>
</rss>`

	_, items, err := NewParser().Run([]byte(rss), "https://wire.example/rss")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Breaking: missile strike reported", items[0].Title)
	assert.Equal(t, "Growth < 2% this year", items[1].Title)
}

func TestParserSharedAcrossGoroutines(t *testing.T) {
	parser := NewParser()
	documents := []string{testRSS, testAtom}
	want := []int{2, 1}

	const runs = 20
	counts := make([]int, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, items, err := parser.Run([]byte(documents[i%2]), "https://example.com/feed")
			counts[i] = len(items)
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < runs; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i%2], counts[i], "run %d", i)
	}
}
