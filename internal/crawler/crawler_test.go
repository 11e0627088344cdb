package crawler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seoengine/internal/domain"
)

// stubFetcher serves an in-memory site graph and records every fetch.
type stubFetcher struct {
	pages    map[string]string
	failing  map[string]bool
	statuses map[string]int
	fetched  []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*domain.PageRecord, error) {
	f.fetched = append(f.fetched, url)
	if f.failing[url] {
		return nil, errors.New("connection refused")
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no route for %s", url)
	}
	status := 200
	if s, ok := f.statuses[url]; ok {
		status = s
	}
	return &domain.PageRecord{
		URL:     url,
		Content: html,
		Status:  status,
		Headers: map[string]string{"Content-Type": "text/html"},
		Timing:  domain.PageTiming{TTFB: 100, LoadTime: 1000},
	}, nil
}

func siteFetcher() *stubFetcher {
	return &stubFetcher{
		pages: map[string]string{
			"https://example.com/": `<html><body>
				<a href="/a">A</a>
				<a href="/b">B</a>
				<a href="https://other.com/x">external</a>
				<a href="/a#section">A again</a>
			</body></html>`,
			"https://example.com/a": `<html><body><a href="/c">C</a></body></html>`,
			"https://example.com/b": `<html><body><a href="/a">dup</a></body></html>`,
			"https://example.com/c": `<html><body>leaf</body></html>`,
		},
		failing:  map[string]bool{},
		statuses: map[string]int{},
	}
}

func newTestCrawler(f Fetcher) *Crawler {
	return NewCrawler(f, nil, nil, zap.NewNop())
}

func TestCrawlBreadthFirstOrder(t *testing.T) {
	c := newTestCrawler(siteFetcher())

	pages, err := c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 3, MaxPages: 10})
	require.NoError(t, err)
	require.Len(t, pages, 4)

	urls := make([]string, len(pages))
	for i, p := range pages {
		urls[i] = p.URL
	}
	assert.Equal(t, []string{
		"https://example.com/",
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, urls)

	for i := 1; i < len(pages); i++ {
		assert.GreaterOrEqual(t, pages[i].Depth, pages[i-1].Depth, "depth order must be non-decreasing")
	}
	assert.Equal(t, 0, pages[0].Depth)
	assert.Equal(t, 2, pages[3].Depth)
}

func TestCrawlNoDuplicateFetches(t *testing.T) {
	f := siteFetcher()
	c := newTestCrawler(f)

	_, err := c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 5, MaxPages: 20})
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, u := range f.fetched {
		seen[u]++
	}
	for u, n := range seen {
		assert.Equal(t, 1, n, "URL %s fetched more than once", u)
	}
}

func TestCrawlMaxPages(t *testing.T) {
	c := newTestCrawler(siteFetcher())

	pages, err := c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 5, MaxPages: 2})
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestCrawlMaxDepth(t *testing.T) {
	f := siteFetcher()
	c := newTestCrawler(f)

	pages, err := c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 0, MaxPages: 10})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "https://example.com/", pages[0].URL)

	pages, err = c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 1, MaxPages: 10})
	require.NoError(t, err)
	require.Len(t, pages, 3)
	for _, p := range pages {
		assert.LessOrEqual(t, p.Depth, 1)
	}
}

func TestCrawlSameOriginOnly(t *testing.T) {
	f := siteFetcher()
	c := newTestCrawler(f)

	_, err := c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 5, MaxPages: 20})
	require.NoError(t, err)

	for _, u := range f.fetched {
		assert.NotContains(t, u, "other.com")
	}
}

func TestCrawlFetchFailureSkipped(t *testing.T) {
	f := siteFetcher()
	f.failing["https://example.com/a"] = true
	c := newTestCrawler(f)

	pages, err := c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 5, MaxPages: 20})
	require.NoError(t, err)

	for _, p := range pages {
		assert.NotEqual(t, "https://example.com/a", p.URL)
	}
	// The failed URL is visited exactly once; the duplicate link on /b
	// must not trigger a retry.
	attempts := 0
	for _, u := range f.fetched {
		if u == "https://example.com/a" {
			attempts++
		}
	}
	assert.Equal(t, 1, attempts)
	// /b survives, /c is unreachable because only /a linked to it.
	assert.Len(t, pages, 2)
}

func TestCrawlStreamsPagesInOrder(t *testing.T) {
	c := newTestCrawler(siteFetcher())

	var streamed []string
	pages, err := c.Crawl(context.Background(), "https://example.com/", Options{
		MaxDepth: 5,
		MaxPages: 20,
		OnPage:   func(p domain.PageRecord) { streamed = append(streamed, p.URL) },
	})
	require.NoError(t, err)

	urls := make([]string, len(pages))
	for i, p := range pages {
		urls[i] = p.URL
	}
	assert.Equal(t, urls, streamed)
}

func TestCrawlCancellation(t *testing.T) {
	c := newTestCrawler(siteFetcher())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Crawl(ctx, "https://example.com/", Options{MaxDepth: 5, MaxPages: 20})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrawlInvalidInput(t *testing.T) {
	c := newTestCrawler(siteFetcher())

	_, err := c.Crawl(context.Background(), "not-a-url", Options{MaxDepth: 1, MaxPages: 1})
	assert.Error(t, err)

	_, err = c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: 1, MaxPages: 0})
	assert.Error(t, err)

	_, err = c.Crawl(context.Background(), "https://example.com/", Options{MaxDepth: -1, MaxPages: 1})
	assert.Error(t, err)
}
