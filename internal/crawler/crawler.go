package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"seoengine/internal/domain"
	"seoengine/internal/monitoring"
)

// Options bound a single crawl run. OnPage, when set, receives every
// PageRecord as soon as it is produced; the returned slice is unaffected.
type Options struct {
	MaxDepth int
	MaxPages int
	OnPage   func(domain.PageRecord)
}

// Crawler performs bounded breadth-first traversal of a single site.
// It holds only immutable dependencies; all traversal state lives in a
// per-call run value, so concurrent crawls never share a frontier.
type Crawler struct {
	fetcher Fetcher
	limiter *rate.Limiter
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

func NewCrawler(fetcher Fetcher, limiter *rate.Limiter, m *monitoring.Metrics, l *zap.Logger) *Crawler {
	return &Crawler{
		fetcher: fetcher,
		limiter: limiter,
		metrics: m,
		logger:  l,
	}
}

type frontierEntry struct {
	url   string
	depth int
}

// run is the mutable state of one crawl invocation.
type run struct {
	frontier []frontierEntry
	visited  map[string]bool // dequeued
	queued   map[string]bool // enqueued, prevents frontier duplicates
	results  []domain.PageRecord
}

// Crawl walks the site rooted at seedURL breadth-first, restricted to the
// seed's scheme+host, and returns fetched pages in non-decreasing depth
// order. Fetch failures are logged and skipped; the crawl continues with
// the remaining frontier. Cancellation of ctx stops the dequeue loop.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, opts Options) ([]domain.PageRecord, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Scheme == "" || seed.Host == "" {
		return nil, fmt.Errorf("invalid seed URL %q", seedURL)
	}
	if opts.MaxPages < 1 {
		return nil, fmt.Errorf("max pages must be at least 1, got %d", opts.MaxPages)
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", opts.MaxDepth)
	}

	st := &run{
		frontier: []frontierEntry{{url: seedURL, depth: 0}},
		visited:  make(map[string]bool),
		queued:   map[string]bool{seedURL: true},
	}

	for len(st.frontier) > 0 && len(st.results) < opts.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := st.frontier[0]
		st.frontier = st.frontier[1:]

		if st.visited[entry.url] || entry.depth > opts.MaxDepth {
			continue
		}
		st.visited[entry.url] = true

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		rec, err := c.fetcher.Fetch(ctx, entry.url)
		if err != nil {
			// URL stays visited so a repeated link cannot cause a retry loop.
			c.logger.Warn("fetch failed, skipping",
				zap.String("url", entry.url),
				zap.Int("depth", entry.depth),
				zap.Error(err))
			if c.metrics != nil {
				c.metrics.IncCrawlErrors("fetch_failed")
			}
			continue
		}

		rec.Depth = entry.depth
		st.results = append(st.results, *rec)
		if c.metrics != nil {
			c.metrics.IncPagesCrawled()
		}
		c.logger.Info("crawled page",
			zap.String("url", entry.url),
			zap.Int("depth", entry.depth),
			zap.Int("count", len(st.results)))

		if opts.OnPage != nil {
			opts.OnPage(*rec)
		}

		if entry.depth < opts.MaxDepth && len(st.results) < opts.MaxPages {
			c.enqueueLinks(st, seed, rec)
		}
	}

	return st.results, nil
}

// enqueueLinks discovers same-origin anchors in document order and adds them
// to the frontier at depth+1. Unparsable HTML yields no links.
func (c *Crawler) enqueueLinks(st *run, seed *url.URL, rec *domain.PageRecord) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Content))
	if err != nil {
		return
	}
	base, err := url.Parse(rec.URL)
	if err != nil {
		return
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != seed.Scheme || abs.Host != seed.Host {
			return
		}
		abs.Fragment = ""
		link := abs.String()
		if st.visited[link] || st.queued[link] {
			return
		}
		st.queued[link] = true
		st.frontier = append(st.frontier, frontierEntry{url: link, depth: rec.Depth + 1})
	})
}
