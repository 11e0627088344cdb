package crawler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"seoengine/internal/domain"
)

// Fetcher retrieves a single page. Implementations must be safe for
// sequential reuse and must release any browsing context on every exit path.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*domain.PageRecord, error)
}

const (
	defaultTTFBMillis = 300
	defaultLoadMillis = 2000
)

// Sub-resources that carry no signal for extraction; blocking them cuts
// navigation latency considerably.
var blockedResources = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.svg",
	"*.css", "*.woff", "*.woff2", "*.ttf", "*.otf",
}

const navigationTimingJS = `(function() {
	const t = window.performance.timing;
	if (!t || t.navigationStart === 0) return { ttfb: 300, load_time: 2000 };
	const ttfb = t.responseStart > t.requestStart ? t.responseStart - t.requestStart : 300;
	const load_time = t.loadEventEnd > t.navigationStart ? t.loadEventEnd - t.navigationStart : 2000;
	return { ttfb: ttfb, load_time: load_time };
})()`

// ChromeFetcher fetches pages through headless Chrome, one isolated browser
// context per call, drawn from a pool of exec allocators.
type ChromeFetcher struct {
	allocPool sync.Pool
	timeout   time.Duration
	logger    *zap.Logger
}

func NewChromeFetcher(timeout time.Duration, userAgent string, logger *zap.Logger) *ChromeFetcher {
	f := &ChromeFetcher{
		timeout: timeout,
		logger:  logger,
	}
	f.allocPool.New = func() interface{} {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)
		allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
		return allocCtx
	}
	return f
}

// Fetch navigates to url and returns the rendered HTML together with the
// document response status, headers and navigation timing. Timeouts and
// network errors return an error without panicking past this boundary.
func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (*domain.PageRecord, error) {
	allocCtx := f.allocPool.Get().(context.Context)
	defer f.allocPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, f.timeout)
	defer cancelTimeout()

	// Stop early if the crawl as a whole was cancelled.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-taskCtx.Done():
		}
	}()

	var (
		status  int
		headers = make(map[string]string)
	)
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument || status != 0 {
			return
		}
		status = int(resp.Response.Status)
		for k, v := range resp.Response.Headers {
			if s, ok := v.(string); ok {
				headers[k] = s
			}
		}
	})

	var (
		htmlContent string
		timing      domain.PageTiming
	)
	err := chromedp.Run(taskCtx,
		network.Enable(),
		network.SetBlockedURLs(blockedResources),
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &htmlContent),
		chromedp.Evaluate(navigationTimingJS, &timing),
	)
	if err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if status == 0 {
		return nil, fmt.Errorf("no response for %s", url)
	}

	if timing.TTFB <= 0 {
		timing.TTFB = defaultTTFBMillis
	}
	if timing.LoadTime <= 0 {
		timing.LoadTime = defaultLoadMillis
	}

	f.logger.Debug("fetched page",
		zap.String("url", url),
		zap.Int("status", status),
		zap.Float64("load_ms", timing.LoadTime))

	return &domain.PageRecord{
		URL:     url,
		Content: htmlContent,
		Status:  status,
		Headers: headers,
		Timing:  timing,
	}, nil
}
