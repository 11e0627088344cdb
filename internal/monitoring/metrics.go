package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PagesCrawled  *prometheus.CounterVec
	CrawlErrors   *prometheus.CounterVec
	CrawlDuration *prometheus.HistogramVec
	Comparisons   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		PagesCrawled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoengine_pages_crawled_total",
			Help: "The total number of pages fetched by the crawler",
		}, nil),
		CrawlErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoengine_crawl_errors_total",
			Help: "The total number of crawl errors encountered",
		}, []string{"type"}), // e.g. 'fetch_failed', 'archive_failed'
		CrawlDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seoengine_crawl_duration_seconds",
			Help:    "Duration of full site crawls",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"outcome"}),
		Comparisons: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoengine_comparisons_total",
			Help: "The total number of comparison reports produced",
		}, nil),
	}
}

func (m *Metrics) IncPagesCrawled() {
	m.PagesCrawled.WithLabelValues().Inc()
}

func (m *Metrics) IncCrawlErrors(errorType string) {
	m.CrawlErrors.WithLabelValues(errorType).Inc()
}

func (m *Metrics) ObserveCrawlDuration(outcome string, seconds float64) {
	m.CrawlDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *Metrics) IncComparisons() {
	m.Comparisons.WithLabelValues().Inc()
}
