package seo

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoengine/internal/domain"
)

func htmlPage(body string) string {
	return "<html><head><title>Plan Overview</title></head><body>" + body + "</body></html>"
}

// trustedSignals carries every marker the penalty model checks for.
const trustedSignals = `<p>IRDAI Registration No 105. Claim settlement ratio 99.1 percent.</p>
<p>Save income tax under 80C with our term plans.</p>`

func fatBody() string {
	// well over the thin-content threshold, free of trust and tax markers
	return "<p>" + strings.Repeat("insure plan cover ", 150) + "</p>"
}

func TestAggregateHealthySiteScoresFull(t *testing.T) {
	agg := NewAggregator(nil)
	pages := []domain.PageRecord{
		{URL: "https://acme.example/", Content: htmlPage(trustedSignals + fatBody()), Status: 200, Timing: domain.PageTiming{TTFB: 200, LoadTime: 1500}},
		{URL: "https://acme.example/plans", Content: htmlPage(fatBody()), Status: 200, Depth: 1, Timing: domain.PageTiming{TTFB: 250, LoadTime: 1800}},
	}
	rec := agg.Aggregate("https://acme.example/", pages)

	assert.Equal(t, 100.0, rec.OverallScore)
	assert.True(t, rec.YMYL.IRDAIRegistration)
	assert.True(t, rec.YMYL.ClaimSettlementRatio)
	assert.True(t, rec.IndiaSpecific.IndiaTaxKeywords)
	assert.InDelta(t, 1.65, rec.Technical.PageLoadTime, 1e-9)
	assert.InDelta(t, 225.0, rec.Technical.TTFB, 1e-9)
	assert.True(t, rec.DomainAuthority.HTTPSStatus)
	assert.Equal(t, 1, rec.Crawlability.CrawlDepth)
}

func TestAggregateAllPenaltiesApply(t *testing.T) {
	agg := NewAggregator(nil)

	// 10 pages: 4 thin (ratio 0.4), 6 parameterized URLs, slow loads, and a
	// home page with none of the trust or locale markers.
	var pages []domain.PageRecord
	for i := 0; i < 10; i++ {
		body := fatBody()
		if i < 4 {
			body = "<p>short thin page</p>"
		}
		u := fmt.Sprintf("https://acme.example/page/%d", i)
		if i < 6 {
			u = fmt.Sprintf("https://acme.example/page?id=%d", i)
		}
		pages = append(pages, domain.PageRecord{
			URL:     u,
			Content: htmlPage(body),
			Status:  200,
			Timing:  domain.PageTiming{TTFB: 800, LoadTime: 3500},
		})
	}
	rec := agg.Aggregate("https://acme.example/", pages)

	// 15 + 10 + 10 + 10 + 5 + 10 penalties off 100.
	assert.Equal(t, 40.0, rec.OverallScore)
	assert.Equal(t, 6, rec.Crawlability.ParameterizedURLs)
	assert.InDelta(t, 0.4, rec.Content.ThinContentRatio, 1e-9)
	assert.InDelta(t, 3.5, rec.Technical.PageLoadTime, 1e-9)
}

func TestAggregateEmptyCrawl(t *testing.T) {
	agg := NewAggregator(nil)
	rec := agg.Aggregate("https://acme.example/", nil)

	// Only the missing-trust and missing-tax penalties fire: defaults keep
	// load time and thin ratio inside their limits.
	assert.Equal(t, 65.0, rec.OverallScore)
	assert.Zero(t, rec.Content.AvgWordCount)
	assert.Zero(t, rec.Content.ThinContentRatio)
	assert.Zero(t, rec.Crawlability.CrawlDepth)
	assert.InDelta(t, 2.0, rec.Technical.PageLoadTime, 1e-9)
	assert.InDelta(t, 500.0, rec.Technical.TTFB, 1e-9)
	assert.InDelta(t, 1.0, rec.MetaHTML.ImageAltCoverage, 1e-9)
	require.NotNil(t, rec.DomainAuthority.IndexedPages)
	assert.Zero(t, *rec.DomainAuthority.IndexedPages)
}

func TestAggregateDuplicateTitles(t *testing.T) {
	agg := NewAggregator(nil)
	page := func(title string) domain.PageRecord {
		return domain.PageRecord{Content: "<html><head><title>" + title + "</title></head><body><p>x</p></body></html>"}
	}
	pages := []domain.PageRecord{page("Home"), page("Home"), page("Plans"), {Content: "<html><body><p>untitled</p></body></html>"}}
	rec := agg.Aggregate("https://acme.example/", pages)

	assert.Equal(t, 1, rec.MetaHTML.DuplicateTitles)
	assert.True(t, rec.MetaHTML.TitlePresence)
}

func TestAggregateImageAltCoverage(t *testing.T) {
	agg := NewAggregator(nil)
	pages := []domain.PageRecord{
		{Content: `<html><body><img src="a.png" alt="a"><img src="b.png"></body></html>`},
		{Content: `<html><body><img src="c.png" alt="c"><img src="d.png"></body></html>`},
	}
	rec := agg.Aggregate("https://acme.example/", pages)
	assert.InDelta(t, 0.5, rec.MetaHTML.ImageAltCoverage, 1e-9)
}

func TestAggregateBrandPresence(t *testing.T) {
	agg := NewAggregator(nil)
	pages := []domain.PageRecord{
		{Content: htmlPage("<p>Acme protects what matters.</p>")},
	}
	rec := agg.Aggregate("https://www.acme-life.example/", pages)
	assert.True(t, rec.DomainAuthority.BrandedKeywordPresence)

	rec = agg.Aggregate("https://www.other.example/", pages)
	assert.False(t, rec.DomainAuthority.BrandedKeywordPresence)
}

func TestAggregateAuthorityProvider(t *testing.T) {
	da := 72.0
	backlinks := 15000
	agg := NewAggregator(StaticAuthority{Figures: map[string]AuthorityFigures{
		"acme.example": {DomainAuthority: &da, TotalBacklinks: &backlinks},
	}})

	rec := agg.Aggregate("https://acme.example/", nil)
	require.NotNil(t, rec.DomainAuthority.DomainAuthority)
	assert.Equal(t, 72.0, *rec.DomainAuthority.DomainAuthority)
	require.NotNil(t, rec.DomainAuthority.TotalBacklinks)
	assert.Equal(t, 15000, *rec.DomainAuthority.TotalBacklinks)
	assert.Nil(t, rec.DomainAuthority.DomainAge)
}

func TestAggregateIdempotent(t *testing.T) {
	agg := NewAggregator(nil)
	pages := []domain.PageRecord{
		{URL: "https://acme.example/", Content: htmlPage(trustedSignals + fatBody()), Status: 200, Timing: domain.PageTiming{TTFB: 200, LoadTime: 1500}},
		{URL: "https://acme.example/plans", Content: htmlPage(fatBody()), Status: 200, Depth: 1},
	}

	first := agg.Aggregate("https://acme.example/", pages)
	second := agg.Aggregate("https://acme.example/", pages)

	// Apart from the capture timestamp the records are identical.
	first.Timestamp = time.Time{}
	second.Timestamp = time.Time{}
	assert.Equal(t, first, second)
}

func TestAggregateHealthCounts(t *testing.T) {
	agg := NewAggregator(nil)
	pages := []domain.PageRecord{
		{URL: "https://acme.example/", Status: 200},
		{URL: "https://acme.example/gone", Status: 404},
		{URL: "https://acme.example/err", Status: 500},
	}
	rec := agg.Aggregate("https://acme.example/", pages)
	assert.Equal(t, 1, rec.Health.Error404Count)
	assert.Equal(t, 2, rec.Health.BrokenLinks)
}
