package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoengine/internal/domain"
)

func sampleRecord(url string) domain.SiteMetricsRecord {
	return domain.SiteMetricsRecord{
		URL:          url,
		Timestamp:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		OverallScore: 85,
		Content:      domain.ContentQuality{AvgWordCount: 420, ThinContentRatio: 0.2},
		YMYL:         domain.YMYLTrust{IRDAIRegistration: true},
	}
}

func TestCompetitorFilename(t *testing.T) {
	cases := []struct {
		target string
		want   string
	}{
		{"https://www.acko.com/", "www_acko_com_seo.json"},
		{"https://www.hdfclife.com/term-insurance", "www_hdfclife_com_seo.json"},
		{"http://localhost:8080/", "localhost_8080_seo.json"},
		{"www.acko.com", "www_acko_com_seo.json"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CompetitorFilename(c.target), c.target)
	}
}

func TestBaselineRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	rec := sampleRecord("https://www.bajajlifeinsurance.com/")

	require.NoError(t, store.SaveBaseline(rec))
	got, err := store.LoadBaseline()
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestLoadBaselineMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())
	_, err := store.LoadBaseline()
	assert.ErrorIs(t, err, ErrBaselineNotFound)
}

func TestCompetitorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	rec := sampleRecord("https://www.acko.com/")

	require.NoError(t, store.SaveCompetitor(rec))
	assert.FileExists(t, dir+"/www_acko_com_seo.json")

	got, err := store.LoadCompetitor("https://www.acko.com/life-insurance")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestLoadCompetitorMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())
	_, err := store.LoadCompetitor("https://www.acko.com/")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := t.TempDir() + "/nested/data"
	store := NewFileStore(dir)
	require.NoError(t, store.SaveBaseline(sampleRecord("https://example.com/")))
	assert.DirExists(t, dir)
}
