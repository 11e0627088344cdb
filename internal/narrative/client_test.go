package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seoengine/internal/domain"
)

func completionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		if status != http.StatusOK {
			http.Error(w, "upstream error", status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSummarize(t *testing.T) {
	srv := completionServer(t, "### Executive Summary\nBaseline leads.", http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second, zap.NewNop())
	out, err := c.Summarize(context.Background(), domain.SiteMetricsRecord{URL: "https://a.example/"}, domain.SiteMetricsRecord{URL: "https://b.example/"})
	require.NoError(t, err)
	assert.Contains(t, out, "Executive Summary")
}

func TestSummarizeWithoutKey(t *testing.T) {
	c := NewClient("", "", "test-model", time.Second, zap.NewNop())
	_, err := c.Summarize(context.Background(), domain.SiteMetricsRecord{}, domain.SiteMetricsRecord{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSummarizeUpstreamError(t *testing.T) {
	srv := completionServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second, zap.NewNop())
	_, err := c.Summarize(context.Background(), domain.SiteMetricsRecord{}, domain.SiteMetricsRecord{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAnalyzeContent(t *testing.T) {
	srv := completionServer(t, `{"content_quality": "strong", "ymyl": {"irdai": true}}`, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second, zap.NewNop())
	payload, err := c.AnalyzeContent(context.Background(), "<html><body>x</body></html>", "https://a.example/")
	require.NoError(t, err)
	assert.Equal(t, "strong", payload["content_quality"])
}

func TestAnalyzeContentMalformedJSON(t *testing.T) {
	srv := completionServer(t, "not json at all", http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second, zap.NewNop())
	_, err := c.AnalyzeContent(context.Background(), "<html></html>", "https://a.example/")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSummarizeContextCancelled(t *testing.T) {
	srv := completionServer(t, "ok", http.StatusOK)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "test-key", "test-model", 5*time.Second, zap.NewNop())
	_, err := c.Summarize(ctx, domain.SiteMetricsRecord{}, domain.SiteMetricsRecord{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
