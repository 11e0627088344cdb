// Package narrative generates free-text comparative analysis through an
// OpenAI-compatible chat-completions endpoint. It is a best-effort
// enrichment: every failure degrades to ErrUnavailable and the caller
// substitutes a placeholder, never failing the comparison itself.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"seoengine/internal/domain"
)

// ErrUnavailable reports that no narrative could be produced, whether from
// missing configuration or an upstream failure.
var ErrUnavailable = errors.New("narrative service unavailable")

// Placeholder is the user-visible text substituted when narrative
// generation is unavailable.
const Placeholder = "AI analysis not available."

const maxSnapshotBytes = 15000

// Client calls an OpenAI-compatible chat-completions API with a bounded
// timeout per request.
type Client struct {
	client *http.Client
	apiURL string
	apiKey string
	model  string
	logger *zap.Logger
}

func NewClient(apiURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	apiURL = strings.TrimRight(apiURL, "/")
	if apiURL == "" {
		apiURL = "https://api.groq.com/openai/v1"
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize produces a markdown gap-analysis report over two metrics
// records.
func (c *Client) Summarize(ctx context.Context, baseline, competitor domain.SiteMetricsRecord) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnavailable
	}

	b, err := json.MarshalIndent(baseline, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal baseline: %w", err)
	}
	cp, err := json.MarshalIndent(competitor, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal competitor: %w", err)
	}

	prompt := fmt.Sprintf(`Compare the following SEO data of a baseline website and a competitor.

Baseline Data:
%s

Competitor Data:
%s

Provide a deep, enterprise-grade SEO gap analysis report in Markdown format with these sections:

### Executive Summary
High-level verdict: who is winning and by what score difference, 2-3 sentences.

### Critical Parameter Analysis
Content depth (word count average, thin content ratio), YMYL trust and regulatory compliance, authority gap (domain authority and backlink profile).

### Technical Performance Drift
Page load times in seconds, Core Web Vitals (LCP, CLS), mobile experience gap.

### Keyword and Intent Gaps
Infer from the intent and content sections what kinds of keywords the competitor may be targeting that the baseline is missing.

### Actionable Recommendations
Three specific actions.

Make the tone professional, data-driven, and extremely specific. Use the provided JSON data for every claim.`, b, cp)

	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a senior SEO consultant providing a competitive gap analysis for an insurance enterprise."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		c.logger.Warn("narrative summary failed", zap.Error(err))
		return "", ErrUnavailable
	}
	return content, nil
}

// AnalyzeContent extracts a free-form SEO enrichment payload from one
// page's HTML. The payload is additive: aggregation never consults it.
func (c *Client) AnalyzeContent(ctx context.Context, htmlContent, pageURL string) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, ErrUnavailable
	}

	if len(htmlContent) > maxSnapshotBytes {
		htmlContent = htmlContent[:maxSnapshotBytes]
	}

	prompt := fmt.Sprintf(`Analyze the following HTML content for SEO signals and return a JSON object.
URL: %s

Focus on content quality, E-E-A-T signals, YMYL trust indicators, India-specific context, and brand/UX clarity.

HTML snapshot (truncated):
%s

Return ONLY valid JSON with keys: content_quality, eeat, ymyl, india_specific, brand_ux.`, pageURL, htmlContent)

	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an expert SEO auditor specializing in enterprise and YMYL websites. You always respond with valid JSON."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		c.logger.Warn("narrative enrichment failed", zap.Error(err))
		return nil, ErrUnavailable
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		c.logger.Warn("narrative enrichment returned malformed JSON", zap.Error(err))
		return nil, ErrUnavailable
	}
	return payload, nil
}

func (c *Client) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}
