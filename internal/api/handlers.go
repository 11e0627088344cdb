package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"seoengine/internal/crawler"
	"seoengine/internal/domain"
	"seoengine/internal/narrative"
	"seoengine/internal/seo"
	"seoengine/internal/storage"
)

func (s *Server) handleGetBaseline(w http.ResponseWriter, r *http.Request) {
	baseline, err := s.store.LoadBaseline()
	if err != nil {
		if errors.Is(err, storage.ErrBaselineNotFound) {
			s.respondWithError(w, http.StatusNotFound, "Baseline data not found. Run extract/baseline first.")
			return
		}
		s.logger.Error("failed to load baseline", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not load baseline")
		return
	}
	s.respondWithJSON(w, http.StatusOK, baseline)
}

func (s *Server) handleExtractBaseline(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		target = s.config.BaselineURL
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid URL: "+target)
		return
	}

	rec, err := s.analyzeSite(r.Context(), target, nil)
	if err != nil {
		s.logger.Error("baseline extraction failed", zap.String("url", target), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Extraction error: %v", err))
		return
	}
	if err := s.store.SaveBaseline(rec); err != nil {
		s.logger.Error("failed to save baseline", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not persist baseline")
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Baseline extraction completed.",
	})
}

func (s *Server) handleExtractCompetitor(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		s.respondWithError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid URL: "+target)
		return
	}

	rec, err := s.analyzeAndSaveCompetitor(r.Context(), target, nil)
	if err != nil {
		s.logger.Error("competitor extraction failed", zap.String("url", target), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Extraction error: %v", err))
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("Extraction for %s completed.", rec.URL),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("competitor_url")
	if target == "" {
		s.respondWithError(w, http.StatusBadRequest, "competitor_url query parameter is required")
		return
	}

	baseline, err := s.store.LoadBaseline()
	if err != nil {
		if errors.Is(err, storage.ErrBaselineNotFound) {
			s.respondWithError(w, http.StatusNotFound, "Baseline data not found. Run extract/baseline first.")
			return
		}
		s.logger.Error("failed to load baseline", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not load baseline")
		return
	}

	competitor, err := s.competitorRecord(r.Context(), target, nil)
	if err != nil {
		s.logger.Error("comparison failed", zap.String("competitor", target), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Comparison failed: %v", err))
		return
	}

	report := s.buildReport(r.Context(), baseline, competitor)
	s.respondWithJSON(w, http.StatusOK, report)
}

// analyzeSite crawls a target and aggregates its metrics record, enriching
// it best-effort with the narrative collaborator and archiving the crawl
// when an archive is configured. onPage, when set, observes every fetched
// page in crawl order.
func (s *Server) analyzeSite(ctx context.Context, target string, onPage func(domain.PageRecord)) (domain.SiteMetricsRecord, error) {
	start := time.Now()
	pages, err := s.crawler.Crawl(ctx, target, crawler.Options{
		MaxDepth: s.config.MaxCrawlDepth,
		MaxPages: s.config.MaxPages,
		OnPage:   onPage,
	})
	if err != nil {
		s.metrics.ObserveCrawlDuration("failure", time.Since(start).Seconds())
		return domain.SiteMetricsRecord{}, fmt.Errorf("crawl %s: %w", target, err)
	}
	s.metrics.ObserveCrawlDuration("success", time.Since(start).Seconds())

	if s.archive != nil {
		if err := s.archive.SavePages(ctx, target, pages); err != nil {
			s.logger.Warn("failed to archive crawl", zap.String("url", target), zap.Error(err))
			s.metrics.IncCrawlErrors("archive_failed")
		}
	}

	rec := s.aggregator.Aggregate(target, pages)

	// Enrichment is strictly additive: its absence alters no other field.
	if len(pages) > 0 {
		nctx, cancel := context.WithTimeout(ctx, s.narrativeTimeout())
		insights, err := s.narrator.AnalyzeContent(nctx, pages[0].Content, target)
		cancel()
		if err == nil {
			rec.AIInsights = insights
		}
	}

	return rec, nil
}

func (s *Server) analyzeAndSaveCompetitor(ctx context.Context, target string, onPage func(domain.PageRecord)) (domain.SiteMetricsRecord, error) {
	rec, err := s.analyzeSite(ctx, target, onPage)
	if err != nil {
		return domain.SiteMetricsRecord{}, err
	}
	if err := s.store.SaveCompetitor(rec); err != nil {
		return domain.SiteMetricsRecord{}, fmt.Errorf("persist competitor: %w", err)
	}
	if s.cache != nil {
		ttl := time.Duration(s.config.AnalysisTTLHours) * time.Hour
		if err := s.cache.MarkAnalyzed(ctx, target, ttl); err != nil {
			s.logger.Warn("failed to mark target analyzed", zap.String("url", target), zap.Error(err))
		}
	}
	return rec, nil
}

// competitorRecord reuses the persisted competitor record when it exists
// and is still fresh, otherwise extracts it on the fly.
func (s *Server) competitorRecord(ctx context.Context, target string, onPage func(domain.PageRecord)) (domain.SiteMetricsRecord, error) {
	rec, err := s.store.LoadCompetitor(target)
	if err == nil {
		if s.cache == nil {
			return rec, nil
		}
		fresh, cacheErr := s.cache.IsRecentlyAnalyzed(ctx, target)
		if cacheErr != nil {
			s.logger.Warn("freshness check failed, reusing stored record", zap.Error(cacheErr))
			return rec, nil
		}
		if fresh {
			return rec, nil
		}
	}

	return s.analyzeAndSaveCompetitor(ctx, target, onPage)
}

// buildReport runs the comparison and attaches the best-effort narrative.
func (s *Server) buildReport(ctx context.Context, baseline, competitor domain.SiteMetricsRecord) domain.ComparisonReport {
	report := seo.Compare(baseline, competitor)

	nctx, cancel := context.WithTimeout(ctx, s.narrativeTimeout())
	defer cancel()
	text, err := s.narrator.Summarize(nctx, baseline, competitor)
	if err != nil {
		text = narrative.Placeholder
	}
	report.AIAnalysis = text

	s.metrics.IncComparisons()
	return report
}

func (s *Server) narrativeTimeout() time.Duration {
	return time.Duration(s.config.NarrativeTimeout) * time.Second
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthStatus := map[string]string{"server": "healthy"}
	healthy := true

	if s.archive != nil {
		if err := s.archive.Ping(ctx); err != nil {
			healthStatus["postgres"] = "unhealthy"
			healthy = false
			s.logger.Error("health check failed for postgres", zap.Error(err))
		} else {
			healthStatus["postgres"] = "healthy"
		}
	}
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			healthStatus["redis"] = "unhealthy"
			healthy = false
			s.logger.Error("health check failed for redis", zap.Error(err))
		} else {
			healthStatus["redis"] = "healthy"
		}
	}

	if !healthy {
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}
	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
