package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"seoengine/internal/domain"
	"seoengine/internal/storage"
)

// handleCompareStream delivers the comparison as a Server-Sent-Events
// stream: status messages, one log event per crawled page in crawl order,
// terminated by a result event with the full report or an error event.
// Client disconnect cancels the request context and stops the crawl.
func (s *Server) handleCompareStream(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("competitor_url")
	if target == "" {
		s.respondWithError(w, http.StatusBadRequest, "competitor_url query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondWithError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	emit := func(ev domain.StreamEvent) {
		data, err := json.Marshal(ev)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	emit(domain.StreamEvent{Type: domain.EventStatus, Message: "Starting analysis..."})

	baseline, err := s.store.LoadBaseline()
	if err != nil {
		if errors.Is(err, storage.ErrBaselineNotFound) {
			emit(domain.StreamEvent{Type: domain.EventError, Message: "Baseline data not found. Run extract/baseline first."})
		} else {
			s.logger.Error("failed to load baseline", zap.Error(err))
			emit(domain.StreamEvent{Type: domain.EventError, Message: "Could not load baseline"})
		}
		return
	}

	emit(domain.StreamEvent{Type: domain.EventStatus, Message: fmt.Sprintf("Crawling %s...", target)})

	onPage := func(p domain.PageRecord) {
		emit(domain.StreamEvent{
			Type:   domain.EventLog,
			URL:    p.URL,
			Status: p.Status,
			Depth:  p.Depth,
		})
	}

	competitor, err := s.competitorRecord(r.Context(), target, onPage)
	if err != nil {
		s.logger.Error("streamed comparison failed", zap.String("competitor", target), zap.Error(err))
		emit(domain.StreamEvent{Type: domain.EventError, Message: err.Error()})
		return
	}

	emit(domain.StreamEvent{Type: domain.EventStatus, Message: "Generating comparison report..."})

	report := s.buildReport(r.Context(), baseline, competitor)
	emit(domain.StreamEvent{Type: domain.EventResult, Data: &report})
}
