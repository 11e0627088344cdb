package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/health", s.handleHealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/baseline", s.handleGetBaseline)
		r.Post("/extract/baseline", s.handleExtractBaseline)
		r.Post("/extract/competitor", s.handleExtractCompetitor)
		r.Get("/compare", s.handleCompare)
		r.Get("/compare/stream", s.handleCompareStream)
	})

	return r
}
