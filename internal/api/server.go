package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"seoengine/internal/config"
	"seoengine/internal/crawler"
	"seoengine/internal/monitoring"
	"seoengine/internal/narrative"
	"seoengine/internal/seo"
	"seoengine/internal/storage"
)

// Server holds the dependencies for the HTTP server. Archive and cache are
// optional; a nil value disables that collaborator.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	crawler    *crawler.Crawler
	aggregator *seo.Aggregator
	store      *storage.FileStore
	archive    *storage.PageArchive
	cache      *storage.FreshnessCache
	narrator   *narrative.Client
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

func NewServer(
	cfg *config.Config,
	cr *crawler.Crawler,
	agg *seo.Aggregator,
	store *storage.FileStore,
	archive *storage.PageArchive,
	cache *storage.FreshnessCache,
	narrator *narrative.Client,
	m *monitoring.Metrics,
	l *zap.Logger,
) *Server {
	s := &Server{
		config:     cfg,
		crawler:    cr,
		aggregator: agg,
		store:      store,
		archive:    archive,
		cache:      cache,
		narrator:   narrator,
		metrics:    m,
		logger:     l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:     s.router,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the comparison stream stays open for the
		// duration of a crawl.
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
