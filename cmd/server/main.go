package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"seoengine/internal/api"
	"seoengine/internal/config"
	"seoengine/internal/crawler"
	"seoengine/internal/monitoring"
	"seoengine/internal/narrative"
	"seoengine/internal/seo"
	"seoengine/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	store := storage.NewFileStore(cfg.DataDir)

	var archive *storage.PageArchive
	if cfg.PostgresURL != "" {
		archive, err = storage.NewPageArchive(cfg.PostgresURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer archive.Close()
	}

	var cache *storage.FreshnessCache
	if cfg.RedisAddr != "" {
		cache = storage.NewFreshnessCache(cfg.RedisAddr)
	}

	metrics := monitoring.NewMetrics()

	fetcher := crawler.NewChromeFetcher(
		time.Duration(cfg.CrawlTimeout)*time.Second,
		cfg.UserAgent,
		logger,
	)
	limiter := rate.NewLimiter(rate.Limit(cfg.CrawlRate), 1)
	coreCrawler := crawler.NewCrawler(fetcher, limiter, metrics, logger)

	aggregator := seo.NewAggregator(seo.StaticAuthority{})
	narrator := narrative.NewClient(
		cfg.LLMAPIURL,
		cfg.LLMAPIKey,
		cfg.LLMModel,
		time.Duration(cfg.NarrativeTimeout)*time.Second,
		logger,
	)

	server := api.NewServer(cfg, coreCrawler, aggregator, store, archive, cache, narrator, metrics, logger)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
