// Package main provides the room chat server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mercyblade/roomhost-go/internal/api"
	"github.com/mercyblade/roomhost-go/internal/buildinfo"
	"github.com/mercyblade/roomhost-go/internal/config"
	"github.com/mercyblade/roomhost-go/internal/engine"
	"github.com/mercyblade/roomhost-go/internal/logger"
	"github.com/mercyblade/roomhost-go/internal/metrics"
	"github.com/mercyblade/roomhost-go/internal/recommend"
	"github.com/mercyblade/roomhost-go/internal/sentry"
	"github.com/mercyblade/roomhost-go/internal/storage"
	"github.com/mercyblade/roomhost-go/internal/warmup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting room chat server")

	// Initialize error tracking
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
	}); err != nil {
		log.WithError(err).Error("Failed to initialize Sentry, continuing without error tracking")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
	}
	defer sentry.Flush(2 * time.Second)

	// Connect to database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Import room content so every room is servable before traffic arrives
	if _, err := warmup.Run(context.Background(), db, log, warmup.Options{
		DataDir: cfg.DataDir,
		Metrics: m,
	}); err != nil {
		log.WithError(err).Error("Initial room import failed")
		os.Exit(1)
	}

	// Room store with parsed-room cache
	store, err := storage.NewRoomStore(db, cfg.RoomCacheSize, m)
	if err != nil {
		log.WithError(err).Error("Failed to create room store")
		os.Exit(1)
	}

	// Cross-topic recommendation table (optional enrichment)
	index, err := recommend.Load(cfg.CrossTopicFile())
	if err != nil {
		log.WithError(err).Error("Failed to load cross-topic recommendations, continuing without them")
		index = &recommend.Index{}
	} else {
		log.WithField("records", len(index.Recommendations)).Info("Cross-topic recommendations loaded")
	}

	// Chat engine and API handler
	eng := engine.New(index)
	handler := api.NewHandler(store, eng, m, log)
	log.Info("Chat engine created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	if sentry.IsEnabled() {
		router.Use(sentryMiddleware())
	}

	setupRoutes(router, handler, db, cfg, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	// Periodic room re-import goroutine
	if cfg.ReimportPeriod > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("Panic in room re-import goroutine")
				}
			}()
			warmup.RunPeriodic(ctx, db, store, log, cfg.ReimportPeriod, warmup.Options{
				DataDir: cfg.DataDir,
				Metrics: m,
			})
		}()
		log.WithField("period", cfg.ReimportPeriod.String()).Info("Periodic room re-import scheduled")
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	// Wait for goroutines to finish (with timeout)
	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}
