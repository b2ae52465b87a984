package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mfigueroa/lectrack/internal/config"
	"github.com/mfigueroa/lectrack/internal/httpapi"
	"github.com/mfigueroa/lectrack/internal/importer"
	"github.com/mfigueroa/lectrack/internal/library"
	"github.com/mfigueroa/lectrack/internal/logger"
	"github.com/mfigueroa/lectrack/internal/mirror"
	"github.com/mfigueroa/lectrack/internal/ratelimit"
	"github.com/mfigueroa/lectrack/internal/store"
	"github.com/mfigueroa/lectrack/internal/youtube"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if !cfg.HasAPIKey() {
		appLogger.Warn("YOUTUBE_API_KEY not set, playlist imports will fail")
	}

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := store.NewCollectionRepo(db)

	// Initialize stat mirror; Noop when no remote is configured
	var pusher mirror.Pusher = mirror.Noop{}
	if cfg.MirrorURL != "" {
		pusher = mirror.NewClient(cfg.MirrorURL, appLogger)
	}

	// Initialize import pipeline
	yt := youtube.NewClient(cfg.YouTubeAPIURL, cfg.YouTubeAPIKey, appLogger)
	orchestrator := importer.New(yt, cfg.ImportMaxPages, appLogger)

	// Initialize library sessions
	manager := library.NewManager(repo, pusher, appLogger)

	// Initialize inbound rate limiter, pruned periodically so idle
	// clients do not accumulate
	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)
	pruneDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.RateLimitWindow)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				limiter.Prune()
			case <-pruneDone:
				return
			}
		}
	}()
	defer close(pruneDone)

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h := httpapi.NewHandler(cfg, orchestrator, manager, limiter, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
