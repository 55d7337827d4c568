package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"mit-dashboard/internal/config"
	"mit-dashboard/internal/dataset"
	"mit-dashboard/internal/middleware"
	"mit-dashboard/internal/observability"
	"mit-dashboard/internal/server"
	"mit-dashboard/internal/ui"
)

const (
	datasetLoadTimeout = 60 * time.Second
	pageCacheMaxAge    = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", pageCacheMaxAge)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.RenderDashboard(w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"excel_file", cfg.Dataset.ExcelFile,
	)

	store := dataset.NewStore()
	ctx, cancel := context.WithTimeout(context.Background(), datasetLoadTimeout)
	defer cancel()

	// Loading failures degrade to an empty, queryable table: the
	// service stays up and reports zero records.
	start := time.Now()
	if err := store.Load(ctx, cfg.Dataset.ExcelFile, cfg.Dataset.Sheet); err != nil {
		logger.Warn("dataset unavailable, serving empty table",
			"path", cfg.Dataset.ExcelFile,
			"error", err,
		)
	} else {
		logger.Info("dataset ready", "duration", time.Since(start))
	}

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(store, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      middlewareChain(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("releasing dataset snapshot")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
