package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/source"
)

const initialFetchTimeout = 60 * time.Second

func newDataSource(cfg config.SourceConfig, logger *slog.Logger) source.DataSource {
	switch cfg.Kind {
	case "xlsx":
		return source.NewXLSXSource(cfg.XLSXFile, cfg.XLSXSheet, logger)
	case "sheets":
		return source.NewSheetsSource(source.SheetsConfig{
			ClientID:      cfg.SheetsClientID,
			ClientSecret:  cfg.SheetsClientSecret,
			RefreshToken:  cfg.SheetsRefreshToken,
			SpreadsheetID: cfg.SheetsSpreadsheetID,
			SheetName:     cfg.SheetsSheetName,
		}, logger)
	default:
		return source.NewCSVSource(cfg.CSVFile, logger)
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
		"source", cfg.Source.Kind,
	)

	src := newDataSource(cfg.Source, logger)
	dashboard := services.NewDashboard(src, cfg.Source.CacheKey(), logger)

	if !dashboard.LoadSnapshot(cfg.Source.SnapshotMaxAge) {
		ctx, cancel := context.WithTimeout(context.Background(), initialFetchTimeout)
		start := time.Now()
		if err := dashboard.Refresh(ctx); err != nil {
			cancel()
			logger.Error("initial data load failed", "error", err)
			os.Exit(1)
		}
		cancel()
		logger.Info("initial data loaded", "duration", time.Since(start))
	}

	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	go dashboard.RefreshLoop(refreshCtx, cfg.Source.RefreshInterval)

	srv := server.NewServer(dashboard, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("stopping background refresh")
		stopRefresh()
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
