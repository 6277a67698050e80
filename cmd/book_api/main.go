// Package main Book Hunter API
// @title Book Hunter API
// @version 1.0
// @description Book catalog search, homepage feed and similar-book recommendations
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/book-hunter/docs"
	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/processor"
	"github.com/DjordjeVuckovic/book-hunter/internal/router"
	"github.com/DjordjeVuckovic/book-hunter/internal/server"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

const connectTimeout = 30 * time.Second

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	backend, err := factory.NewBackend(connectCtx, &cfg.StorageConfig)
	cancel()
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}

	s := server.New(sCfg, backend.HealthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*").
		SetupMetrics("/metrics")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Book Hunter API is running")
	})

	if err := seed(s.Context(), cfg, backend); err != nil {
		slog.Error("Failed to seed catalog", "error", err)
		os.Exit(1)
	}

	c := catalog.New(backend.Store, catalog.Options{PageSize: cfg.PageSize})
	router.NewBookRouter(s.Echo, c).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
		backend.Close()
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

// seed loads DATASET_PATH into the in_mem backend, which otherwise starts empty.
// Persistent backends are filled by catalog_import instead.
func seed(ctx context.Context, cfg *BookApiConfig, backend *factory.Backend) error {
	if cfg.SeedPath == "" {
		return nil
	}
	if cfg.StorageConfig.Type != storage.InMem {
		slog.Info("Ignoring DATASET_PATH for persistent storage", "storageType", cfg.StorageConfig.Type)
		return nil
	}

	stats, err := processor.ImportFile(ctx, cfg.SeedPath, backend.Indexer)
	if err != nil {
		return err
	}
	slog.Info("Seeded in-memory catalog", "saved", stats.Saved, "skipped", stats.Skipped, "failed", stats.Failed)
	return nil
}
