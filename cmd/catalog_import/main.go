package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/processor"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/factory"
)

// refresher is implemented by indexers whose writes become searchable asynchronously.
type refresher interface {
	Refresh(ctx context.Context) error
}

func main() {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *ImportConfig) error {
	slog.Info("Creating pipeline", "storageType", cfg.StorageConfig.Type, "dataset", cfg.DatasetPath)
	backend, err := factory.NewBackend(ctx, &cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer backend.Close()

	var opts []processor.PipelineOption
	if cfg.BulkOptions.Enabled {
		opts = append(opts, processor.WithBulk(cfg.BulkOptions.Size))
	}

	stats, err := processor.ImportFile(ctx, cfg.DatasetPath, backend.Indexer, opts...)
	if err != nil {
		return err
	}

	if rf, ok := backend.Indexer.(refresher); ok {
		if err := rf.Refresh(ctx); err != nil {
			return err
		}
	}

	slog.Info("Import finished",
		"saved", stats.Saved,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"batches", stats.Batches,
	)
	return nil
}
