package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/book-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/book-hunter/pkg/config/env"
)

const defaultBulkSize = 5_000

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type ImportConfig struct {
	DatasetPath string
	BulkOptions struct {
		Enabled bool
		Size    int
	}
	factory.StorageConfig
}

func (as *AppConfig) Load() (*ImportConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/catalog_import/.env", "cmd/catalog_import/pg.env", "cmd/catalog_import/es.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	dsPath := os.Getenv("DATASET_PATH")
	if dsPath == "" {
		return nil, fmt.Errorf("DATASET_PATH environment variable is not set")
	}

	bulkSize, err := strconv.Atoi(os.Getenv("BULK_SIZE"))
	if err != nil || bulkSize <= 0 {
		bulkSize = defaultBulkSize
	}

	cfg := &ImportConfig{
		DatasetPath:   dsPath,
		StorageConfig: *storageCfg,
	}
	cfg.BulkOptions.Enabled = os.Getenv("BULK_ENABLED") == "true"
	cfg.BulkOptions.Size = bulkSize

	return cfg, nil
}
