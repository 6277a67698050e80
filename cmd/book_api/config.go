package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/book-hunter/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type BookApiConfig struct {
	StorageConfig factory.StorageConfig
	PageSize      int
	// SeedPath is an optional dataset imported at startup into the in_mem backend.
	SeedPath string
}

func (as *AppConfig) Load() (*BookApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/book_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	return &BookApiConfig{
		StorageConfig: *storageCfg,
		PageSize:      pageSize(os.Getenv("SEARCH_PAGE_SIZE")),
		SeedPath:      os.Getenv("DATASET_PATH"),
	}, nil
}

func pageSize(raw string) int {
	if raw == "" {
		return catalog.DefaultPageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("Invalid SEARCH_PAGE_SIZE, using default", "value", raw, "default", catalog.DefaultPageSize)
		return catalog.DefaultPageSize
	}
	return n
}
