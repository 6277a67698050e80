package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/storage"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/pg"
)

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig

	BreakerEnabled bool
	FacetCacheTTL  time.Duration
	FacetCacheSize int
}

func LoadEnv() (*StorageConfig, error) {
	raw := os.Getenv("STORAGE_TYPE")
	if raw == "" {
		slog.Error("STORAGE_TYPE environment variable is not set")
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	storageType, err := storage.ParseType(raw)
	if err != nil {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", raw)
		return nil, err
	}

	cfg := &StorageConfig{Type: storageType, BreakerEnabled: true}

	switch storageType {
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: splitNonEmpty(os.Getenv("ES_ADDRESSES")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	if v := os.Getenv("BREAKER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BREAKER_ENABLED value %q: %w", v, err)
		}
		cfg.BreakerEnabled = enabled
	}

	if v := os.Getenv("FACET_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FACET_CACHE_TTL value %q: %w", v, err)
		}
		cfg.FacetCacheTTL = ttl
	}

	if v := os.Getenv("FACET_CACHE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("invalid FACET_CACHE_SIZE value %q", v)
		}
		cfg.FacetCacheSize = size
	}

	return cfg, nil
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
