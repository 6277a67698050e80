package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/breaker"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/cache"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/pg"
	"github.com/DjordjeVuckovic/book-hunter/pkg/server"
)

// Backend is a connected catalog backend.
type Backend struct {
	Store         catalog.Store
	Indexer       catalog.Indexer
	HealthChecker server.HealthChecker
	close         func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// NewBackend connects the configured backend. The read store is wrapped by the circuit breaker
// and the facet cache when they are enabled.
func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	backend, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.BreakerEnabled {
		backend.Store = breaker.New(backend.Store, breaker.DefaultConfig())
	}
	if cfg.FacetCacheTTL > 0 {
		slog.Info("Facet cache enabled", "ttl", cfg.FacetCacheTTL, "size", cfg.FacetCacheSize)
		backend.Store = cache.NewFacetStore(backend.Store, cfg.FacetCacheSize, cfg.FacetCacheTTL)
	}

	return backend, nil
}

func connect(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return &Backend{
			Store:         pg.NewStore(pool),
			Indexer:       pg.NewIndexer(pool),
			HealthChecker: pg.NewHealthChecker(pool),
			close:         pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		client, err := es.NewClient(*cfg.Es)
		if err != nil {
			return nil, err
		}
		indexer, err := es.NewIndexer(ctx, client, cfg.Es.IndexName)
		if err != nil {
			return nil, err
		}
		store, err := es.NewStore(client, cfg.Es.IndexName)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store:         store,
			Indexer:       indexer,
			HealthChecker: es.NewHealthChecker(client),
		}, nil

	case storage.InMem:
		store := in_mem.NewStore()
		return &Backend{
			Store:         store,
			Indexer:       store,
			HealthChecker: server.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
