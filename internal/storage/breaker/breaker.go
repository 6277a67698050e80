// Package breaker guards a catalog store with a circuit breaker. While the breaker is open,
// calls fail fast with apperr.StoreUnavailableError instead of reaching the backend.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/metrics"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
)

type Config struct {
	Name string
	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32
	// Interval resets the failure counts while closed.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
}

func DefaultConfig() Config {
	return Config{
		Name:                "catalog-store",
		MaxRequests:         3,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

type Store struct {
	next catalog.Store
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

func New(next catalog.Store, cfg Config) *Store {
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		// Only an unreachable backend counts against the breaker; misses and bad requests do not.
		IsSuccessful: func(err error) bool {
			var unavailable *apperr.StoreUnavailableError
			return err == nil || !errors.As(err, &unavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state transition", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Store{next: next, cb: cb, name: cfg.Name}
}

// State reports the current breaker state.
func (s *Store) State() gobreaker.State {
	return s.cb.State()
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return castResult[domain.Book](s.execute("get", func() (any, error) {
		return s.next.Get(ctx, id)
	}))
}

func (s *Store) Find(ctx context.Context, q catalog.Query) (*catalog.FindResult, error) {
	return castResult[catalog.FindResult](s.execute("find", func() (any, error) {
		return s.next.Find(ctx, q)
	}))
}

func (s *Store) Scan(ctx context.Context, f catalog.Filter, fn func(book domain.Book) error) error {
	_, err := s.execute("scan", func() (any, error) {
		return nil, s.next.Scan(ctx, f, fn)
	})
	return err
}

func (s *Store) ScanCategories(ctx context.Context, fn func(categories []string) error) error {
	_, err := s.execute("scan_categories", func() (any, error) {
		return nil, s.next.ScanCategories(ctx, fn)
	})
	return err
}

func (s *Store) Distinct(ctx context.Context, facet catalog.Facet) ([]string, error) {
	res, err := s.execute("distinct_"+string(facet), func() (any, error) {
		return s.next.Distinct(ctx, facet)
	})
	if err != nil {
		return nil, err
	}
	values, ok := res.([]string)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return values, nil
}

func (s *Store) execute(op string, fn func() (any, error)) (any, error) {
	start := time.Now()
	result, err := s.cb.Execute(fn)
	metrics.RecordStoreOp(op, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			slog.Warn("Circuit breaker rejected store call", "name", s.name, "op", op, "error", err)
			return nil, apperr.NewStoreUnavailable(op, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	return result, nil
}

func castResult[T any](result any, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

var _ catalog.Store = (*Store)(nil)
