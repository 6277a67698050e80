// Package cache holds an expiring cache for the distinct facet listings of a catalog store.
package cache

import (
	"context"
	"slices"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultSize = 16

// FacetStore wraps a catalog.Store and serves Distinct from an expiring LRU. All other calls
// go straight to the wrapped store. Listings may be stale for up to the TTL.
type FacetStore struct {
	catalog.Store
	cache *expirable.LRU[catalog.Facet, []string]
}

func NewFacetStore(inner catalog.Store, size int, ttl time.Duration) *FacetStore {
	if size <= 0 {
		size = DefaultSize
	}
	return &FacetStore{
		Store: inner,
		cache: expirable.NewLRU[catalog.Facet, []string](size, nil, ttl),
	}
}

func (s *FacetStore) Distinct(ctx context.Context, facet catalog.Facet) ([]string, error) {
	if values, ok := s.cache.Get(facet); ok {
		metrics.FacetCacheLookups.WithLabelValues(string(facet), "hit").Inc()
		return slices.Clone(values), nil
	}
	metrics.FacetCacheLookups.WithLabelValues(string(facet), "miss").Inc()

	values, err := s.Store.Distinct(ctx, facet)
	if err != nil {
		return nil, err
	}

	s.cache.Add(facet, slices.Clone(values))
	return values, nil
}

// Purge drops every cached listing.
func (s *FacetStore) Purge() {
	s.cache.Purge()
}

var _ catalog.Store = (*FacetStore)(nil)
