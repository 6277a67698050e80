package catalog

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/google/uuid"
)

// Catalog bundles the read operations served to clients.
type Catalog struct {
	*Searcher
	*FeedAggregator
	*SimilarityRanker
	*Facets

	store Store
}

type Options struct {
	PageSize int
	Scorer   Scorer
}

func New(store Store, opts Options) *Catalog {
	return &Catalog{
		Searcher:         NewSearcher(store, WithPageSize(opts.PageSize)),
		FeedAggregator:   NewFeedAggregator(store),
		SimilarityRanker: NewSimilarityRanker(store, WithScorer(opts.Scorer)),
		Facets:           NewFacets(store),
		store:            store,
	}
}

// Book returns a single book by ID.
func (c *Catalog) Book(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	b, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("book: %w", err)
	}
	return b, nil
}
