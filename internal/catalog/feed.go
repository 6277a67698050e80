package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"golang.org/x/sync/errgroup"
)

const (
	// FeedCategoryLimit is the number of categories on the homepage.
	FeedCategoryLimit = 5
	// FeedBooksLimit is the number of books per homepage group.
	FeedBooksLimit = 10
	// RecentlyAddedLabel names the fallback group used when no book has a category.
	RecentlyAddedLabel = "Recently Added"
)

// FeedGroup is one homepage row. Book order is ranking order.
type FeedGroup struct {
	Label string        `json:"label"`
	Books []domain.Book `json:"books"`
}

// Feed is the homepage grouping. Groups are ordered by category size. Fallback is set when
// the feed holds the single recently-added group instead of categories.
type Feed struct {
	Groups   []FeedGroup `json:"groups"`
	Fallback bool        `json:"fallback"`
}

type FeedAggregator struct {
	store         Store
	categoryLimit int
	booksLimit    int
}

func NewFeedAggregator(store Store) *FeedAggregator {
	return &FeedAggregator{
		store:         store,
		categoryLimit: FeedCategoryLimit,
		booksLimit:    FeedBooksLimit,
	}
}

// HomepageFeed groups the most popular books of the largest categories. When no book carries
// a category it returns the recently-added group instead, which is empty for an empty catalog.
func (a *FeedAggregator) HomepageFeed(ctx context.Context) (*Feed, error) {
	counter := NewGroupCounter()
	err := a.store.ScanCategories(ctx, func(categories []string) error {
		counter.Add(categories)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	top := counter.Top(a.categoryLimit)
	slog.Info("Computed top categories", "distinct", counter.Len(), "selected", len(top))

	if len(top) == 0 {
		return a.recentlyAdded(ctx)
	}

	groups := make([]FeedGroup, len(top))
	g, gctx := errgroup.WithContext(ctx)
	for i, gc := range top {
		g.Go(func() error {
			res, err := a.store.Find(gctx, Query{
				Filter: Filter{Category: gc.Label},
				Sort:   query.SortPopularity,
				Limit:  a.booksLimit,
			})
			if err != nil {
				return fmt.Errorf("feed group %q: %w", gc.Label, err)
			}
			groups[i] = FeedGroup{Label: gc.Label, Books: nonNil(res.Books)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Feed{Groups: groups}, nil
}

func (a *FeedAggregator) recentlyAdded(ctx context.Context) (*Feed, error) {
	res, err := a.store.Find(ctx, Query{Sort: query.SortRecent, Limit: a.booksLimit})
	if err != nil {
		return nil, fmt.Errorf("recently added: %w", err)
	}

	return &Feed{
		Groups:   []FeedGroup{{Label: RecentlyAddedLabel, Books: nonNil(res.Books)}},
		Fallback: true,
	}, nil
}

func nonNil(books []domain.Book) []domain.Book {
	if books == nil {
		return make([]domain.Book, 0)
	}
	return books
}
