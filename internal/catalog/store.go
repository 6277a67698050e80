// Package catalog holds the read side of the book catalog: search, the homepage feed,
// similar-book ranking and distinct facet listings. It never mutates the store.
package catalog

import (
	"context"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"github.com/google/uuid"
)

// Facet names a multi-valued attribute that can be listed.
type Facet string

const (
	FacetCategories Facet = "categories"
	FacetTags       Facet = "tags"
)

// Filter is the conjunction of all narrowing clauses of a Query. Zero fields do not narrow.
type Filter struct {
	// Text is matched literally and case-insensitively as a substring of title, author, ISBN
	// or description. Backends must escape their own pattern syntax.
	Text string
	// Category keeps books whose category set contains it exactly.
	Category string
	// MinRating keeps rated books with an average rating >= the threshold.
	MinRating *float64
	// Tag keeps books whose tag set contains it exactly.
	Tag string
	// AnyCategory keeps books sharing at least one category with the set.
	AnyCategory []string
	// ExcludeID drops a single book.
	ExcludeID uuid.UUID
}

// Query is one composed request against a Store.
type Query struct {
	Filter Filter
	Sort   query.SortKey
	Offset int
	// Limit caps the page size. Zero means the store's maximum window.
	Limit int
}

// FindResult is a window of matching books plus the total number of matches.
type FindResult struct {
	Books []domain.Book
	Total int64
}

// Store is the catalog store port. Implementations must be safe for concurrent use and
// report misses as *apperr.NotFoundError and connectivity failures as
// *apperr.StoreUnavailableError.
type Store interface {
	// Get returns the book with the given ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	// Find returns the books matching q, sorted and windowed.
	Find(ctx context.Context, q Query) (*FindResult, error)
	// Scan calls fn with every book matching f, in no particular order. Unlike Find it is
	// not windowed.
	Scan(ctx context.Context, f Filter, fn func(book domain.Book) error) error
	// ScanCategories calls fn with the category set of every book in the catalog.
	ScanCategories(ctx context.Context, fn func(categories []string) error) error
	// Distinct returns the values of a facet present in the catalog, in any order.
	Distinct(ctx context.Context, facet Facet) ([]string, error)
}

// Indexer writes books into a store. It is used by the import tool only.
type Indexer interface {
	Save(ctx context.Context, book domain.Book) (uuid.UUID, error)
	SaveBulk(ctx context.Context, books []domain.Book) error
}
