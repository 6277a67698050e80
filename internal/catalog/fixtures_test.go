package catalog_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/in_mem"
	"github.com/google/uuid"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type bookOpt func(*domain.Book)

// newBook builds a book with a deterministic ID derived from n.
func newBook(n int, title string, opts ...bookOpt) domain.Book {
	b := domain.Book{
		ID:        uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n)),
		Title:     title,
		CreatedAt: epoch.Add(time.Duration(n) * time.Minute),
	}
	for _, o := range opts {
		o(&b)
	}
	return b
}

func withAuthor(a string) bookOpt { return func(b *domain.Book) { b.Author = a } }

func withCategories(c ...string) bookOpt { return func(b *domain.Book) { b.Categories = c } }

func withTags(t ...string) bookOpt { return func(b *domain.Book) { b.Tags = t } }

func withRating(r float64) bookOpt { return func(b *domain.Book) { b.AverageRating = &r } }

func withCount(n int) bookOpt { return func(b *domain.Book) { b.RatingsCount = n } }

func titlesOf(books []domain.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

// spyStore counts calls and can fail on demand.
type spyStore struct {
	inner     catalog.Store
	finds     atomic.Int32
	scans     atomic.Int32
	bookScans atomic.Int32
	failFind  error
	failScan  error
	failGet   error
	failBooks error
	lastQuery atomic.Pointer[catalog.Query]
}

func newSpy(books ...domain.Book) *spyStore {
	return &spyStore{inner: in_mem.NewStore(books...)}
}

func (s *spyStore) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if s.failGet != nil {
		return nil, s.failGet
	}
	return s.inner.Get(ctx, id)
}

func (s *spyStore) Find(ctx context.Context, q catalog.Query) (*catalog.FindResult, error) {
	s.finds.Add(1)
	s.lastQuery.Store(&q)
	if s.failFind != nil {
		return nil, s.failFind
	}
	return s.inner.Find(ctx, q)
}

func (s *spyStore) Scan(ctx context.Context, f catalog.Filter, fn func(domain.Book) error) error {
	s.bookScans.Add(1)
	if s.failBooks != nil {
		return s.failBooks
	}
	return s.inner.Scan(ctx, f, fn)
}

func (s *spyStore) ScanCategories(ctx context.Context, fn func([]string) error) error {
	s.scans.Add(1)
	if s.failScan != nil {
		return s.failScan
	}
	return s.inner.ScanCategories(ctx, fn)
}

func (s *spyStore) Distinct(ctx context.Context, facet catalog.Facet) ([]string, error) {
	return s.inner.Distinct(ctx, facet)
}
