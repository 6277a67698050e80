package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/book-hunter/pkg/pagination"
	"github.com/google/uuid"
)

// Store keeps books in memory. Natural order is insertion order.
type Store struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Book
	order       []uuid.UUID
}

func NewStore(books ...domain.Book) *Store {
	s := &Store{
		storage: make(map[uuid.UUID]domain.Book),
	}
	for _, b := range books {
		s.put(b)
	}
	return s
}

func (s *Store) Save(ctx context.Context, book domain.Book) (uuid.UUID, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	id := s.put(book)
	slog.Debug("Saved book to in-memory storage", "title", book.Title, "id", id)
	return id, nil
}

func (s *Store) SaveBulk(ctx context.Context, books []domain.Book) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, b := range books {
		s.put(b)
	}
	slog.Info("Saved books to in-memory storage", "count", len(books))
	return nil
}

func (s *Store) put(b domain.Book) uuid.UUID {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.storage[b.ID]; !exists {
		s.order = append(s.order, b.ID)
	}
	s.storage[b.ID] = clone(b)
	return b.ID
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	b, ok := s.storage[id]
	if !ok {
		return nil, apperr.NewNotFound("book", id.String())
	}
	out := clone(b)
	return &out, nil
}

func (s *Store) Find(ctx context.Context, q catalog.Query) (*catalog.FindResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	books := s.matching(q.Filter)
	SortBooks(books, q.Sort)

	total := int64(len(books))
	limit := q.Limit
	if limit <= 0 {
		limit = pagination.PageMaxSize
	}
	start := min(max(q.Offset, 0), len(books))
	end := min(start+limit, len(books))

	return &catalog.FindResult{Books: books[start:end], Total: total}, nil
}

func (s *Store) Scan(ctx context.Context, f catalog.Filter, fn func(book domain.Book) error) error {
	for _, b := range s.matching(f) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
	}
	return nil
}

// matching snapshots the books passing f, in insertion order.
func (s *Store) matching(f catalog.Filter) []domain.Book {
	match := compile(f)

	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	books := make([]domain.Book, 0)
	for _, id := range s.order {
		b := s.storage[id]
		if match(b) {
			books = append(books, clone(b))
		}
	}
	return books
}

func (s *Store) ScanCategories(ctx context.Context, fn func(categories []string) error) error {
	s.storageLock.RLock()
	sets := make([][]string, 0, len(s.order))
	for _, id := range s.order {
		sets = append(sets, slices.Clone(s.storage[id].Categories))
	}
	s.storageLock.RUnlock()

	for _, c := range sets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Distinct(ctx context.Context, facet catalog.Facet) ([]string, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	var values []string
	for _, b := range s.storage {
		switch facet {
		case catalog.FacetCategories:
			values = append(values, b.Categories...)
		case catalog.FacetTags:
			values = append(values, b.Tags...)
		}
	}
	return values, nil
}

// compile turns a filter into a predicate, applying clauses in text, category, rating, tag order.
func compile(f catalog.Filter) func(domain.Book) bool {
	var text *TextMatcher
	if f.Text != "" {
		text = NewTextMatcher(f.Text)
	}

	return func(b domain.Book) bool {
		if text != nil && !text.Match(b) {
			return false
		}
		if f.Category != "" && !b.HasCategory(f.Category) {
			return false
		}
		if f.MinRating != nil && (b.AverageRating == nil || *b.AverageRating < *f.MinRating) {
			return false
		}
		if f.Tag != "" && !b.HasTag(f.Tag) {
			return false
		}
		if len(f.AnyCategory) > 0 && catalog.SharedCount(f.AnyCategory, b.Categories) == 0 {
			return false
		}
		if f.ExcludeID != uuid.Nil && b.ID == f.ExcludeID {
			return false
		}
		return true
	}
}

// SortBooks orders books in place. SortNatural keeps the incoming order.
func SortBooks(books []domain.Book, key query.SortKey) {
	var less func(a, b domain.Book) (bool, bool)
	switch key {
	case query.SortPopularity:
		less = func(a, b domain.Book) (bool, bool) {
			return a.RatingsCount > b.RatingsCount, a.RatingsCount == b.RatingsCount
		}
	case query.SortRating:
		less = func(a, b domain.Book) (bool, bool) {
			switch {
			case a.AverageRating == nil && b.AverageRating == nil:
				return false, true
			case a.AverageRating == nil:
				return false, false
			case b.AverageRating == nil:
				return true, false
			}
			return *a.AverageRating > *b.AverageRating, *a.AverageRating == *b.AverageRating
		}
	case query.SortTitle:
		less = func(a, b domain.Book) (bool, bool) {
			return a.Title < b.Title, a.Title == b.Title
		}
	case query.SortRecent:
		less = func(a, b domain.Book) (bool, bool) {
			return a.CreatedAt.After(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
	default:
		return
	}

	sort.SliceStable(books, func(i, j int) bool {
		l, tie := less(books[i], books[j])
		if tie {
			return domain.IDLess(books[i].ID, books[j].ID)
		}
		return l
	})
}

func clone(b domain.Book) domain.Book {
	b.Categories = append([]string{}, b.Categories...)
	b.Tags = append([]string{}, b.Tags...)
	if b.AverageRating != nil {
		r := *b.AverageRating
		b.AverageRating = &r
	}
	if b.CoverImageURL != nil {
		u := *b.CoverImageURL
		b.CoverImageURL = &u
	}
	return b
}

var (
	_ catalog.Store   = (*Store)(nil)
	_ catalog.Indexer = (*Store)(nil)
)
