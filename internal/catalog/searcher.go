package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/book-hunter/pkg/pagination"
)

// DefaultPageSize is the number of books per search page.
const DefaultPageSize = pagination.PageDefaultSize

type BookPage = pagination.OffsetResult[domain.Book]

// Searcher turns a query.Spec into one composed Query against the store.
type Searcher struct {
	store    Store
	pageSize int
}

type SearcherOption func(*Searcher)

// WithPageSize overrides DefaultPageSize. Non-positive sizes are ignored.
func WithPageSize(size int) SearcherOption {
	return func(s *Searcher) {
		if size > 0 {
			s.pageSize = min(size, pagination.PageMaxSize)
		}
	}
}

func NewSearcher(store Store, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		store:    store,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageSize returns the effective page size.
func (s *Searcher) PageSize() int {
	return s.pageSize
}

// Search runs a faceted search. A query without text, category and rating yields an empty
// page without touching the store: an open search never scans the whole catalog.
func (s *Searcher) Search(ctx context.Context, spec query.Spec) (*BookPage, error) {
	page := spec.EffectivePage()
	if !spec.HasCriteria() {
		slog.Debug("Search without criteria, returning empty page", "page", page)
		return pagination.Empty[domain.Book](page, s.pageSize), nil
	}

	return s.run(ctx, spec, page)
}

// SearchByTag lists books carrying tag. It is a separate path from Search and is not
// subject to the criteria guard, but a blank tag still yields an empty page.
func (s *Searcher) SearchByTag(ctx context.Context, tag string, sort query.SortKey, page int) (*BookPage, error) {
	spec := query.Spec{Tag: strings.TrimSpace(tag), Sort: sort, Page: page}
	page = spec.EffectivePage()
	if spec.Tag == "" {
		return pagination.Empty[domain.Book](page, s.pageSize), nil
	}

	return s.run(ctx, spec, page)
}

func (s *Searcher) run(ctx context.Context, spec query.Spec, page int) (*BookPage, error) {
	req := pagination.NewOffsetRequest(page, s.pageSize)
	q := Query{
		Filter: BuildFilter(spec),
		Sort:   spec.Sort,
		Offset: req.Offset(),
		Limit:  req.Size,
	}

	slog.Info("Executing catalog search",
		"text", spec.Text,
		"category", spec.Category,
		"min_rating", spec.MinRating,
		"tag", spec.Tag,
		"sort", spec.Sort,
		"page", req.Page)

	res, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return pagination.NewOffsetResult(res.Books, res.Total, req.Page, req.Size), nil
}

// BuildFilter composes the query clauses in their fixed order: text, category, rating, tag.
func BuildFilter(spec query.Spec) Filter {
	var f Filter
	if spec.Text != "" {
		f.Text = spec.Text
	}
	if spec.Category != "" {
		f.Category = spec.Category
	}
	if spec.MinRating != nil {
		v := *spec.MinRating
		f.MinRating = &v
	}
	if spec.Tag != "" {
		f.Tag = spec.Tag
	}
	return f
}
