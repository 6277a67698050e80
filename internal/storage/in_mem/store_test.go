package in_mem

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func book(id string, title string, mutate ...func(*domain.Book)) domain.Book {
	b := domain.Book{
		ID:        uuid.MustParse(id),
		Title:     title,
		CreatedAt: base,
	}
	for _, m := range mutate {
		m(&b)
	}
	return b
}

func rating(v float64) func(*domain.Book) {
	return func(b *domain.Book) { b.AverageRating = &v }
}

func titles(books []domain.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestTextMatcher(t *testing.T) {
	tests := []struct {
		name string
		term string
		book domain.Book
		want bool
	}{
		{name: "title substring any case", term: "DUNE", book: domain.Book{Title: "Children of Dune"}, want: true},
		{name: "author", term: "herbert", book: domain.Book{Author: "Frank Herbert"}, want: true},
		{name: "isbn", term: "0441", book: domain.Book{ISBN: "978-0441013593"}, want: true},
		{name: "description", term: "spice", book: domain.Book{Description: "The Spice must flow"}, want: true},
		{name: "metacharacters literal match", term: "a.b*", book: domain.Book{Title: "a.b*"}, want: true},
		{name: "metacharacters do not act as pattern", term: "a.b*", book: domain.Book{Title: "axb"}, want: false},
		{name: "brackets", term: "[draft]", book: domain.Book{Title: "d"}, want: false},
		{name: "no match", term: "tolkien", book: domain.Book{Title: "Dune", Author: "Herbert"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTextMatcher(tt.term).Match(tt.book))
		})
	}
}

func TestStore_Get(t *testing.T) {
	b := book("00000000-0000-0000-0000-000000000001", "Dune")
	s := NewStore(b)

	got, err := s.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.NotNil(t, got.Categories)

	_, err = s.Get(context.Background(), uuid.New())
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStore_Find_Filters(t *testing.T) {
	s := NewStore(
		book("00000000-0000-0000-0000-000000000001", "Dune", rating(4.5), func(b *domain.Book) {
			b.Categories = []string{"SciFi"}
			b.Tags = []string{"classic"}
		}),
		book("00000000-0000-0000-0000-000000000002", "Unrated Dune", func(b *domain.Book) {
			b.Categories = []string{"SciFi"}
		}),
		book("00000000-0000-0000-0000-000000000003", "Emma", rating(3.9), func(b *domain.Book) {
			b.Categories = []string{"Romance"}
			b.Tags = []string{"classic"}
		}),
	)
	ctx := context.Background()
	four := 4.0

	tests := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{name: "empty filter returns all", filter: catalog.Filter{}, want: []string{"Dune", "Unrated Dune", "Emma"}},
		{name: "text", filter: catalog.Filter{Text: "dune"}, want: []string{"Dune", "Unrated Dune"}},
		{name: "category", filter: catalog.Filter{Category: "Romance"}, want: []string{"Emma"}},
		{name: "rating excludes unrated", filter: catalog.Filter{Text: "dune", MinRating: &four}, want: []string{"Dune"}},
		{name: "tag", filter: catalog.Filter{Tag: "classic"}, want: []string{"Dune", "Emma"}},
		{name: "any category with exclusion", filter: catalog.Filter{
			AnyCategory: []string{"SciFi", "Romance"},
			ExcludeID:   uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		}, want: []string{"Unrated Dune", "Emma"}},
		{name: "category is exact", filter: catalog.Filter{Category: "scifi"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Find(ctx, catalog.Query{Filter: tt.filter})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(res.Books))
			assert.Equal(t, int64(len(tt.want)), res.Total)
		})
	}
}

func TestStore_Find_Window(t *testing.T) {
	s := NewStore()
	for i := 0; i < 7; i++ {
		_, _ = s.Save(context.Background(), domain.Book{Title: string(rune('a' + i))})
	}

	res, err := s.Find(context.Background(), catalog.Query{Offset: 5, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"f", "g"}, titles(res.Books))
	assert.Equal(t, int64(7), res.Total)

	res, err = s.Find(context.Background(), catalog.Query{Offset: 50, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, res.Books)
	assert.Equal(t, int64(7), res.Total)
}

func TestStore_Scan(t *testing.T) {
	s := NewStore(
		book("00000000-0000-0000-0000-000000000001", "Dune", func(b *domain.Book) { b.Categories = []string{"SciFi"} }),
		book("00000000-0000-0000-0000-000000000002", "Hobbit", func(b *domain.Book) { b.Categories = []string{"Fantasy"} }),
		book("00000000-0000-0000-0000-000000000003", "Hyperion", func(b *domain.Book) { b.Categories = []string{"SciFi"} }),
	)

	var got []string
	err := s.Scan(context.Background(), catalog.Filter{AnyCategory: []string{"SciFi"}}, func(b domain.Book) error {
		got = append(got, b.Title)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Hyperion"}, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Scan(ctx, catalog.Filter{}, func(domain.Book) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSortBooks(t *testing.T) {
	a := book("00000000-0000-0000-0000-00000000000a", "beta", rating(4), func(b *domain.Book) { b.RatingsCount = 10 })
	b := book("00000000-0000-0000-0000-00000000000b", "Alpha", rating(5), func(b *domain.Book) {
		b.RatingsCount = 10
		b.CreatedAt = base.Add(time.Hour)
	})
	c := book("00000000-0000-0000-0000-00000000000c", "alpha", func(b *domain.Book) { b.RatingsCount = 99 })
	d := book("00000000-0000-0000-0000-00000000000d", "beta", rating(4), func(b *domain.Book) { b.CreatedAt = base.Add(2 * time.Hour) })

	tests := []struct {
		key  query.SortKey
		want []string
	}{
		{key: query.SortPopularity, want: []string{"c", "a", "b", "d"}},
		{key: query.SortRating, want: []string{"b", "a", "d", "c"}},
		{key: query.SortTitle, want: []string{"b", "c", "a", "d"}},
		{key: query.SortRecent, want: []string{"d", "b", "a", "c"}},
		{key: query.SortNatural, want: []string{"d", "c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			books := []domain.Book{d, c, b, a}
			SortBooks(books, tt.key)

			got := make([]string, 0, len(books))
			for _, bk := range books {
				got = append(got, bk.ID.String()[35:])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Distinct(t *testing.T) {
	s := NewStore(
		domain.Book{Title: "x", Categories: []string{"B", "A"}, Tags: []string{"t1"}},
		domain.Book{Title: "y", Categories: []string{"A"}, Tags: []string{"t2", "t1"}},
	)

	cats, err := s.Distinct(context.Background(), catalog.FacetCategories)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "A", "B"}, cats)

	tags, err := s.Distinct(context.Background(), catalog.FacetTags)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t1", "t2"}, tags)
}
