package processor

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/collector"
	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/reader"
	"github.com/DjordjeVuckovic/book-hunter/internal/storage/in_mem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingIndexer struct {
	*in_mem.Store
	bulkCalls int
	failBulk  error
}

func (c *countingIndexer) SaveBulk(ctx context.Context, books []domain.Book) error {
	c.bulkCalls++
	if c.failBulk != nil {
		return c.failBulk
	}
	return c.Store.SaveBulk(ctx, books)
}

func yamlCollector(t *testing.T) *collector.BookCollector {
	t.Helper()
	f, err := os.Open("../reader/testdata/books.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return collector.NewBookCollector(reader.NewYAMLReader(f))
}

func TestPipeline_Basic(t *testing.T) {
	store := in_mem.NewStore()
	stats, err := NewPipeline(yamlCollector(t), store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Saved: 2, Skipped: 2}, stats)

	b, err := store.Get(context.Background(), uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7"))
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)

	res, err := store.Find(context.Background(), catalog.Query{Filter: catalog.Filter{Category: "Fantasy"}})
	require.NoError(t, err)
	require.Len(t, res.Books, 1)
	assert.NotEqual(t, uuid.Nil, res.Books[0].ID)
	assert.False(t, res.Books[0].CreatedAt.IsZero())
}

func TestPipeline_Bulk(t *testing.T) {
	idx := &countingIndexer{Store: in_mem.NewStore()}
	stats, err := NewPipeline(yamlCollector(t), idx, WithBulk(1)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Saved: 2, Skipped: 2, Batches: 2}, stats)
	assert.Equal(t, 2, idx.bulkCalls)
}

func TestPipeline_BulkFailureCounts(t *testing.T) {
	idx := &countingIndexer{Store: in_mem.NewStore(), failBulk: errors.New("down")}
	stats, err := NewPipeline(yamlCollector(t), idx, WithBulk(10)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Failed: 2, Skipped: 2}, stats)
	assert.Equal(t, 1, idx.bulkCalls)
}

func TestImportFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Stats
	}{
		{name: "yaml", path: "../reader/testdata/books.yaml", want: Stats{Saved: 2, Skipped: 2}},
		{name: "csv", path: "../reader/testdata/books.csv", want: Stats{Saved: 3, Skipped: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := in_mem.NewStore()
			stats, err := ImportFile(context.Background(), tt.path, store)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stats)

			res, err := store.Find(context.Background(), catalog.Query{Filter: catalog.Filter{Text: "hobbit"}})
			require.NoError(t, err)
			assert.Equal(t, int64(1), res.Total)
		})
	}
}

func TestImportFile_Errors(t *testing.T) {
	_, err := ImportFile(context.Background(), "../reader/testdata/missing.yaml", in_mem.NewStore())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ImportFile(context.Background(), "../reader/testdata/books.json", in_mem.NewStore())
	assert.Error(t, err)
}
