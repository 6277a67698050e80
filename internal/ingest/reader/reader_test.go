package reader

import (
	"context"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, ch <-chan ParallelReaderResult) (ok []ParallelReaderResult, errs []error) {
	t.Helper()
	for res := range ch {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		ok = append(ok, res)
	}
	sort.Slice(ok, func(i, j int) bool { return ok[i].Record.Title < ok[j].Record.Title })
	return ok, errs
}

func TestYAMLReader(t *testing.T) {
	f, err := os.Open("testdata/books.yaml")
	require.NoError(t, err)
	defer f.Close()

	ch, err := NewYAMLReader(f).ReadParallel(context.Background(), 2)
	require.NoError(t, err)

	records, errs := drain(t, ch)
	assert.Empty(t, errs)
	require.Len(t, records, 4)

	dune := records[2].Record
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", dune.ID)
	assert.Equal(t, []string{"SciFi", "Classics"}, dune.Genres)
	require.NotNil(t, dune.AverageRating)
	assert.InDelta(t, 4.25, *dune.AverageRating, 1e-9)
	require.NotNil(t, dune.CreatedAt)
	assert.Equal(t, 2024, dune.CreatedAt.Year())
}

func TestYAMLReader_BadEntry(t *testing.T) {
	src := "books:\n  - title: Good\n  - title: [not, a, string]\n"
	ch, err := NewYAMLReader(strings.NewReader(src)).ReadParallel(context.Background(), 1)
	require.NoError(t, err)

	records, errs := drain(t, ch)
	require.Len(t, records, 1)
	assert.Equal(t, "Good", records[0].Record.Title)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "book #2")
}

func TestCSVReader(t *testing.T) {
	f, err := os.Open("testdata/books.csv")
	require.NoError(t, err)
	defer f.Close()

	ch, err := NewCSVReader(f).ReadParallel(context.Background(), 3)
	require.NoError(t, err)

	records, errs := drain(t, ch)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "ratings_count")
	require.Len(t, records, 3)

	dune := records[0].Record
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Desert planet, politics.", dune.Description)
	assert.Equal(t, []string{"SciFi", "Classics"}, dune.Genres)
	assert.Equal(t, []string{"classic"}, dune.Tags)
	assert.Equal(t, 912000, dune.RatingsCount)
	require.NotNil(t, dune.CreatedAt)

	unrated := records[2].Record
	assert.Equal(t, "Unrated", unrated.Title)
	assert.Nil(t, unrated.AverageRating)
	assert.Nil(t, unrated.Genres)
}

func TestForPath(t *testing.T) {
	_, err := ForPath("books.YAML", strings.NewReader(""))
	assert.NoError(t, err)
	_, err = ForPath("books.csv", strings.NewReader(""))
	assert.NoError(t, err)
	_, err = ForPath("books.json", strings.NewReader(""))
	assert.Error(t, err)
}
