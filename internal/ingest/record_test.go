package ingest

import (
	"testing"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr string
	}{
		{name: "valid", record: Record{Title: "Dune", AverageRating: ptr(4.2), RatingsCount: 10}},
		{name: "missing title", record: Record{Author: "X"}, wantErr: "Title failed required"},
		{name: "rating above five", record: Record{Title: "A", AverageRating: ptr(5.5)}, wantErr: "AverageRating failed lte=5"},
		{name: "negative rating", record: Record{Title: "A", AverageRating: ptr(-1)}, wantErr: "AverageRating failed gte=0"},
		{name: "negative count", record: Record{Title: "A", RatingsCount: -1}, wantErr: "RatingsCount failed gte=0"},
		{name: "bad cover url", record: Record{Title: "A", CoverImageURL: "not a url"}, wantErr: "CoverImageURL failed url"},
		{name: "bad id", record: Record{ID: "42", Title: "A"}, wantErr: `id "42" is not a UUID`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecord_ToBook(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	id := uuid.New()

	b := Record{
		ID:            id.String(),
		Title:         "  Dune ",
		Author:        "Frank Herbert",
		CoverImageURL: "https://covers.test/dune.jpg",
		Genres:        []string{"SciFi", " SciFi", "", "Classics"},
		AverageRating: ptr(4.256),
		RatingsCount:  3,
		CreatedAt:     &created,
	}.ToBook()

	assert.Equal(t, id, b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, []string{"SciFi", "Classics"}, b.Categories)
	assert.Equal(t, []string{}, b.Tags)
	require.NotNil(t, b.AverageRating)
	assert.InDelta(t, 4.26, *b.AverageRating, 1e-9)
	require.NotNil(t, b.CoverImageURL)
	assert.Equal(t, time.UTC, b.CreatedAt.Location())

	empty := Record{Title: "X"}.ToBook()
	assert.Equal(t, uuid.Nil, empty.ID)
	assert.Nil(t, empty.AverageRating)
	assert.Nil(t, empty.CoverImageURL)
	assert.True(t, empty.CreatedAt.IsZero())
}
