package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Book is a catalog item. Categories are exposed as "genres" on the wire.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	Description   string    `json:"description,omitempty"`
	CoverImageURL *string   `json:"cover_image_url,omitempty" format:"uri"`
	Categories    []string  `json:"genres"`
	Tags          []string  `json:"tags"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	RatingsCount  int       `json:"ratings_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Rating returns the average rating, or 0 when the book has not been rated.
func (b Book) Rating() float64 {
	if b.AverageRating == nil {
		return 0
	}
	return *b.AverageRating
}

// HasCategory reports whether the category set contains label exactly.
func (b Book) HasCategory(label string) bool {
	return slices.Contains(b.Categories, label)
}

// HasTag reports whether the tag set contains label exactly.
func (b Book) HasTag(label string) bool {
	return slices.Contains(b.Tags, label)
}

// IDLess orders books by the canonical string form of their identifiers.
func IDLess(a, b uuid.UUID) bool {
	return a.String() < b.String()
}

// ScoredBook is a similarity candidate. The score lives only for one ranking pass.
type ScoredBook struct {
	Book  `json:"book"`
	Score float64 `json:"score"`
}
