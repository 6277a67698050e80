package es

import (
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

const (
	fieldID            = "id"
	fieldTitle         = "title"
	fieldAuthor        = "author"
	fieldISBN          = "isbn"
	fieldDescription   = "description"
	fieldCategories    = "categories"
	fieldTags          = "tags"
	fieldAverageRating = "average_rating"
	fieldRatingsCount  = "ratings_count"
	fieldCreatedAt     = "created_at"

	// literalSubfield is a wildcard-typed subfield used for substring matching.
	literalSubfield = "literal"
	keywordSubfield = "keyword"
)

// textFields are matched by the free-text criterion.
var textFields = []string{fieldTitle, fieldAuthor, fieldISBN, fieldDescription}

// BookDocument is the indexed shape of a book.
type BookDocument struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	Description   string    `json:"description"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	Categories    []string  `json:"categories"`
	Tags          []string  `json:"tags"`
	AverageRating *float64  `json:"average_rating"`
	RatingsCount  int       `json:"ratings_count"`
	CreatedAt     time.Time `json:"created_at"`
	IndexedAt     time.Time `json:"indexed_at"`
}

type IndexBuilder struct {
	now func() time.Time
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{now: time.Now}
}

func (b *IndexBuilder) toDocument(book domain.Book) BookDocument {
	now := b.now().UTC()
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	return BookDocument{
		ID:            book.ID.String(),
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		Description:   book.Description,
		CoverImageURL: book.CoverImageURL,
		Categories:    nonNil(book.Categories),
		Tags:          nonNil(book.Tags),
		AverageRating: book.AverageRating,
		RatingsCount:  book.RatingsCount,
		CreatedAt:     book.CreatedAt,
		IndexedAt:     now,
	}
}

func (d BookDocument) toDomain() (domain.Book, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Book{}, err
	}
	return domain.Book{
		ID:            id,
		Title:         d.Title,
		Author:        d.Author,
		ISBN:          d.ISBN,
		Description:   d.Description,
		CoverImageURL: d.CoverImageURL,
		Categories:    nonNil(d.Categories),
		Tags:          nonNil(d.Tags),
		AverageRating: d.AverageRating,
		RatingsCount:  d.RatingsCount,
		CreatedAt:     d.CreatedAt,
	}, nil
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			fieldID:            types.NewKeywordProperty(),
			fieldTitle:         b.createTextProperty(true),
			fieldAuthor:        b.createTextProperty(true),
			fieldISBN:          b.createKeywordProperty(),
			fieldDescription:   b.createTextProperty(false),
			"cover_image_url":  types.NewKeywordProperty(),
			fieldCategories:    types.NewKeywordProperty(),
			fieldTags:          types.NewKeywordProperty(),
			fieldAverageRating: types.NewDoubleNumberProperty(),
			fieldRatingsCount:  types.NewIntegerNumberProperty(),
			fieldCreatedAt:     types.NewDateProperty(),
			"indexed_at":       types.NewDateProperty(),
		},
	}
}

// createTextProperty maps an analyzed text field with a wildcard subfield and, when sortable,
// a keyword subfield.
func (b *IndexBuilder) createTextProperty(sortable bool) types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		literalSubfield: types.NewWildcardProperty(),
	}
	if sortable {
		textProp.Fields[keywordSubfield] = types.NewKeywordProperty()
	}
	return textProp
}

func (b *IndexBuilder) createKeywordProperty() types.Property {
	keywordProp := types.NewKeywordProperty()
	keywordProp.Fields = map[string]types.Property{
		literalSubfield: types.NewWildcardProperty(),
	}
	return keywordProp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
