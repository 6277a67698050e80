package ingest

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RatingDecimals is the precision ratings are stored with.
const RatingDecimals = 2

// Record is one book as it appears in a seed dataset.
type Record struct {
	ID            string     `yaml:"id"`
	Title         string     `yaml:"title" validate:"required"`
	Author        string     `yaml:"author"`
	ISBN          string     `yaml:"isbn"`
	Description   string     `yaml:"description"`
	CoverImageURL string     `yaml:"cover_image_url" validate:"omitempty,url"`
	Genres        []string   `yaml:"genres"`
	Tags          []string   `yaml:"tags"`
	AverageRating *float64   `yaml:"average_rating" validate:"omitempty,gte=0,lte=5"`
	RatingsCount  int        `yaml:"ratings_count" validate:"gte=0"`
	CreatedAt     *time.Time `yaml:"created_at"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the record and reports every failing field in one apperr.ValidationError.
func (r Record) Validate() error {
	err := getValidator().Struct(r)
	if err == nil {
		if r.ID != "" {
			if _, perr := uuid.Parse(r.ID); perr != nil {
				return apperr.NewValidationWrap(fmt.Sprintf("id %q is not a UUID", r.ID), perr)
			}
		}
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.NewValidationWrap("invalid record", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return apperr.NewValidation(fmt.Sprintf("record %q: %s", r.Title, strings.Join(msgs, "; ")))
}

// ToBook maps a validated record. Missing IDs and creation times are left zero for the
// indexer to assign.
func (r Record) ToBook() domain.Book {
	b := domain.Book{
		Title:        strings.TrimSpace(r.Title),
		Author:       strings.TrimSpace(r.Author),
		ISBN:         strings.TrimSpace(r.ISBN),
		Description:  r.Description,
		Categories:   cleanLabels(r.Genres),
		Tags:         cleanLabels(r.Tags),
		RatingsCount: r.RatingsCount,
	}
	if r.ID != "" {
		b.ID = uuid.MustParse(r.ID)
	}
	if r.CoverImageURL != "" {
		u := r.CoverImageURL
		b.CoverImageURL = &u
	}
	if r.AverageRating != nil {
		v := utils.RoundDecimal(*r.AverageRating, RatingDecimals)
		b.AverageRating = &v
	}
	if r.CreatedAt != nil {
		b.CreatedAt = r.CreatedAt.UTC()
	}
	return b
}

// cleanLabels trims labels and drops blanks and duplicates, keeping first-seen order.
func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
