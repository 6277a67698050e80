package query

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultPage is the page used when the request carries none or an invalid one.
const DefaultPage = 1

// Params is the raw, unvalidated form of a search request.
type Params struct {
	Query  string `query:"query"`
	Genre  string `query:"genre"`
	Rating string `query:"rating"`
	Tag    string `query:"tag"`
	Sort   string `query:"sort"`
	Page   string `query:"page"`
}

// IsBlank reports whether none of the parameters that select search over the homepage feed is set.
func (p Params) IsBlank() bool {
	return strings.TrimSpace(p.Query) == "" &&
		strings.TrimSpace(p.Genre) == "" &&
		strings.TrimSpace(p.Rating) == "" &&
		strings.TrimSpace(p.Sort) == ""
}

// Spec is the parsed search request. It is built once per request and never mutated.
type Spec struct {
	Text      string
	Category  string
	MinRating *float64
	Tag       string
	Sort      SortKey
	Page      int
}

// Parse validates raw parameters. Invalid input never fails: an unparsable or negative rating is
// dropped and a page below 1 becomes DefaultPage.
func Parse(p Params) Spec {
	return Spec{
		Text:      strings.TrimSpace(p.Query),
		Category:  strings.TrimSpace(p.Genre),
		MinRating: ParseMinRating(p.Rating),
		Tag:       strings.TrimSpace(p.Tag),
		Sort:      ParseSortKey(p.Sort),
		Page:      ParsePage(p.Page),
	}
}

// ParseMinRating returns nil for anything that is not a finite, non-negative decimal.
func ParseMinRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParsePage clamps the page number to at least DefaultPage. Positive numbers too large for
// an int become math.MaxInt, which pagination later clamps to its last page.
func ParsePage(s string) int {
	s = strings.TrimSpace(s)
	page, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(s, "-") {
		return math.MaxInt
	}
	if err != nil || page < DefaultPage {
		return DefaultPage
	}
	return page
}

// HasCriteria reports whether any of text, category or rating is present.
// Tag and sort alone are not criteria.
func (s Spec) HasCriteria() bool {
	return s.Text != "" || s.Category != "" || s.MinRating != nil
}

// EffectivePage returns Page clamped to DefaultPage.
func (s Spec) EffectivePage() int {
	if s.Page < DefaultPage {
		return DefaultPage
	}
	return s.Page
}
