package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinRating(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "empty", input: "", want: nil},
		{name: "integer", input: "4", want: ptr(4)},
		{name: "decimal", input: " 3.5 ", want: ptr(3.5)},
		{name: "zero", input: "0", want: ptr(0)},
		{name: "not a number", input: "four", want: nil},
		{name: "negative", input: "-1", want: nil},
		{name: "nan", input: "NaN", want: nil},
		{name: "infinity", input: "+Inf", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMinRating(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "", want: 1},
		{input: "1", want: 1},
		{input: "7", want: 7},
		{input: "0", want: 1},
		{input: "-3", want: 1},
		{input: "two", want: 1},
		{input: "368934881474191034", want: 368934881474191034},
		{input: "99999999999999999999999", want: math.MaxInt},
		{input: "-99999999999999999999999", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePage(tt.input))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPopularity, ParseSortKey("popularity"))
	assert.Equal(t, SortRating, ParseSortKey("RATING"))
	assert.Equal(t, SortTitle, ParseSortKey(" title "))
	assert.Equal(t, SortNatural, ParseSortKey(""))
	assert.Equal(t, SortNatural, ParseSortKey("recent"), "recent is internal only")
	assert.Equal(t, SortNatural, ParseSortKey("price"))
}

func TestParse(t *testing.T) {
	spec := Parse(Params{
		Query:  "  dune ",
		Genre:  "SciFi",
		Rating: "abc",
		Sort:   "title",
		Page:   "0",
	})

	assert.Equal(t, "dune", spec.Text)
	assert.Equal(t, "SciFi", spec.Category)
	assert.Nil(t, spec.MinRating)
	assert.Equal(t, SortTitle, spec.Sort)
	assert.Equal(t, 1, spec.Page)
	assert.True(t, spec.HasCriteria())
}

func TestSpec_HasCriteria(t *testing.T) {
	assert.False(t, Spec{}.HasCriteria())
	assert.False(t, Spec{Sort: SortRating, Tag: "classic", Page: 3}.HasCriteria())
	assert.True(t, Spec{Text: "a"}.HasCriteria())
	assert.True(t, Spec{Category: "Fantasy"}.HasCriteria())
	assert.True(t, Spec{MinRating: ptr(0)}.HasCriteria())
}

func TestParams_IsBlank(t *testing.T) {
	assert.True(t, Params{}.IsBlank())
	assert.True(t, Params{Page: "2", Tag: "x"}.IsBlank())
	assert.False(t, Params{Sort: "rating"}.IsBlank())
	assert.False(t, Params{Rating: "4"}.IsBlank())
}

func ptr(v float64) *float64 {
	return &v
}
