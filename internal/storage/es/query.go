package es

import (
	"strings"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// wildcardPattern builds a case-insensitive-ready substring pattern with every wildcard
// metacharacter in text taken literally.
func wildcardPattern(text string) string {
	return "*" + wildcardEscaper.Replace(text) + "*"
}

// buildQuery composes the filter in the order text, category, min rating, tag, candidate set,
// exclusion. Every criterion is a non-scoring filter clause.
func buildQuery(f catalog.Filter) *types.Query {
	var filters []types.Query

	if f.Text != "" {
		pattern := wildcardPattern(f.Text)
		caseInsensitive := true
		should := make([]types.Query, 0, len(textFields))
		for _, field := range textFields {
			should = append(should, types.Query{
				Wildcard: map[string]types.WildcardQuery{
					field + "." + literalSubfield: {
						Value:           &pattern,
						CaseInsensitive: &caseInsensitive,
					},
				},
			})
		}
		filters = append(filters, types.Query{
			Bool: &types.BoolQuery{
				Should:             should,
				MinimumShouldMatch: 1,
			},
		})
	}

	if f.Category != "" {
		filters = append(filters, termQuery(fieldCategories, f.Category))
	}

	if f.MinRating != nil {
		gte := types.Float64(*f.MinRating)
		filters = append(filters, types.Query{
			Range: map[string]types.RangeQuery{
				fieldAverageRating: types.NumberRangeQuery{Gte: &gte},
			},
		})
	}

	if f.Tag != "" {
		filters = append(filters, termQuery(fieldTags, f.Tag))
	}

	if len(f.AnyCategory) > 0 {
		values := make([]types.FieldValue, 0, len(f.AnyCategory))
		for _, c := range f.AnyCategory {
			values = append(values, c)
		}
		filters = append(filters, types.Query{
			Terms: &types.TermsQuery{
				TermsQuery: map[string]types.TermsQueryField{
					fieldCategories: values,
				},
			},
		})
	}

	var mustNot []types.Query
	if f.ExcludeID != uuid.Nil {
		mustNot = append(mustNot, termQuery(fieldID, f.ExcludeID.String()))
	}

	if len(filters) == 0 && len(mustNot) == 0 {
		return &types.Query{MatchAll: &types.MatchAllQuery{}}
	}

	return &types.Query{
		Bool: &types.BoolQuery{
			Filter:  filters,
			MustNot: mustNot,
		},
	}
}

func termQuery(field, value string) types.Query {
	return types.Query{
		Term: map[string]types.TermQuery{
			field: {Value: value},
		},
	}
}

// sortOptions maps a sort key to the index sort. Keyword sorting is byte-wise and ids are
// canonical lowercase strings, so the id tie-break matches every other backend.
func sortOptions(key query.SortKey) []types.SortCombinations {
	asc, desc := sortorder.Asc, sortorder.Desc

	byField := func(field string, order *sortorder.SortOrder, missingLast bool) types.SortCombinations {
		fs := types.FieldSort{Order: order}
		if missingLast {
			fs.Missing = "_last"
		}
		return &types.SortOptions{SortOptions: map[string]types.FieldSort{field: fs}}
	}
	tieBreak := byField(fieldID, &asc, false)

	switch key {
	case query.SortPopularity:
		return []types.SortCombinations{byField(fieldRatingsCount, &desc, false), tieBreak}
	case query.SortRating:
		return []types.SortCombinations{byField(fieldAverageRating, &desc, true), tieBreak}
	case query.SortTitle:
		return []types.SortCombinations{byField(fieldTitle+"."+keywordSubfield, &asc, false), tieBreak}
	case query.SortRecent:
		return []types.SortCombinations{byField(fieldCreatedAt, &desc, false), tieBreak}
	default:
		return []types.SortCombinations{byField(fieldCreatedAt, &asc, false), tieBreak}
	}
}

// resultWindow fits an offset window inside maxResultWindow. Windows starting at or past it
// become a zero-size request, which still reports the total.
func resultWindow(offset, limit int) (from, size int) {
	from = max(offset, 0)
	if from >= maxResultWindow {
		return 0, 0
	}
	return from, min(limit, maxResultWindow-from)
}
