package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Facets lists the distinct categories and tags present in the catalog.
type Facets struct {
	store Store
}

func NewFacets(store Store) *Facets {
	return &Facets{store: store}
}

func (f *Facets) Categories(ctx context.Context) ([]string, error) {
	return f.list(ctx, FacetCategories)
}

func (f *Facets) Tags(ctx context.Context) ([]string, error) {
	return f.list(ctx, FacetTags)
}

func (f *Facets) list(ctx context.Context, facet Facet) ([]string, error) {
	values, err := f.store.Distinct(ctx, facet)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", facet, err)
	}
	return SortedUnique(values), nil
}

// SortedUnique returns the non-blank values sorted ascending without duplicates.
func SortedUnique(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
