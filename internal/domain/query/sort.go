package query

import "strings"

// SortKey selects the ordering of a result set. Every ordering breaks ties by book ID ascending.
type SortKey string

const (
	// SortNatural keeps the store's creation order (oldest first).
	SortNatural SortKey = ""
	// SortPopularity orders by ratings count, highest first.
	SortPopularity SortKey = "popularity"
	// SortRating orders by average rating, highest first. Unrated books go last.
	SortRating SortKey = "rating"
	// SortTitle orders by title ascending using byte-wise ("C") collation.
	SortTitle SortKey = "title"
	// SortRecent orders by creation time, newest first. Internal: not accepted from requests.
	SortRecent SortKey = "recent"
)

// ParseSortKey maps a request value to a SortKey. Unknown values fall back to SortNatural.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortPopularity:
		return SortPopularity
	case SortRating:
		return SortRating
	case SortTitle:
		return SortTitle
	default:
		return SortNatural
	}
}
