package pagination

// OffsetResult is a page of items plus the metadata describing it.
// Metadata is kept apart from Items so transports can expose it separately.
type OffsetResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	HasMore bool  `json:"has_more"`
}

// NewOffsetResult creates a new offset-based result
func NewOffsetResult[T any](items []T, total int64, page int, size int) *OffsetResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	hasMore := size > 0 && page > 0 && int64(page) < (total+int64(size)-1)/int64(size)

	return &OffsetResult[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasMore: hasMore,
	}
}

// Empty returns a page with no items and a zero total
func Empty[T any](page int, size int) *OffsetResult[T] {
	return NewOffsetResult[T](nil, 0, page, size)
}
