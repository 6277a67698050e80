package pagination

import "math"

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page int `json:"page" query:"page" validate:"min=1"`
	Size int `json:"size" query:"size" validate:"min=1,max=100"`
}

// NewOffsetRequest returns a normalized request
func NewOffsetRequest(page, size int) OffsetRequest {
	r := OffsetRequest{Page: page, Size: size}
	r.Normalize()
	return r
}

// Normalize clamps size into [1, PageMaxSize] and page into [1, MaxPage(size)]
func (r *OffsetRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
	if maxPage := MaxPage(r.Size); r.Page > maxPage {
		r.Page = maxPage
	}
}

// MaxPage is the highest page whose end offset still fits in an int
func MaxPage(size int) int {
	if size <= 0 {
		return math.MaxInt
	}
	return math.MaxInt / size
}

// Offset is the number of items preceding the requested page
func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Size
}
