package pagination

import (
	"net/http"
	"strconv"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPerPage    = "X-Per-Page"
	HeaderPage       = "X-Page"
)

// WriteHeaders exposes page metadata as response headers
func WriteHeaders[T any](h http.Header, r *OffsetResult[T]) {
	h.Set(HeaderTotalCount, strconv.FormatInt(r.Total, 10))
	h.Set(HeaderPerPage, strconv.Itoa(r.Size))
	h.Set(HeaderPage, strconv.Itoa(r.Page))
}
