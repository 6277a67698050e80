package es

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// wrapErr tags transport failures and overloaded-cluster responses as
// apperr.StoreUnavailableError. Anything else is wrapped as is.
func wrapErr(op string, err error) error {
	if isUnavailable(err) {
		return apperr.NewStoreUnavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var esErr *types.ElasticsearchError
	if errors.As(err, &esErr) {
		switch esErr.Status {
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// bare socket errors and truncated responses
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == http.StatusNotFound
}
