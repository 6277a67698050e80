package pg

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
)

// wrapErr tags connectivity failures as apperr.StoreUnavailableError.
func wrapErr(op string, err error) error {
	if isUnavailable(err) {
		return apperr.NewStoreUnavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08: connection exception, 53: insufficient resources, 57P0x: server shutting down
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "53") ||
			strings.HasPrefix(pgErr.Code, "57P0")
	}

	return false
}
