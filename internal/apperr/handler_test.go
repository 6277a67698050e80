package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantRetry  string
	}{
		{name: "validation", err: apperr.NewValidation("bad"), wantStatus: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("get: %w", apperr.NewNotFound("book", "x")), wantStatus: http.StatusNotFound},
		{name: "store unavailable", err: apperr.NewStoreUnavailable("find", errors.New("timeout")), wantStatus: http.StatusServiceUnavailable, wantRetry: apperr.RetryAfterSeconds},
		{name: "echo http error", err: echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	e := echo.New()
	handler := apperr.GlobalErrorHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRetry, rec.Header().Get("Retry-After"))
		})
	}
}
