package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedHealth bool

func (f fixedHealth) Healthy(ctx context.Context) bool { return bool(f) }

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		port        string
		cors        string
		wantErr     bool
		wantPort    string
		wantOrigins []string
	}{
		{name: "defaults", wantPort: "8080", wantOrigins: []string{"*"}},
		{name: "custom", port: "9000", cors: " http://a.test , ,http://b.test", wantPort: "9000", wantOrigins: []string{"http://a.test", "http://b.test"}},
		{name: "not a number", port: "abc", wantErr: true},
		{name: "out of range", port: "70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			t.Setenv("CORS_ORIGINS", tt.cors)
			t.Setenv("USE_HTTP2", "")

			cfg, err := LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Port)
			assert.Equal(t, tt.wantOrigins, cfg.CorsOrigins)
		})
	}
}

func TestServer_HealthAndMetrics(t *testing.T) {
	for _, healthy := range []bool{true, false} {
		s := New(&Config{Port: "0", CorsOrigins: []string{"*"}}, fixedHealth(healthy)).
			SetupMiddlewares().
			SetupErrorHandler().
			SetupHealthChecks("/health").
			SetupMetrics("/metrics")

		rec := httptest.NewRecorder()
		s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if healthy {
			assert.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		}

		rec = httptest.NewRecorder()
		s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "catalog_api_requests_total")
	}
}

func TestServer_ErrorHandlerMapsNotFound(t *testing.T) {
	s := New(&Config{Port: "0", CorsOrigins: []string{"*"}}, fixedHealth(true)).
		SetupMiddlewares().
		SetupErrorHandler()
	s.Echo.GET("/x", func(c echo.Context) error { return apperr.NewNotFound("book", "x") })

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ContextLivesUntilStop(t *testing.T) {
	s := New(&Config{Port: "0"}, fixedHealth(true))

	require.NoError(t, s.Context().Err())
	s.stop()
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)
}
