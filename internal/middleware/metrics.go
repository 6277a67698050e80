package middleware

import (
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/metrics"
	"github.com/labstack/echo/v4"
)

// Metrics records request count and latency per route template, so path parameters do not
// explode label cardinality.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil && !c.Response().Committed {
				// the error handler writes the status that gets recorded
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordAPIRequest(c.Request().Method, route, strconv.Itoa(c.Response().Status), time.Since(start))
			return err
		}
	}
}
