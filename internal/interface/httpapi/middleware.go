package httpapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"rcverify-service/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// AdminKey returns middleware that gates write endpoints on the
// X-ADMIN-KEY header. Rejection happens before the lifecycle service is
// invoked, so an unauthorized write has no side effects at all.
func AdminKey(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("X-ADMIN-KEY")
			if secret == "" || subtle.ConstantTimeCompare([]byte(header), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":     "unauthorized",
					"timestamp": time.Now(),
					"status":    http.StatusUnauthorized,
				})
			}
			return next(c)
		}
	}
}

// Instrument records request durations per route and method.
func Instrument(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			m.HTTPDuration.WithLabelValues(c.Path(), c.Request().Method).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
