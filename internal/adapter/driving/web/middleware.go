package web

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devfoliohq/devfolio/internal/metrics"
)

// noCacheMiddleware disables client-side caching so the preview always shows
// the latest aggregation output.
func noCacheMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Response().Header().Set("Pragma", "no-cache")
		c.Response().Header().Set("Expires", "0")
		return next(c)
	}
}

// metricsMiddleware records request counts and latency per route.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == "" {
			path = c.Request().URL.Path
		}

		status := c.Response().Status
		if err != nil {
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
		}

		metrics.RequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
