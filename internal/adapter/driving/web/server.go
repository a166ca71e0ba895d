// Package web serves the generated output tree for local preview, with a
// small JSON API on the side.
package web

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Preview only: every response carries permissive CORS headers and caching
// is disabled so a refresh always reflects the latest aggregation run.

// Port range walked when the default port is occupied.
const (
	firstPreferredPort = 8000
	lastPreferredPort  = 8010
)

// requestValidator adapts go-playground/validator to echo's Validator hook.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(outputDir string, accounts driven.AccountStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.Use(noCacheMiddleware)
	e.Use(metricsMiddleware)

	// --- API routes ---
	h := NewHandler(outputDir, accounts)
	e.GET("/api/portfolio", h.GetPortfolio)
	e.GET("/api/health", h.Health)
	e.POST("/api/accounts/:service", h.UpdateAccount)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Output tree ---
	e.Static("/", outputDir)

	return e
}

// Listen binds the first available port from the preferred range on host.
func Listen(host string) (net.Listener, error) {
	for port := firstPreferredPort; port <= lastPreferredPort; port++ {
		l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no available port between %d and %d", firstPreferredPort, lastPreferredPort)
}
