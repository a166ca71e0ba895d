package web

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

// Handler serves the preview API endpoints.
type Handler struct {
	outputDir string
	accounts  driven.AccountStore
}

// NewHandler creates a Handler rooted at the output directory.
func NewHandler(outputDir string, accounts driven.AccountStore) *Handler {
	return &Handler{
		outputDir: outputDir,
		accounts:  accounts,
	}
}

// GetPortfolio returns the aggregated portfolio document as-is. The on-disk
// file is the source of truth; the handler does not re-marshal it.
func (h *Handler) GetPortfolio(c echo.Context) error {
	data, err := os.ReadFile(filepath.Join(h.outputDir, "portfolio.json"))
	if errors.Is(err, os.ErrNotExist) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "portfolio data not found, run an aggregation first",
		})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "reading portfolio document")
	}
	return c.JSONBlob(http.StatusOK, data)
}

// Health is the liveness probe.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// UpdateAccountRequest is the JSON body for the account update endpoint.
type UpdateAccountRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

// UpdateAccount merges credential fields for one service into the backing
// accounts file.
func (h *Handler) UpdateAccount(c echo.Context) error {
	service := c.Param("service")

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.Update(service, req.Fields); err != nil {
		if errors.Is(err, driven.ErrReadOnly) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "updated",
		"service": service,
	})
}
