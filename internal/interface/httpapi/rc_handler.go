// Package httpapi exposes the REST surface of the RC verification service.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/internal/domain/repository"
	"rcverify-service/internal/usecase"
	"rcverify-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RcHandler serves the RC lifecycle, filter, stats and audit endpoints.
type RcHandler struct {
	service  *usecase.RcService
	statsLoc *time.Location
	logger   logger.Logger
}

// NewRcHandler creates a new RC handler. statsLoc controls the timezone
// used for the monthly stats buckets; nil means the process timezone.
func NewRcHandler(service *usecase.RcService, statsLoc *time.Location, logger logger.Logger) *RcHandler {
	if statsLoc == nil {
		statsLoc = time.Local
	}
	return &RcHandler{
		service:  service,
		statsLoc: statsLoc,
		logger:   logger,
	}
}

// GetAll returns every RC record.
func (h *RcHandler) GetAll(c echo.Context) error {
	records, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// GetByID returns one record or a 404 absence signal.
func (h *RcHandler) GetByID(c echo.Context) error {
	rc, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rc)
}

// Search does an exact rcNumber lookup.
func (h *RcHandler) Search(c echo.Context) error {
	rcNumber := c.QueryParam("rcNumber")
	if rcNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rcNumber is required"})
	}
	rc, err := h.service.SearchByRcNumber(c.Request().Context(), rcNumber)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, rc)
}

// GetFiltered returns one page of the filtered record set.
func (h *RcHandler) GetFiltered(c echo.Context) error {
	criteria := usecase.FilterCriteria{
		State:      c.QueryParam("state"),
		Make:       c.QueryParam("make"),
		OwnerName:  c.QueryParam("ownerName"),
		Stolen:     parseBoolParam(c.QueryParam("stolen")),
		Suspicious: parseBoolParam(c.QueryParam("suspicious")),
	}
	page := parseIntParam(c.QueryParam("page"), 0)
	size := parseIntParam(c.QueryParam("size"), usecase.DefaultPageSize)

	result, err := h.service.GetFilteredPage(c.Request().Context(), criteria, page, size)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetStats returns the aggregate view over the full record set.
func (h *RcHandler) GetStats(c echo.Context) error {
	stats, err := h.service.GetStats(c.Request().Context(), h.statsLoc)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetHistory returns the ownership audit trail, newest first.
func (h *RcHandler) GetHistory(c echo.Context) error {
	entries, err := h.service.GetHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetFraudReport returns the flag-derived fraud report for one record.
func (h *RcHandler) GetFraudReport(c echo.Context) error {
	report, err := h.service.GetFraudReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// Create registers a new RC record. Admin gated.
func (h *RcHandler) Create(c echo.Context) error {
	var rc entity.Rc
	if err := c.Bind(&rc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.service.Create(c.Request().Context(), &rc)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Update replaces an RC record under the given id. Admin gated.
func (h *RcHandler) Update(c echo.Context) error {
	var rc entity.Rc
	if err := c.Bind(&rc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.service.Update(c.Request().Context(), c.Param("id"), &rc)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete removes an RC record. Idempotent; admin gated.
func (h *RcHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RcHandler) storeError(c echo.Context, err error) error {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error(), "field": vErr.Field})
	}
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	}
	h.logger.Error("Store operation failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func parseBoolParam(v string) *bool {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func parseIntParam(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
