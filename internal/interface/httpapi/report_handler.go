package httpapi

import (
	"net/http"
	"time"

	"rcverify-service/internal/domain/repository"
	"rcverify-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves the read-only inspection reports built directly on
// the repository query capabilities.
type ReportHandler struct {
	rcRepo    repository.RcRepository
	stateRepo repository.StateRepository
	logger    logger.Logger
}

// NewReportHandler creates a new report handler. stateRepo may be nil when
// PostgreSQL reference data is not configured.
func NewReportHandler(rcRepo repository.RcRepository, stateRepo repository.StateRepository, logger logger.Logger) *ReportHandler {
	return &ReportHandler{
		rcRepo:    rcRepo,
		stateRepo: stateRepo,
		logger:    logger,
	}
}

// ExpiredInsurance lists records whose insurance lapsed before now.
func (h *ReportHandler) ExpiredInsurance(c echo.Context) error {
	records, err := h.rcRepo.FindWithExpiredInsurance(c.Request().Context(), time.Now())
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": records, "count": len(records)})
}

// ExpiredPuc lists records whose PUC certificate lapsed before now.
func (h *ReportHandler) ExpiredPuc(c echo.Context) error {
	records, err := h.rcRepo.FindWithExpiredPuc(c.Request().Context(), time.Now())
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": records, "count": len(records)})
}

// OwnerSearch matches owner names case-insensitively.
func (h *ReportHandler) OwnerSearch(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	records, err := h.rcRepo.SearchByOwnerName(c.Request().Context(), name)
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": records, "count": len(records)})
}

// RcNumberSearch does a paged case-insensitive pattern search.
func (h *ReportHandler) RcNumberSearch(c echo.Context) error {
	pattern := c.QueryParam("q")
	if pattern == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	page := parseIntParam(c.QueryParam("page"), 0)
	size := parseIntParam(c.QueryParam("size"), 10)
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}

	records, total, err := h.rcRepo.SearchByRcNumberPattern(c.Request().Context(), pattern, page*size, size)
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": records,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// CreatedBetween lists records created inside a date range.
func (h *ReportHandler) CreatedBetween(c echo.Context) error {
	from, err := time.Parse(time.RFC3339, c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be RFC3339"})
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be RFC3339"})
	}
	records, err := h.rcRepo.FindByCreatedBetween(c.Request().Context(), from, to)
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": records, "count": len(records)})
}

// States lists the registration-state reference rows.
func (h *ReportHandler) States(c echo.Context) error {
	if h.stateRepo == nil {
		return c.JSON(http.StatusOK, echo.Map{"items": []string{}})
	}
	states, err := h.stateRepo.ListAll(c.Request().Context())
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": states})
}

func (h *ReportHandler) internal(c echo.Context, err error) error {
	h.logger.Error("Report query failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
