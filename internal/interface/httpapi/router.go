package httpapi

import (
	"net/http"

	"rcverify-service/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the echo instance with all routes registered. Write
// endpoints sit behind the admin-key middleware; everything else is open.
func NewRouter(rc *RcHandler, reports *ReportHandler, m *metrics.Metrics, adminKey string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(Instrument(m))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/rc")
	api.GET("", rc.GetAll)
	api.GET("/search", rc.Search)
	api.GET("/filter", rc.GetFiltered)
	api.GET("/stats", rc.GetStats)
	api.GET("/states", reports.States)
	api.GET("/reports/expired-insurance", reports.ExpiredInsurance)
	api.GET("/reports/expired-puc", reports.ExpiredPuc)
	api.GET("/reports/created-between", reports.CreatedBetween)
	api.GET("/owner-search", reports.OwnerSearch)
	api.GET("/number-search", reports.RcNumberSearch)
	api.GET("/:id", rc.GetByID)
	api.GET("/:id/history", rc.GetHistory)
	api.GET("/:id/fraud-report", rc.GetFraudReport)

	admin := api.Group("", AdminKey(adminKey))
	admin.POST("", rc.Create)
	admin.PUT("/:id", rc.Update)
	admin.DELETE("/:id", rc.Delete)

	return e
}
