package handlers

import (
	"net/http"

	"subtrack/internal/analytics"

	"github.com/labstack/echo/v4"
)

type DashboardHandlers struct {
	analyticsService analytics.AnalyticsService
}

func NewDashboardHandlers(analyticsService analytics.AnalyticsService) *DashboardHandlers {
	return &DashboardHandlers{analyticsService: analyticsService}
}

// GetMetrics computes the dashboard snapshot. Metrics are always computed
// fresh; there is no cache to go stale between a write and the next read.
//
// @Summary Dashboard metrics
// @Tags dashboard
// @Produce json
// @Success 200 {object} analytics.DashboardMetrics
// @Router /dashboard/metrics [get]
func (h *DashboardHandlers) GetMetrics(c echo.Context) error {
	metrics, err := h.analyticsService.GetDashboardMetrics(c.Request().Context())
	if err != nil {
		return respondError(c, err, "metrics")
	}
	return c.JSON(http.StatusOK, metrics)
}
