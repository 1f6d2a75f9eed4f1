package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/core/ports"
)

// DashboardHandler serves the landing page counters and the audit trail.
type DashboardHandler struct {
	dashboard ports.DashboardClient
	audit     ports.AuditService
}

func NewDashboardHandler(dashboard ports.DashboardClient, audit ports.AuditService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, audit: audit}
}

// Stats handles GET /admin/dashboard/stats.
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Audit handles GET /admin/audit?limit=N, the recent admin action trail.
func (h *DashboardHandler) Audit(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	entries, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
