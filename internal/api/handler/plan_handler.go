package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// PlanHandler proxies the subscription plan screen.
type PlanHandler struct {
	plans ports.PlanClient
	audit ports.AuditRecorder
}

func NewPlanHandler(plans ports.PlanClient, audit ports.AuditRecorder) *PlanHandler {
	return &PlanHandler{plans: plans, audit: audit}
}

type planRequest struct {
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	TotalDays int     `json:"totalDays" validate:"required,gt=0"`
}

func (r planRequest) toDomain() domain.MessPlan {
	return domain.MessPlan{Name: r.Name, Price: r.Price, TotalDays: r.TotalDays}
}

// List handles GET /admin/mess-plans.
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.plans.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// Create handles POST /admin/mess-plans.
func (h *PlanHandler) Create(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.plans.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}

	h.record(c, domain.AuditCreate, created.ID, created.Name)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/mess-plans/:id.
func (h *PlanHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.plans.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}

	h.record(c, domain.AuditUpdate, id, req.Name)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/mess-plans/:id.
func (h *PlanHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.plans.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.record(c, domain.AuditDelete, id, "")
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanHandler) record(c echo.Context, action domain.AuditAction, id int64, detail string) {
	if session, err := ctxSession(c); err == nil {
		h.audit.RecordAction(session.Email, action, "mess_plan", id, detail, time.Now().UTC())
	}
}
