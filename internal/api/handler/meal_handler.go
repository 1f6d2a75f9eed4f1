package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// MealHandler proxies the daily menu screen.
type MealHandler struct {
	meals ports.MealClient
	audit ports.AuditRecorder
}

func NewMealHandler(meals ports.MealClient, audit ports.AuditRecorder) *MealHandler {
	return &MealHandler{meals: meals, audit: audit}
}

type mealRequest struct {
	MealDate  time.Time `json:"mealDate" validate:"required"`
	MealType  string    `json:"mealType" validate:"required,oneof=BREAKFAST LUNCH DINNER"`
	MenuItems string    `json:"menuItems" validate:"required"`
}

func (r mealRequest) toDomain() domain.Meal {
	return domain.Meal{
		MealDate:  r.MealDate,
		MealType:  domain.MealType(r.MealType),
		MenuItems: r.MenuItems,
	}
}

// List handles GET /admin/meals.
func (h *MealHandler) List(c echo.Context) error {
	meals, err := h.meals.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meals)
}

// Today handles GET /admin/meals/today.
func (h *MealHandler) Today(c echo.Context) error {
	meals, err := h.meals.Today(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meals)
}

// Create handles POST /admin/meals.
func (h *MealHandler) Create(c echo.Context) error {
	var req mealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.meals.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}

	h.record(c, domain.AuditCreate, created.ID, string(created.MealType))
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/meals/:id.
func (h *MealHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req mealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.meals.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}

	h.record(c, domain.AuditUpdate, id, req.MealType)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/meals/:id.
func (h *MealHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.meals.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.record(c, domain.AuditDelete, id, "")
	return c.NoContent(http.StatusNoContent)
}

func (h *MealHandler) record(c echo.Context, action domain.AuditAction, id int64, detail string) {
	if session, err := ctxSession(c); err == nil {
		h.audit.RecordAction(session.Email, action, "meal", id, detail, time.Now().UTC())
	}
}
