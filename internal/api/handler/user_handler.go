package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// UserHandler proxies the member management screen.
type UserHandler struct {
	users ports.UserClient
	audit ports.AuditRecorder
}

func NewUserHandler(users ports.UserClient, audit ports.AuditRecorder) *UserHandler {
	return &UserHandler{users: users, audit: audit}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type updateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=ADMIN USER"`
}

// List handles GET /admin/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /admin/users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.users.Create(c.Request().Context(), domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	h.record(c, domain.AuditCreate, created.ID, created.Email)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.users.Update(c.Request().Context(), id, domain.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}

	h.record(c, domain.AuditUpdate, id, req.Email)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.record(c, domain.AuditDelete, id, "")
	return c.NoContent(http.StatusNoContent)
}

// MessPlan handles GET /admin/users/:id/mess-plan.
func (h *UserHandler) MessPlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	plan, err := h.users.MessPlan(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *UserHandler) record(c echo.Context, action domain.AuditAction, id int64, detail string) {
	if session, err := ctxSession(c); err == nil {
		h.audit.RecordAction(session.Email, action, "user", id, detail, time.Now().UTC())
	}
}

// pathID parses the numeric :id path parameter shared by all CRUD handlers.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
