package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/api/metrics"
	"github.com/messmgmt/mess-console/internal/api/middleware"
	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// AuthHandler owns the console session endpoints.
type AuthHandler struct {
	sessions ports.ConsoleSessionService
	ttl      time.Duration
	secure   bool
}

func NewAuthHandler(sessions ports.ConsoleSessionService, ttl time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, ttl: ttl, secure: secureCookies}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse is the identity view returned to the browser. The bearer
// token never leaves the console.
type sessionResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{ID: s.ID, Name: s.Name, Email: s.Email, Role: s.Role}
}

// Login handles POST /auth/login: a single attempt against the backend, a
// new console session on success.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, session, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.sessionCookie(token, h.ttl))
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout handles POST /auth/logout. Logout is always locally effective: the
// cookie is expired and the stored session cleared without any backend call.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := ctxSID(c); sid != "" {
		if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.NoContent(http.StatusNoContent)
}

// Session handles GET /auth/session: the current identity, or 401.
func (h *AuthHandler) Session(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
