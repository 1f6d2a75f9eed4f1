package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/api/middleware"
	"github.com/messmgmt/mess-console/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware.
// Handlers behind RequireRole can rely on it being present; the fast-fail
// here covers misrouted registrations.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return session, nil
}

// ctxSID returns the console session ID, or "" when unauthenticated.
func ctxSID(c echo.Context) string {
	sid, _ := c.Get(middleware.SIDKey).(string)
	return sid
}
