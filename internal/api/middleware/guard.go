package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// SessionCookie is the console's signed session cookie.
const SessionCookie = "mess_console_session"

// Echo context keys set by Session and read by handlers.
const (
	SessionKey = "session"
	SIDKey     = "sid"
)

// LoginPath is where unauthenticated browser navigation is redirected.
const LoginPath = "/login"

// Session resolves the console cookie into the live session. On success it
// stores the session and SID in the echo context and binds the session store
// into the request context so the gateway can attach the bearer credential.
// Requests without a valid session pass through with nothing set; RequireRole
// makes the allow/deny decision.
func Session(sessions ports.ConsoleSessionService, stores ports.SessionStores) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, err := sessions.Verify(cookie.Value)
			if err != nil {
				return next(c)
			}
			c.Set(SIDKey, sid)

			ctx := gateway.ContextWithStore(c.Request().Context(), stores.Bind(sid))
			c.SetRequest(c.Request().WithContext(ctx))

			// Evaluated on every request, never cached: a forced logout is
			// visible on the very next navigation.
			session, err := sessions.Current(ctx, sid)
			if err != nil {
				return err
			}
			if session != nil {
				c.Set(SessionKey, session)
			}
			return next(c)
		}
	}
}

// RequireRole gates protected screens. Each navigation lands in one of three
// terminal states: unauthenticated and wrong-role produce a redirect (or the
// matching JSON status for API callers), authorized renders the screen.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(SessionKey).(*domain.Session)
			if session == nil {
				return deny(c, http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[session.Role]; !ok {
				return deny(c, http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}

func deny(c echo.Context, status int, msg string) error {
	if wantsHTML(c.Request()) {
		return c.Redirect(http.StatusSeeOther, LoginPath)
	}
	return echo.NewHTTPError(status, msg)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
