package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/api/middleware"
	"github.com/messmgmt/mess-console/internal/core/domain"
)

type stubSessionService struct {
	loginFn  func(ctx context.Context, email, password string) (string, *domain.Session, error)
	logoutFn func(ctx context.Context, sid string) error
}

func (s *stubSessionService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessionService) Logout(ctx context.Context, sid string) error {
	return s.logoutFn(ctx, sid)
}

func (s *stubSessionService) Current(ctx context.Context, sid string) (*domain.Session, error) {
	return nil, nil
}

func (s *stubSessionService) Verify(token string) (string, error) {
	return "", errors.New("not implemented")
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", middleware.SessionCookie)
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubSessionService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Session, error) {
			if email != "admin@mess.io" || password != "hunter22" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			session := &domain.Session{ID: 1, Name: "Admin", Email: email, Role: domain.RoleAdmin, Token: "backend-bearer"}
			return "signed-console-token", session, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	body := strings.NewReader(`{"email":"admin@mess.io","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := sessionCookieFrom(t, rec)
	if ck.Value != "signed-console-token" {
		t.Fatalf("cookie carries %q, want the console token", ck.Value)
	}
	if !ck.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "admin@mess.io" || resp["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected identity payload: %+v", resp)
	}
	// The backend bearer token stays server-side.
	if _, leaked := resp["token"]; leaked {
		t.Fatalf("bearer token leaked to the browser: %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubSessionService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Session, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.io","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("failed login must not set a session cookie")
	}
}

func TestAuthHandler_Login_RejectsInvalidPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	called := false
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Session, error) {
			called = true
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"not-an-email","password":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if called {
		t.Fatal("invalid payload must not reach the backend")
	}
}

func TestAuthHandler_Logout_ClearsSessionAndCookie(t *testing.T) {
	e := echo.New()

	var cleared string
	stub := &stubSessionService{
		logoutFn: func(ctx context.Context, sid string) error {
			cleared = sid
			return nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SIDKey, "sid-42")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if cleared != "sid-42" {
		t.Fatalf("cleared %q, want sid-42", cleared)
	}

	ck := sessionCookieFrom(t, rec)
	if ck.Value != "" || ck.MaxAge >= 0 {
		t.Fatalf("logout must expire the cookie, got value=%q maxage=%d", ck.Value, ck.MaxAge)
	}
}

func TestAuthHandler_Logout_WithoutSessionStillSucceeds(t *testing.T) {
	e := echo.New()
	stub := &stubSessionService{
		logoutFn: func(ctx context.Context, sid string) error {
			t.Fatal("no session to clear")
			return nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthHandler_Session_ReturnsIdentity(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubSessionService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, &domain.Session{ID: 7, Email: "admin@mess.io", Role: domain.RoleAdmin, Token: "bearer"})

	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "bearer") {
		t.Fatal("bearer token leaked in session payload")
	}
}

func TestAuthHandler_Session_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubSessionService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Session(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
