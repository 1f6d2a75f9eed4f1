// Package upstream holds the typed clients for the Mess Management backend,
// one per console screen. Every call goes through the gateway; the clients
// only shape requests and responses.
package upstream

import (
	"context"
	"net/http"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// Auth performs the backend login call.
type Auth struct {
	api *gateway.Client
}

func NewAuth(api *gateway.Client) *Auth {
	return &Auth{api: api}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for the backend identity and bearer token.
// The call is intentionally unauthenticated; a failed attempt never disturbs
// an existing session.
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var session domain.Session
	err := a.api.Do(ctx, gateway.Request{
		Method:          http.MethodPost,
		Path:            "/api/auth/login",
		Body:            loginRequest{Email: email, Password: password},
		Out:             &session,
		Unauthenticated: true,
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}
