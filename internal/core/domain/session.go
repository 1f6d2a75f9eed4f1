package domain

import "errors"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var ErrNoSession = errors.New("no active session")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionIncomplete = errors.New("session missing bearer token")

// Session is the client-held record of the authenticated identity and its
// bearer credential, as returned by the backend's login endpoint.
// A Session is either fully populated or absent; a record without a token
// is never persisted and never read back.
type Session struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Valid reports whether the session carries enough identity to be persisted
// and replayed against the backend.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the session may access the admin console.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
