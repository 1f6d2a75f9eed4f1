package ports

import (
	"context"

	"github.com/messmgmt/mess-console/internal/core/domain"
)

// ConsoleSessionService owns the console session lifecycle: exchanging
// backend credentials for a session, minting and verifying the signed
// console token, and tearing sessions down.
type ConsoleSessionService interface {
	// Login authenticates against the backend and opens a console session.
	// It returns the signed console token that identifies the session.
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)

	// Logout clears the console session. It is locally effective even when
	// the backend is unreachable.
	Logout(ctx context.Context, sid string) error

	// Current returns the session bound to sid, or (nil, nil) when absent.
	Current(ctx context.Context, sid string) (*domain.Session, error)

	// Verify validates a console token and returns the session ID it names.
	Verify(token string) (string, error)
}
