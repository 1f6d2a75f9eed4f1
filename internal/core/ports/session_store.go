package ports

import (
	"context"

	"github.com/messmgmt/mess-console/internal/core/domain"
)

// SessionStore is the single source of truth for one client context's
// authenticated identity. Implementations persist the session durably so it
// survives process restarts.
//
// Writers are restricted by contract: login saves, logout clears, and the
// gateway's forced-logout path clears. Nothing else mutates the store.
type SessionStore interface {
	// Current returns the live session, or (nil, nil) when none exists.
	// Missing or malformed persisted data reads as "logged out", never an error.
	Current(ctx context.Context) (*domain.Session, error)

	// Save persists the session as the new single live session.
	// Sessions without a bearer token are rejected with ErrSessionIncomplete.
	Save(ctx context.Context, s *domain.Session) error

	// Clear removes the persisted session unconditionally. Clearing an absent
	// session is not an error.
	Clear(ctx context.Context) error
}

// SessionStores binds a console session ID to its backing store. Each browser
// session owns exactly one durable key.
type SessionStores interface {
	Bind(sid string) SessionStore
}
