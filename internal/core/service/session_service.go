package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

var ErrInvalidConsoleToken = errors.New("invalid console token")

// SessionService implements the console session lifecycle. Credentials are
// verified by the backend; the console only keeps the resulting identity and
// bearer token, keyed by a locally minted session ID.
type SessionService struct {
	auth   ports.AuthClient
	stores ports.SessionStores
	secret string
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSessionService(auth ports.AuthClient, stores ports.SessionStores, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{auth: auth, stores: stores, secret: secret, ttl: ttl, log: log}
}

// Login performs a single unauthenticated attempt against the backend.
// Backend failures propagate unchanged; there is no retry. On success the
// full response becomes the new persisted session.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	session, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if !session.Valid() {
		// The backend answered 2xx but without a token; nothing usable to persist.
		return "", nil, domain.ErrSessionIncomplete
	}

	sid := uuid.NewString()
	if err := s.stores.Bind(sid).Save(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(sid)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("email", session.Email).Str("role", session.Role).Msg("console session opened")
	return token, session, nil
}

// Logout clears the persisted session unconditionally.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	if err := s.stores.Bind(sid).Clear(ctx); err != nil {
		return err
	}
	s.log.Info().Str("sid", sid).Msg("console session closed")
	return nil
}

// Current returns the session bound to sid, or (nil, nil) when absent.
func (s *SessionService) Current(ctx context.Context, sid string) (*domain.Session, error) {
	return s.stores.Bind(sid).Current(ctx)
}

func (s *SessionService) signToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Verify validates the console token and returns the session ID it names.
func (s *SessionService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidConsoleToken
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrInvalidConsoleToken
	}
	return sid, nil
}
