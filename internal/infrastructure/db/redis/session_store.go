package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// Sessions provides durable session storage backed by Redis.
// Key format: session:<sid>, value: the serialized identity record.
type Sessions struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessions creates a Sessions store wrapping the given Redis client.
func NewSessions(client *redis.Client, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Sessions{client: client, ttl: ttl}
}

// Bind returns the store for one console session.
func (s *Sessions) Bind(sid string) ports.SessionStore {
	return &sessionStore{client: s.client, key: "session:" + sid, ttl: s.ttl}
}

type sessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (s *sessionStore) Current(ctx context.Context) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// Malformed persisted state means logged out, not a failure.
		return nil, nil
	}
	if !session.Valid() {
		return nil, nil
	}
	return &session, nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	if !session.Valid() {
		return domain.ErrSessionIncomplete
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session del: %w", err)
	}
	return nil
}
