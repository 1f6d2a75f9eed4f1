// Package storage provides the filesystem-backed session store used by
// single-admin deployments, where running Redis would be overkill. Each
// console session owns one JSON file holding the serialized identity.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// FileSessions binds session IDs to files under a private directory.
type FileSessions struct {
	dir string
	log zerolog.Logger
}

func NewFileSessions(dir string, log zerolog.Logger) (*FileSessions, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}
	return &FileSessions{dir: dir, log: log}, nil
}

// Bind returns the store for one console session.
func (f *FileSessions) Bind(sid string) ports.SessionStore {
	return &fileStore{
		path: filepath.Join(f.dir, sanitizeSID(sid)+".json"),
		log:  f.log,
	}
}

// sanitizeSID strips anything that could escape the session directory.
// Session IDs are UUIDs, so this normally changes nothing.
func sanitizeSID(sid string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, sid)
}

type fileStore struct {
	path string
	log  zerolog.Logger
}

func (s *fileStore) Current(_ context.Context) (*domain.Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// Malformed persisted state reads as logged out, never as a failure.
		s.log.Warn().Str("path", s.path).Err(err).Msg("discarding malformed session file")
		return nil, nil
	}
	if !session.Valid() {
		return nil, nil
	}
	return &session, nil
}

func (s *fileStore) Save(_ context.Context, session *domain.Session) error {
	if !session.Valid() {
		return domain.ErrSessionIncomplete
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
