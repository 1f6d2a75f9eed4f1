package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditService records and reads the console's admin action trail.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

func (s *AuditService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &entry); err != nil {
		return err
	}
	s.log.Debug().
		Str("actor", entry.Actor).
		Str("action", string(entry.Action)).
		Str("entity", entry.Entity).
		Int64("entity_id", entry.EntityID).
		Msg("audit entry recorded")
	return nil
}

func (s *AuditService) Recent(ctx context.Context, limit int64) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
