package ports

import (
	"context"
	"time"

	"github.com/messmgmt/mess-console/internal/core/domain"
)

// AuditRepository persists console audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}

// AuditService is the use-case layer over audit persistence.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
	Recent(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}

// AuditRecorder is the write-side view handlers use; recording is fire-and-
// forget through the dispatcher, so there is no error to surface.
type AuditRecorder interface {
	RecordAction(actor string, action domain.AuditAction, entity string, entityID int64, detail string, at time.Time)
}
