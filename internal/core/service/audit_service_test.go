package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/messmgmt/mess-console/internal/core/domain"
)

type stubAuditRepo struct {
	entries   []domain.AuditEntry
	lastLimit int64
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int64) ([]domain.AuditEntry, error) {
	r.lastLimit = limit
	return r.entries, nil
}

func TestAuditService_RecordStampsMissingTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuditEntry{
		Actor: "admin@mess.local", Action: domain.AuditVerify, Entity: "payment", EntityID: 12,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].Timestamp.IsZero() {
		t.Fatal("expected timestamp to be stamped")
	}
	if repo.entries[0].Action != domain.AuditVerify {
		t.Fatalf("action = %q", repo.entries[0].Action)
	}
}

func TestAuditService_RecentAppliesDefaultLimit(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if _, err := svc.Recent(context.Background(), 0); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if repo.lastLimit != defaultAuditLimit {
		t.Fatalf("limit = %d, want %d", repo.lastLimit, defaultAuditLimit)
	}

	if _, err := svc.Recent(context.Background(), 5); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if repo.lastLimit != 5 {
		t.Fatalf("limit = %d, want 5", repo.lastLimit)
	}
}
