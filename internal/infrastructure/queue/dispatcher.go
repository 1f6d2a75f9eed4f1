package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/messmgmt/mess-console/internal/api/metrics"
	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher writes audit entries asynchronously through a fixed set of
// workers, sharded by actor so one admin's actions land in order. A full
// shard drops the entry rather than stalling the request path.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	service ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// RecordAction enqueues one audit entry; it never blocks the caller.
func (d *Dispatcher) RecordAction(actor string, action domain.AuditAction, entity string, entityID int64, detail string, at time.Time) {
	entry := domain.AuditEntry{
		Actor:     actor,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		Timestamp: at,
	}
	select {
	case d.workers[d.shardIndex(actor)] <- entry:
		metrics.AuditEntriesTotal.WithLabelValues(string(action)).Inc()
	default:
		d.log.Warn().Str("actor", actor).Str("entity", entity).Msg("audit shard full, entry dropped")
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Record(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("actor", entry.Actor).
					Str("entity", entry.Entity).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
