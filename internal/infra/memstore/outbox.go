package memstore

import (
	"context"

	"wedding-booking/internal/infra"
	"wedding-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Outbox exposes committed events to the relay.
type Outbox struct {
	s *Store
}

func (s *Store) Outbox() *Outbox {
	return &Outbox{s: s}
}

func (o *Outbox) FetchPending(_ context.Context, limit int) ([]shared.OutboxEvent, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	var out []shared.OutboxEvent
	for _, rec := range o.s.outbox {
		if rec.published {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, rec.event)
	}
	return out, nil
}

func (o *Outbox) MarkPublished(_ context.Context, id uuid.UUID) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	rec := o.find(id)
	if rec == nil {
		return infra.WrapRepoErr(o.s.logger, infra.KindNotFound, "outbox event not found", nil)
	}
	rec.published = true
	return nil
}

func (o *Outbox) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	rec := o.find(id)
	if rec == nil {
		return infra.WrapRepoErr(o.s.logger, infra.KindNotFound, "outbox event not found", nil)
	}
	rec.event.Attempts++
	rec.lastError = reason
	return nil
}

// Events returns every committed event, published or not, in commit order.
func (o *Outbox) Events() []shared.OutboxEvent {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	out := make([]shared.OutboxEvent, len(o.s.outbox))
	for i, rec := range o.s.outbox {
		out[i] = rec.event
	}
	return out
}

func (o *Outbox) find(id uuid.UUID) *outboxRecord {
	for _, rec := range o.s.outbox {
		if rec.event.ID == id {
			return rec
		}
	}
	return nil
}
