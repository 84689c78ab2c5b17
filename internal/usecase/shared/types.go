package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a persisted domain event awaiting delivery.
type OutboxEvent struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	Type       string
	Status     string
	Payload    []byte
	OccurredAt time.Time
	Attempts   int
}

// OutboxStore is the relay's view of persisted events.
type OutboxStore interface {
	// FetchPending returns unpublished events, oldest first.
	FetchPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}
