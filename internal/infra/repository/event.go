package repository

import (
	"context"
	"log/slog"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/infra/db"
	"wedding-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const insertEvent = `INSERT INTO booking_events (id, booking_id, event_type, status, payload, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const selectPendingEvents = `SELECT id, booking_id, event_type, status, payload, occurred_at, attempts
FROM booking_events
WHERE published_at IS NULL AND attempts < $2
ORDER BY occurred_at, id
LIMIT $1`

const markEventPublished = `UPDATE booking_events SET published_at = now(), last_error = NULL WHERE id = $1`

const markEventFailed = `UPDATE booking_events SET attempts = attempts + 1, last_error = $2 WHERE id = $1`

// EventRepository writes lifecycle events to the outbox inside the booking's transaction.
type EventRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewEventRepository(dbtx db.DBTX, logger *slog.Logger) *EventRepository {
	return &EventRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *EventRepository) Append(ctx context.Context, events ...booking.Event) error {
	for _, e := range events {
		payload, err := e.Payload.Marshal()
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode event payload", err)
		}
		if _, err := r.db.Exec(ctx, insertEvent, e.ID, e.BookingID, string(e.Type), e.Status.String(), payload, e.OccurredAt); err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to append event", err)
		}
	}
	return nil
}

// OutboxStore is the relay's side of booking_events. Events that failed maxAttempts times are parked.
type OutboxStore struct {
	db          db.DBTX
	maxAttempts int
	logger      *slog.Logger
}

func NewOutboxStore(dbtx db.DBTX, maxAttempts int, logger *slog.Logger) *OutboxStore {
	return &OutboxStore{
		db:          dbtx,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (s *OutboxStore) FetchPending(ctx context.Context, limit int) ([]shared.OutboxEvent, error) {
	rows, err := s.db.Query(ctx, selectPendingEvents, limit, s.maxAttempts)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to fetch pending events", err)
	}
	defer rows.Close()

	var out []shared.OutboxEvent
	for rows.Next() {
		var e shared.OutboxEvent
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Type, &e.Status, &e.Payload, &e.OccurredAt, &e.Attempts); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan pending event", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate pending events", err)
	}
	return out, nil
}

func (s *OutboxStore) MarkPublished(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, markEventPublished, "failed to mark event published", id)
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return s.exec(ctx, markEventFailed, "failed to record event failure", id, reason)
}

func (s *OutboxStore) exec(ctx context.Context, sql, msg string, args ...any) error {
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, msg, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "outbox event not found", nil)
	}
	return nil
}
