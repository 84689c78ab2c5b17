package queries

import (
	"context"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrInvalidCursor   = errs.New("invalid cursor")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// ListByParty returns bookings the actor is a party to, newest first, strictly after the keyset when given.
	ListByParty(ctx context.Context, actor booking.Actor, filter BookingFilter, after *Keyset, limit int32) ([]*BookingView, error)
	ListReceipts(ctx context.Context, bookingID uuid.UUID) ([]*ReceiptView, error)
	ReportRows(ctx context.Context, actor booking.Actor) ([]report.BookingSnapshot, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor booking.Actor, id uuid.UUID) (*BookingView, error)
	ListForActor(ctx context.Context, actor booking.Actor, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	ListReceipts(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) ([]*ReceiptView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// Bookings the actor is not a party to are reported as missing.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor booking.Actor, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !v.IsParty(actor) {
		return nil, ErrBookingNotFound
	}
	return v, nil
}

func (q *bookingQueriesImpl) ListForActor(ctx context.Context, actor booking.Actor, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	if !actor.Role.IsParty() {
		return nil, nil, errs.Wrap(booking.ErrUnauthorized, "bookings are listed per party")
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, nil, booking.ErrInvalidStatus
	}

	limit = ValidateLimit(limit)
	var after *Keyset
	if cursor != nil && cursor.After != "" {
		k, err := DecodeKeyset(cursor.After)
		if err != nil {
			return nil, nil, err
		}
		after = &k
	}

	rows, err := q.store.ListByParty(ctx, actor, filter, after, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: Keyset{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *bookingQueriesImpl) ListReceipts(ctx context.Context, actor booking.Actor, bookingID uuid.UUID) ([]*ReceiptView, error) {
	if _, err := q.GetByID(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	return q.store.ListReceipts(ctx, bookingID)
}
