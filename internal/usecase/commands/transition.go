package commands

import (
	"context"
	"log/slog"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/pkg/errs"
	"wedding-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type TransitionInput struct {
	BookingID uuid.UUID
	Target    booking.Status
	Actor     booking.Actor
	// ExpectedStatus is the status the caller last read; a mismatch fails with ErrStaleState.
	ExpectedStatus *booking.Status
}

// RequestTransition applies a party-driven status change. Edges owned by the ledger and the
// completion tracker are not reachable here.
func (c *bookingCommands) RequestTransition(ctx context.Context, in TransitionInput) (*booking.Booking, error) {
	if !in.Actor.Role.IsParty() {
		return nil, errs.Wrap(booking.ErrUnauthorized, "transitions must be requested by the couple or the vendor")
	}

	var from booking.Status
	b, err := c.mutate(ctx, in.BookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) ([]booking.Event, bool, error) {
		if in.ExpectedStatus != nil && *in.ExpectedStatus != b.Status() {
			return nil, false, errs.Wrap(ErrStaleState, "expected "+in.ExpectedStatus.String()+", found "+b.Status().String())
		}
		from = b.Status()
		events, err := c.svc.Engine.Apply(b, in.Target, in.Actor)
		if err != nil {
			return nil, false, err
		}
		return events, true, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking transitioned",
		slog.String("booking_id", b.ID().String()),
		slog.String("from", from.String()),
		slog.String("to", b.Status().String()),
		slog.String("actor_role", in.Actor.Role.String()))
	return b, nil
}
