package commands

import (
	"context"
	"log/slog"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

func (c *bookingCommands) MarkVendorComplete(ctx context.Context, bookingID uuid.UUID, actor booking.Actor) (*booking.Booking, error) {
	return c.markComplete(ctx, bookingID, actor, c.svc.Completion.MarkVendorComplete)
}

func (c *bookingCommands) MarkCoupleComplete(ctx context.Context, bookingID uuid.UUID, actor booking.Actor) (*booking.Booking, error) {
	return c.markComplete(ctx, bookingID, actor, c.svc.Completion.MarkCoupleComplete)
}

type completionFunc func(b *booking.Booking, actor booking.Actor) (*booking.CompletionResult, error)

// Repeat confirmations return the stored booking without writing.
func (c *bookingCommands) markComplete(ctx context.Context, bookingID uuid.UUID, actor booking.Actor, mark completionFunc) (*booking.Booking, error) {
	var changed bool
	b, err := c.mutate(ctx, bookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) ([]booking.Event, bool, error) {
		res, err := mark(b, actor)
		if err != nil {
			return nil, false, err
		}
		changed = res.Changed
		return res.Events, res.Changed, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		c.logger.Info("completion confirmed",
			slog.String("booking_id", b.ID().String()),
			slog.String("actor_role", actor.Role.String()),
			slog.String("status", b.Status().String()))
	}
	return b, nil
}
