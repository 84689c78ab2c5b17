package commands

import (
	"context"
	"log/slog"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/pkg/errs"
	"wedding-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*booking.Booking, error)
	AmendEventDate(ctx context.Context, in AmendEventDateInput) (*booking.Booking, error)
	RequestTransition(ctx context.Context, in TransitionInput) (*booking.Booking, error)
	SetQuote(ctx context.Context, in SetQuoteInput) (*booking.Booking, error)
	RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentOutcome, error)
	MarkVendorComplete(ctx context.Context, bookingID uuid.UUID, actor booking.Actor) (*booking.Booking, error)
	MarkCoupleComplete(ctx context.Context, bookingID uuid.UUID, actor booking.Actor) (*booking.Booking, error)
}

// ReportInvalidator drops cached report summaries for the given actors.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, actorIDs ...uuid.UUID) error
}

type CreateBookingInput struct {
	Actor       booking.Actor
	VendorID    uuid.UUID
	ServiceType string
	EventDate   time.Time
}

type AmendEventDateInput struct {
	BookingID uuid.UUID
	Actor     booking.Actor
	EventDate time.Time
}

type bookingCommands struct {
	uow         shared.UnitOfWork
	svc         *booking.Services
	invalidator ReportInvalidator
	logger      *slog.Logger
}

func NewBookingCommands(uow shared.UnitOfWork, svc *booking.Services, invalidator ReportInvalidator, logger *slog.Logger) BookingCommands {
	return &bookingCommands{
		uow:         uow,
		svc:         svc,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (c *bookingCommands) Create(ctx context.Context, in CreateBookingInput) (*booking.Booking, error) {
	if in.Actor.Role != booking.RoleCouple {
		return nil, errs.Wrap(booking.ErrUnauthorized, "only couples create bookings")
	}

	b, err := booking.NewBooking(uuid.Nil, in.Actor.ID, in.VendorID, in.ServiceType, in.EventDate, c.svc.Clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	})
	if err != nil {
		return nil, translateRepoErr(err)
	}

	c.logger.Info("booking created",
		slog.String("booking_id", b.ID().String()),
		slog.String("couple_id", b.CoupleID().String()),
		slog.String("vendor_id", b.VendorID().String()))
	c.invalidate(ctx, b)
	return b, nil
}

func (c *bookingCommands) AmendEventDate(ctx context.Context, in AmendEventDateInput) (*booking.Booking, error) {
	return c.mutate(ctx, in.BookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) ([]booking.Event, bool, error) {
		if err := b.AmendEventDate(in.Actor, in.EventDate, c.svc.Clock.Now()); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	})
}

// mutation changes b in place; changed=false skips the save.
type mutation func(ctx context.Context, tx shared.Tx, b *booking.Booking) (events []booking.Event, changed bool, err error)

// mutate runs fn against a freshly loaded booking and saves it guarded by the state observed at load.
func (c *bookingCommands) mutate(ctx context.Context, id uuid.UUID, fn mutation) (*booking.Booking, error) {
	var (
		result  *booking.Booking
		changed bool
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().Load(ctx, id)
		if err != nil {
			return translateRepoErr(err)
		}
		guard := b.Guard()

		events, ch, err := fn(ctx, tx, b)
		if err != nil {
			return err
		}
		result, changed = b, ch
		if !ch {
			return nil
		}

		if err := tx.Bookings().Save(ctx, b, guard); err != nil {
			return translateRepoErr(err)
		}
		if len(events) > 0 {
			if err := tx.Events().Append(ctx, events...); err != nil {
				return translateRepoErr(err)
			}
		}
		return nil
	})
	// Conflicts can also surface at commit.
	if err != nil {
		return nil, translateRepoErr(err)
	}

	if changed {
		c.invalidate(ctx, result)
	}
	return result, nil
}

func (c *bookingCommands) invalidate(ctx context.Context, b *booking.Booking) {
	if c.invalidator == nil {
		return
	}
	if err := c.invalidator.Invalidate(ctx, b.CoupleID(), b.VendorID()); err != nil {
		c.logger.Warn("report cache invalidation failed",
			slog.String("booking_id", b.ID().String()),
			slog.String("error", err.Error()))
	}
}
