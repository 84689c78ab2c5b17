package commands

import (
	"context"
	"log/slog"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/pkg/errs"
	"wedding-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SetQuoteInput struct {
	BookingID uuid.UUID
	Actor     booking.Actor
	Amount    booking.Money
}

type RecordPaymentInput struct {
	BookingID uuid.UUID
	Actor     booking.Actor
	// PaymentID identifies the payment event and is the receipt's idempotency key.
	PaymentID   uuid.UUID
	Amount      booking.Money
	PaymentType booking.PaymentType
}

type PaymentOutcome struct {
	Booking *booking.Booking
	Receipt *booking.Receipt
	// Replayed is true when the payment id had already been receipted and nothing was written.
	Replayed bool
}

func (c *bookingCommands) SetQuote(ctx context.Context, in SetQuoteInput) (*booking.Booking, error) {
	b, err := c.mutate(ctx, in.BookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) ([]booking.Event, bool, error) {
		events, err := c.svc.Ledger.SetQuote(b, in.Amount, in.Actor)
		if err != nil {
			return nil, false, err
		}
		return events, true, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("quote sent",
		slog.String("booking_id", b.ID().String()),
		slog.Int64("amount_minor", in.Amount.Minor()))
	return b, nil
}

func (c *bookingCommands) RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentOutcome, error) {
	var (
		receipt  *booking.Receipt
		replayed bool
	)

	b, err := c.mutate(ctx, in.BookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) ([]booking.Event, bool, error) {
		receipt, replayed = nil, false

		if in.Actor.Role != booking.RoleCouple || !b.IsParty(in.Actor) {
			return nil, false, errs.Wrap(booking.ErrUnauthorized, "only the booking's couple can pay")
		}

		existing, err := tx.Receipts().FindByPaymentID(ctx, in.PaymentID)
		switch {
		case err == nil:
			if existing.BookingID() != b.ID() || !existing.Matches(in.Amount, in.PaymentType) {
				return nil, false, ErrDuplicatePayment
			}
			receipt, replayed = existing, true
			return nil, false, nil
		case !infra.IsKind(err, infra.KindNotFound):
			return nil, false, translateRepoErr(err)
		}

		res, err := c.svc.Ledger.RecordPayment(b, booking.Payment{
			ID:     in.PaymentID,
			Amount: in.Amount,
			Type:   in.PaymentType,
		}, in.Actor)
		if err != nil {
			return nil, false, err
		}

		if err := tx.Receipts().Append(ctx, res.Receipt); err != nil {
			return nil, false, translateRepoErr(err)
		}
		receipt = res.Receipt
		return res.Events, true, nil
	})
	if err != nil {
		return nil, err
	}

	if replayed {
		c.logger.Info("payment replayed",
			slog.String("booking_id", b.ID().String()),
			slog.String("payment_id", in.PaymentID.String()))
	} else {
		c.logger.Info("payment recorded",
			slog.String("booking_id", b.ID().String()),
			slog.String("payment_id", in.PaymentID.String()),
			slog.String("receipt", receipt.Number()),
			slog.Int64("amount_minor", in.Amount.Minor()),
			slog.Int64("total_paid_minor", b.TotalPaid().Minor()),
			slog.String("status", b.Status().String()))
	}

	return &PaymentOutcome{Booking: b, Receipt: receipt, Replayed: replayed}, nil
}
