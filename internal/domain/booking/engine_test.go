//go:build unit

package booking_test

import (
	"testing"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/pkg/clock"
	"wedding-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	target booking.Status
	actor  func(*builder.BookingBuilder) booking.Actor
	errIs  error
	event  booking.EventType
}

func TestEngineApply(t *testing.T) {
	couple := func(b *builder.BookingBuilder) booking.Actor { return b.Couple() }
	vendor := func(b *builder.BookingBuilder) booking.Actor { return b.Vendor() }
	system := func(*builder.BookingBuilder) booking.Actor { return booking.System() }
	stranger := func(*builder.BookingBuilder) booking.Actor { return booking.Couple(uuid.New()) }

	cases := []engineCase{
		{
			name:   "couple requests a quote",
			target: booking.StatusQuoteRequested,
			actor:  couple,
		},
		{
			name:   "couple accepts a quote and emits quote_accepted",
			mutate: func(b *builder.BookingBuilder) { b.WithStatus(booking.StatusQuoteSent).WithQuote(50000) },
			target: booking.StatusQuoteAccepted,
			actor:  couple,
			event:  booking.EventQuoteAccepted,
		},
		{
			name:   "vendor confirms accepted quote",
			mutate: func(b *builder.BookingBuilder) { b.WithStatus(booking.StatusQuoteAccepted).WithQuote(50000) },
			target: booking.StatusConfirmed,
			actor:  vendor,
		},
		{
			name:   "vendor cannot accept their own quote",
			mutate: func(b *builder.BookingBuilder) { b.WithStatus(booking.StatusQuoteSent).WithQuote(50000) },
			target: booking.StatusQuoteAccepted,
			actor:  vendor,
			errIs:  booking.ErrUnauthorized,
		},
		{
			name:   "another couple cannot act on the booking",
			target: booking.StatusQuoteRequested,
			actor:  stranger,
			errIs:  booking.ErrUnauthorized,
		},
		{
			name:   "edge not in graph",
			target: booking.StatusConfirmed,
			actor:  vendor,
			errIs:  booking.ErrInvalidTransition,
		},
		{
			name:   "unknown target status",
			target: booking.Status("archived"),
			actor:  couple,
			errIs:  booking.ErrInvalidStatus,
		},
		{
			name:   "terminal status has no exit",
			mutate: func(b *builder.BookingBuilder) { b.WithStatus(booking.StatusCancelledByCouple) },
			target: booking.StatusQuoteRequested,
			actor:  couple,
			errIs:  booking.ErrInvalidTransition,
		},
		{
			name: "completed needs both confirmations",
			mutate: func(b *builder.BookingBuilder) {
				b.WithStatus(booking.StatusVendorCompleted).WithQuote(50000).WithVendorCompleted()
			},
			target: booking.StatusCompleted,
			actor:  system,
			errIs:  booking.ErrInvalidState,
		},
		{
			name: "completed once both confirmed",
			mutate: func(b *builder.BookingBuilder) {
				b.WithStatus(booking.StatusVendorCompleted).WithQuote(50000).WithVendorCompleted().WithCoupleCompleted()
			},
			target: booking.StatusCompleted,
			actor:  system,
			event:  booking.EventCompleted,
		},
		{
			name:   "either party may dispute after confirmation",
			mutate: func(b *builder.BookingBuilder) { b.WithStatus(booking.StatusInProgress).WithQuote(50000) },
			target: booking.StatusDisputed,
			actor:  vendor,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bb := builder.NewBookingBuilder()
			if tc.mutate != nil {
				tc.mutate(bb)
			}
			b, err := bb.Build()
			require.NoError(t, err)

			clk := clock.NewMockClock(builder.DefaultNow.Add(time.Hour))
			engine := booking.NewEngine(clk)
			before := b.Status()

			events, err := engine.Apply(b, tc.target, tc.actor(bb))
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, before, b.Status(), "status must not change on error")
				assert.Equal(t, builder.DefaultNow, b.UpdatedAt())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.target, b.Status())
			assert.Equal(t, clk.Now(), b.UpdatedAt())
			if tc.event == "" {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, tc.event, events[0].Type)
			assert.Equal(t, b.ID(), events[0].BookingID)
			assert.Equal(t, tc.target, events[0].Payload.Status)
		})
	}
}
