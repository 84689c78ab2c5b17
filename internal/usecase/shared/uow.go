package shared

import (
	"context"

	"wedding-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Receipts() ReceiptRepository
	Events() EventRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Load returns a KindNotFound repository error for unknown ids.
	Load(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// Save writes b only if the stored row still matches expected; otherwise a KindConflict error.
	Save(ctx context.Context, b *booking.Booking, expected booking.Guard) error
}

type ReceiptRepository interface {
	// Append fails with KindDuplicateKey when the payment id was already receipted.
	Append(ctx context.Context, r *booking.Receipt) error
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*booking.Receipt, error)
}

type EventRepository interface {
	Append(ctx context.Context, events ...booking.Event) error
}
