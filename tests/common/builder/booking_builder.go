//go:build unit || e2e

package builder

import (
	"strings"
	"time"

	"wedding-booking/internal/domain/booking"
	reqdto "wedding-booking/internal/handler/dto/request"
	"wedding-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var DefaultNow = time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID              uuid.UUID
	CoupleID        uuid.UUID
	VendorID        uuid.UUID
	ServiceType     string
	Status          booking.Status
	EventDate       time.Time
	QuotedMinor     *int64
	TotalPaidMinor  int64
	VendorCompleted bool
	CoupleCompleted bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:          uuid.New(),
		CoupleID:    uuid.New(),
		VendorID:    uuid.New(),
		ServiceType: "photography",
		Status:      booking.StatusDraft,
		EventDate:   time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		CreatedAt:   DefaultNow,
		UpdatedAt:   DefaultNow,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithQuote(minor int64) *BookingBuilder {
	b.QuotedMinor = &minor
	return b
}

func (b *BookingBuilder) WithTotalPaid(minor int64) *BookingBuilder {
	b.TotalPaidMinor = minor
	return b
}

func (b *BookingBuilder) WithVendorCompleted() *BookingBuilder {
	b.VendorCompleted = true
	return b
}

func (b *BookingBuilder) WithCoupleCompleted() *BookingBuilder {
	b.CoupleCompleted = true
	return b
}

func (b *BookingBuilder) Couple() booking.Actor { return booking.Couple(b.CoupleID) }
func (b *BookingBuilder) Vendor() booking.Actor { return booking.Vendor(b.VendorID) }

// Build methods
func (b *BookingBuilder) BuildNew() (*booking.Booking, error) {
	return booking.NewBooking(b.ID, b.CoupleID, b.VendorID, b.ServiceType, b.EventDate, b.CreatedAt)
}

func (b *BookingBuilder) BuildSnapshot() booking.Snapshot {
	s := booking.Snapshot{
		ID:              b.ID,
		CoupleID:        b.CoupleID,
		VendorID:        b.VendorID,
		ServiceType:     b.ServiceType,
		Status:          b.Status,
		EventDate:       b.EventDate,
		TotalPaid:       booking.NewMoney(b.TotalPaidMinor),
		VendorCompleted: b.VendorCompleted,
		CoupleCompleted: b.CoupleCompleted,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.QuotedMinor != nil {
		q := booking.NewMoney(*b.QuotedMinor)
		s.QuotedAmount = &q
	}
	if b.VendorCompleted {
		at := b.UpdatedAt
		s.VendorCompletedAt = &at
	}
	if b.CoupleCompleted {
		at := b.UpdatedAt
		s.CoupleCompletedAt = &at
	}
	return s
}

func (b *BookingBuilder) Build() (*booking.Booking, error) {
	return booking.ReconstructBooking(b.BuildSnapshot())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		VendorID:    b.VendorID,
		ServiceType: b.ServiceType,
		EventDate:   b.EventDate.Format(time.DateOnly),
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	v := &queries.BookingView{
		ID:              b.ID,
		CoupleID:        b.CoupleID,
		VendorID:        b.VendorID,
		ServiceType:     b.ServiceType,
		Status:          b.Status.String(),
		EventDate:       b.EventDate,
		QuotedMinor:     b.QuotedMinor,
		TotalPaidMinor:  b.TotalPaidMinor,
		VendorCompleted: b.VendorCompleted,
		CoupleCompleted: b.CoupleCompleted,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	return v
}

func (b *BookingBuilder) BuildReceipt(paymentID uuid.UUID, amountMinor int64, paymentType booking.PaymentType) (*booking.Receipt, error) {
	return booking.ReconstructReceipt(booking.ReceiptSnapshot{
		ID:          uuid.New(),
		BookingID:   b.ID,
		PaymentID:   paymentID,
		Number:      "RCPT-" + b.UpdatedAt.Format("20060102") + "-" + strings.ToUpper(strings.ReplaceAll(paymentID.String(), "-", "")),
		Amount:      booking.NewMoney(amountMinor),
		PaymentType: paymentType,
		IssuedAt:    b.UpdatedAt,
	})
}
