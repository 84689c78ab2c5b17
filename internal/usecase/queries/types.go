package queries

import (
	"time"

	"wedding-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID                uuid.UUID  `json:"id"`
	CoupleID          uuid.UUID  `json:"couple_id"`
	VendorID          uuid.UUID  `json:"vendor_id"`
	ServiceType       string     `json:"service_type"`
	Status            string     `json:"status"`
	EventDate         time.Time  `json:"event_date"`
	QuotedMinor       *int64     `json:"quoted_minor,omitempty"`
	TotalPaidMinor    int64      `json:"total_paid_minor"`
	VendorCompleted   bool       `json:"vendor_completed"`
	VendorCompletedAt *time.Time `json:"vendor_completed_at,omitempty"`
	CoupleCompleted   bool       `json:"couple_completed"`
	CoupleCompletedAt *time.Time `json:"couple_completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// RemainingMinor is zero until a quote exists.
func (v *BookingView) RemainingMinor() int64 {
	if v.QuotedMinor == nil {
		return 0
	}
	return *v.QuotedMinor - v.TotalPaidMinor
}

func (v *BookingView) IsParty(actor booking.Actor) bool {
	switch actor.Role {
	case booking.RoleCouple:
		return actor.ID == v.CoupleID
	case booking.RoleVendor:
		return actor.ID == v.VendorID
	default:
		return false
	}
}

// ViewOf projects a loaded aggregate, used to answer write requests with the same shape as reads.
func ViewOf(b *booking.Booking) *BookingView {
	s := b.Snapshot()
	v := &BookingView{
		ID:                s.ID,
		CoupleID:          s.CoupleID,
		VendorID:          s.VendorID,
		ServiceType:       s.ServiceType,
		Status:            s.Status.String(),
		EventDate:         s.EventDate,
		TotalPaidMinor:    s.TotalPaid.Minor(),
		VendorCompleted:   s.VendorCompleted,
		VendorCompletedAt: s.VendorCompletedAt,
		CoupleCompleted:   s.CoupleCompleted,
		CoupleCompletedAt: s.CoupleCompletedAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.QuotedAmount != nil {
		q := s.QuotedAmount.Minor()
		v.QuotedMinor = &q
	}
	return v
}

// ReceiptView represents read-optimized receipt data
type ReceiptView struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	PaymentID   uuid.UUID `json:"payment_id"`
	Number      string    `json:"number"`
	AmountMinor int64     `json:"amount_minor"`
	PaymentType string    `json:"payment_type"`
	IssuedAt    time.Time `json:"issued_at"`
}

func ReceiptViewOf(r *booking.Receipt) *ReceiptView {
	return &ReceiptView{
		ID:          r.ID(),
		BookingID:   r.BookingID(),
		PaymentID:   r.PaymentID(),
		Number:      r.Number(),
		AmountMinor: r.Amount().Minor(),
		PaymentType: r.PaymentType().String(),
		IssuedAt:    r.IssuedAt(),
	}
}

type BookingFilter struct {
	Status *booking.Status
}
