package response

import (
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                uuid.UUID  `json:"id"`
	CoupleID          uuid.UUID  `json:"couple_id"`
	VendorID          uuid.UUID  `json:"vendor_id"`
	ServiceType       string     `json:"service_type"`
	Status            string     `json:"status"`
	EventDate         string     `json:"event_date" copier:"-"`
	QuotedMinor       *int64     `json:"quoted_minor,omitempty"`
	QuotedAmount      *string    `json:"quoted_amount,omitempty" copier:"-"`
	TotalPaidMinor    int64      `json:"total_paid_minor"`
	TotalPaid         string     `json:"total_paid" copier:"-"`
	RemainingMinor    int64      `json:"remaining_minor"`
	Remaining         string     `json:"remaining" copier:"-"`
	VendorCompleted   bool       `json:"vendor_completed"`
	VendorCompletedAt *time.Time `json:"vendor_completed_at,omitempty"`
	CoupleCompleted   bool       `json:"couple_completed"`
	CoupleCompletedAt *time.Time `json:"couple_completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// FromBookingView copies the matching fields and renders the amounts in major units.
func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{}
	_ = copier.Copy(res, v)

	res.EventDate = v.EventDate.Format(time.DateOnly)
	res.RemainingMinor = v.RemainingMinor()
	if v.QuotedMinor != nil {
		q := booking.NewMoney(*v.QuotedMinor).String()
		res.QuotedAmount = &q
	}
	res.TotalPaid = booking.NewMoney(v.TotalPaidMinor).String()
	res.Remaining = booking.NewMoney(res.RemainingMinor).String()
	return res
}

func FromBookingViews(items []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(items))
	for i, it := range items {
		res[i] = FromBookingView(it)
	}
	return res
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

type ReceiptResponse struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	PaymentID   uuid.UUID `json:"payment_id"`
	Number      string    `json:"number"`
	AmountMinor int64     `json:"amount_minor"`
	Amount      string    `json:"amount" copier:"-"`
	PaymentType string    `json:"payment_type"`
	IssuedAt    time.Time `json:"issued_at"`
}

func FromReceiptView(v *queries.ReceiptView) *ReceiptResponse {
	res := &ReceiptResponse{}
	_ = copier.Copy(res, v)
	res.Amount = booking.NewMoney(v.AmountMinor).String()
	return res
}

func FromReceiptViews(items []*queries.ReceiptView) []*ReceiptResponse {
	res := make([]*ReceiptResponse, len(items))
	for i, it := range items {
		res[i] = FromReceiptView(it)
	}
	return res
}

type PaymentResponse struct {
	Booking  *BookingResponse `json:"booking"`
	Receipt  *ReceiptResponse `json:"receipt"`
	Replayed bool             `json:"replayed"`
}
