package request

import (
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VendorID    uuid.UUID `json:"vendor_id" binding:"required"`
	ServiceType string    `json:"service_type" binding:"required,max=100"`
	EventDate   string    `json:"event_date" binding:"required,datetime=2006-01-02"`
}

type AmendEventDateRequest struct {
	EventDate string `json:"event_date" binding:"required,datetime=2006-01-02"`
}

type TransitionRequest struct {
	Status         string  `json:"status" binding:"required"`
	ExpectedStatus *string `json:"expected_status" binding:"omitempty"`
}

// Amounts are decimal strings in major units, e.g. "500.00".
type SetQuoteRequest struct {
	Amount string `json:"amount" binding:"required,money"`
}

type RecordPaymentRequest struct {
	Amount      string `json:"amount" binding:"required,money"`
	PaymentType string `json:"payment_type" binding:"required,paymenttype"`
}

func (r *CreateBookingRequest) ParsedEventDate() (time.Time, error) {
	return parseDate(r.EventDate)
}

func (r *AmendEventDateRequest) ParsedEventDate() (time.Time, error) {
	return parseDate(r.EventDate)
}

func (r *TransitionRequest) ToDomain() (target booking.Status, expected *booking.Status, err error) {
	target, err = booking.ParseStatus(r.Status)
	if err != nil {
		return "", nil, err
	}
	if r.ExpectedStatus != nil {
		s, err := booking.ParseStatus(*r.ExpectedStatus)
		if err != nil {
			return "", nil, err
		}
		expected = &s
	}
	return target, expected, nil
}

func (r *SetQuoteRequest) ToDomain() (booking.Money, error) {
	return booking.ParseMoney(r.Amount)
}

func (r *RecordPaymentRequest) ToDomain() (booking.Money, booking.PaymentType, error) {
	amount, err := booking.ParseMoney(r.Amount)
	if err != nil {
		return booking.Money{}, "", err
	}
	pt, err := booking.ParsePaymentType(r.PaymentType)
	if err != nil {
		return booking.Money{}, "", err
	}
	return amount, pt, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrap(err, "parse event date"), booking.ErrInvalidEventDate)
	}
	return t, nil
}
