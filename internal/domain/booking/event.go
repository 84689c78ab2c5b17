package booking

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventQuoteAccepted EventType = "booking.quote_accepted"
	EventFullyPaid     EventType = "booking.fully_paid"
	EventCompleted     EventType = "booking.completed"
)

// eventFor maps a newly reached status to the event it announces.
var eventFor = map[Status]EventType{
	StatusQuoteAccepted: EventQuoteAccepted,
	StatusFullyPaid:     EventFullyPaid,
	StatusCompleted:     EventCompleted,
}

type Event struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	Type       EventType
	Status     Status
	OccurredAt time.Time
	Payload    EventPayload
}

type EventPayload struct {
	BookingID         uuid.UUID `json:"booking_id"`
	CoupleID          uuid.UUID `json:"couple_id"`
	VendorID          uuid.UUID `json:"vendor_id"`
	ServiceType       string    `json:"service_type"`
	Status            Status    `json:"status"`
	QuotedAmountMinor *int64    `json:"quoted_amount_minor,omitempty"`
	TotalPaidMinor    int64     `json:"total_paid_minor"`
	EventDate         string    `json:"event_date"`
}

func (p EventPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func newEvent(b *Booking, typ EventType, now time.Time) Event {
	p := EventPayload{
		BookingID:      b.id,
		CoupleID:       b.coupleID,
		VendorID:       b.vendorID,
		ServiceType:    b.serviceType,
		Status:         b.status,
		TotalPaidMinor: b.totalPaid.Minor(),
		EventDate:      b.eventDate.Format(time.DateOnly),
	}
	if b.quotedAmount != nil {
		q := b.quotedAmount.Minor()
		p.QuotedAmountMinor = &q
	}
	return Event{
		ID:         uuid.New(),
		BookingID:  b.id,
		Type:       typ,
		Status:     b.status,
		OccurredAt: now,
		Payload:    p,
	}
}
