package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"wedding-booking/internal/pkg/errs"
)

const MaxServiceTypeLength = 100

type Booking struct {
	id          uuid.UUID
	coupleID    uuid.UUID
	vendorID    uuid.UUID
	serviceType string
	status      Status
	eventDate   time.Time

	quotedAmount *Money
	totalPaid    Money

	vendorCompleted   bool
	vendorCompletedAt *time.Time
	coupleCompleted   bool
	coupleCompletedAt *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// Snapshot is the flat persisted form of a Booking.
type Snapshot struct {
	ID                uuid.UUID
	CoupleID          uuid.UUID
	VendorID          uuid.UUID
	ServiceType       string
	Status            Status
	EventDate         time.Time
	QuotedAmount      *Money
	TotalPaid         Money
	VendorCompleted   bool
	VendorCompletedAt *time.Time
	CoupleCompleted   bool
	CoupleCompletedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewBooking(id, coupleID, vendorID uuid.UUID, serviceType string, eventDate, now time.Time) (*Booking, error) {
	if coupleID == uuid.Nil || vendorID == uuid.Nil || coupleID == vendorID {
		return nil, ErrInvalidParty
	}

	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "" || len(serviceType) > MaxServiceTypeLength {
		return nil, ErrInvalidServiceType
	}

	date, err := normalizeEventDate(eventDate, now)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Booking{
		id:          id,
		coupleID:    coupleID,
		vendorID:    vendorID,
		serviceType: serviceType,
		status:      StatusDraft,
		eventDate:   date,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructBooking rebuilds a booking from storage. Unknown statuses and broken ledger invariants are rejected.
func ReconstructBooking(s Snapshot) (*Booking, error) {
	if !s.Status.IsValid() {
		return nil, errs.Wrap(ErrInvalidStatus, s.Status.String())
	}
	if s.QuotedAmount == nil && !s.TotalPaid.IsZero() {
		return nil, errs.Wrap(ErrInvalidState, "payments recorded without a quote")
	}
	if s.QuotedAmount != nil && s.TotalPaid.Cmp(*s.QuotedAmount) > 0 {
		return nil, errs.Wrap(ErrOverPayment, "stored total exceeds quote")
	}
	if s.Status == StatusCompleted && (!s.VendorCompleted || !s.CoupleCompleted) {
		return nil, errs.Wrap(ErrInvalidState, "completed without both confirmations")
	}

	b := &Booking{
		id:                s.ID,
		coupleID:          s.CoupleID,
		vendorID:          s.VendorID,
		serviceType:       s.ServiceType,
		status:            s.Status,
		eventDate:         s.EventDate,
		totalPaid:         s.TotalPaid,
		vendorCompleted:   s.VendorCompleted,
		vendorCompletedAt: copyTime(s.VendorCompletedAt),
		coupleCompleted:   s.CoupleCompleted,
		coupleCompletedAt: copyTime(s.CoupleCompletedAt),
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
	if s.QuotedAmount != nil {
		q := *s.QuotedAmount
		b.quotedAmount = &q
	}
	return b, nil
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) CoupleID() uuid.UUID   { return b.coupleID }
func (b *Booking) VendorID() uuid.UUID   { return b.vendorID }
func (b *Booking) ServiceType() string   { return b.serviceType }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) EventDate() time.Time  { return b.eventDate }
func (b *Booking) TotalPaid() Money      { return b.totalPaid }
func (b *Booking) VendorCompleted() bool { return b.vendorCompleted }
func (b *Booking) CoupleCompleted() bool { return b.coupleCompleted }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
func (b *Booking) HasQuote() bool        { return b.quotedAmount != nil }

func (b *Booking) VendorCompletedAt() *time.Time {
	return copyTime(b.vendorCompletedAt)
}

func (b *Booking) CoupleCompletedAt() *time.Time {
	return copyTime(b.coupleCompletedAt)
}

func (b *Booking) QuotedAmount() *Money {
	if b.quotedAmount == nil {
		return nil
	}
	q := *b.quotedAmount
	return &q
}

// TotalAmount is the quoted amount, or zero before quoting.
func (b *Booking) TotalAmount() Money {
	if b.quotedAmount == nil {
		return Money{}
	}
	return *b.quotedAmount
}

func (b *Booking) RemainingBalance() Money {
	return b.TotalAmount().Sub(b.totalPaid)
}

// IsParty reports whether the actor is this booking's couple or vendor.
func (b *Booking) IsParty(actor Actor) bool {
	switch actor.Role {
	case RoleCouple:
		return actor.ID == b.coupleID
	case RoleVendor:
		return actor.ID == b.vendorID
	default:
		return false
	}
}

// AmendEventDate moves the event while the booking is still being quoted.
func (b *Booking) AmendEventDate(actor Actor, date, now time.Time) error {
	if !b.IsParty(actor) {
		return ErrUnauthorized
	}
	if !b.status.BeforeConfirmation() {
		return errs.Wrap(ErrInvalidState, "event date is fixed once confirmed")
	}
	d, err := normalizeEventDate(date, now)
	if err != nil {
		return err
	}
	b.eventDate = d
	b.updatedAt = now
	return nil
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                b.id,
		CoupleID:          b.coupleID,
		VendorID:          b.vendorID,
		ServiceType:       b.serviceType,
		Status:            b.status,
		EventDate:         b.eventDate,
		QuotedAmount:      b.QuotedAmount(),
		TotalPaid:         b.totalPaid,
		VendorCompleted:   b.vendorCompleted,
		VendorCompletedAt: b.VendorCompletedAt(),
		CoupleCompleted:   b.coupleCompleted,
		CoupleCompletedAt: b.CoupleCompletedAt(),
		CreatedAt:         b.createdAt,
		UpdatedAt:         b.updatedAt,
	}
}

// Guard is the version token a save must match: the status and total observed at load.
type Guard struct {
	Status    Status
	TotalPaid Money
}

func (b *Booking) Guard() Guard {
	return Guard{Status: b.status, TotalPaid: b.totalPaid}
}

func normalizeEventDate(date, now time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, errs.Wrap(ErrInvalidEventDate, "event date is required")
	}
	d := truncateToDate(date)
	if d.Before(truncateToDate(now)) {
		return time.Time{}, errs.Wrap(ErrInvalidEventDate, "event date is in the past")
	}
	return d, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
