package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"wedding-booking/internal/pkg/clock"
	"wedding-booking/internal/pkg/errs"
)

type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentBalance PaymentType = "balance"
	PaymentFull    PaymentType = "full"
)

func (p PaymentType) String() string {
	return string(p)
}

func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentDeposit, PaymentBalance, PaymentFull:
		return true
	default:
		return false
	}
}

func ParsePaymentType(s string) (PaymentType, error) {
	p := PaymentType(s)
	if !p.IsValid() {
		return "", errs.Wrap(ErrInvalidPaymentType, s)
	}
	return p, nil
}

// Receipt is immutable once issued.
type Receipt struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	paymentID   uuid.UUID
	number      string
	amount      Money
	paymentType PaymentType
	issuedAt    time.Time
}

type ReceiptSnapshot struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	PaymentID   uuid.UUID
	Number      string
	Amount      Money
	PaymentType PaymentType
	IssuedAt    time.Time
}

func ReconstructReceipt(s ReceiptSnapshot) (*Receipt, error) {
	if !s.PaymentType.IsValid() {
		return nil, errs.Wrap(ErrInvalidPaymentType, s.PaymentType.String())
	}
	if !s.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &Receipt{
		id:          s.ID,
		bookingID:   s.BookingID,
		paymentID:   s.PaymentID,
		number:      s.Number,
		amount:      s.Amount,
		paymentType: s.PaymentType,
		issuedAt:    s.IssuedAt,
	}, nil
}

func (r *Receipt) ID() uuid.UUID            { return r.id }
func (r *Receipt) BookingID() uuid.UUID     { return r.bookingID }
func (r *Receipt) PaymentID() uuid.UUID     { return r.paymentID }
func (r *Receipt) Number() string           { return r.number }
func (r *Receipt) Amount() Money            { return r.amount }
func (r *Receipt) PaymentType() PaymentType { return r.paymentType }
func (r *Receipt) IssuedAt() time.Time      { return r.issuedAt }

func (r *Receipt) Snapshot() ReceiptSnapshot {
	return ReceiptSnapshot{
		ID:          r.id,
		BookingID:   r.bookingID,
		PaymentID:   r.paymentID,
		Number:      r.number,
		Amount:      r.amount,
		PaymentType: r.paymentType,
		IssuedAt:    r.issuedAt,
	}
}

// Matches reports whether a replayed payment carries the same amount and type as the receipted one.
func (r *Receipt) Matches(amount Money, paymentType PaymentType) bool {
	return r.amount.Cmp(amount) == 0 && r.paymentType == paymentType
}

type ReceiptIssuer struct {
	clock clock.Clock
}

func NewReceiptIssuer(clk clock.Clock) *ReceiptIssuer {
	return &ReceiptIssuer{clock: clk}
}

// issue is reachable only from the ledger so that a receipt always accompanies an applied payment.
func (i *ReceiptIssuer) issue(b *Booking, paymentID uuid.UUID, amount Money, paymentType PaymentType) *Receipt {
	now := i.clock.Now()
	id := uuid.New()
	return &Receipt{
		id:          id,
		bookingID:   b.id,
		paymentID:   paymentID,
		number:      receiptNumber(now, paymentID),
		amount:      amount,
		paymentType: paymentType,
		issuedAt:    now,
	}
}

// receiptNumber derives from the payment id, which is unique per receipt.
func receiptNumber(at time.Time, paymentID uuid.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(paymentID.String(), "-", ""))
	return "RCPT-" + at.UTC().Format("20060102") + "-" + suffix
}
