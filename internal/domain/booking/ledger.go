package booking

import (
	"github.com/google/uuid"

	"wedding-booking/internal/pkg/clock"
	"wedding-booking/internal/pkg/errs"
)

var ErrPaymentIDRequired = errs.New("payment id is required")

// Ledger owns quotedAmount and totalPaid.
type Ledger struct {
	clock    clock.Clock
	engine   *Engine
	receipts *ReceiptIssuer
}

func NewLedger(clk clock.Clock, engine *Engine, receipts *ReceiptIssuer) *Ledger {
	return &Ledger{clock: clk, engine: engine, receipts: receipts}
}

type Payment struct {
	ID     uuid.UUID
	Amount Money
	Type   PaymentType
}

type PaymentResult struct {
	Receipt *Receipt
	Events  []Event
}

// SetQuote records the vendor's price and sends the quote to the couple.
func (l *Ledger) SetQuote(b *Booking, amount Money, actor Actor) ([]Event, error) {
	if actor.Role != RoleVendor || !b.IsParty(actor) {
		return nil, errs.Wrap(ErrUnauthorized, "only the booking's vendor can quote")
	}
	if b.status != StatusQuoteRequested {
		return nil, errs.Wrap(ErrInvalidState, "quote can only be set while a quote is requested")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	prev, prevUpdated := b.quotedAmount, b.updatedAt
	q := amount
	b.quotedAmount = &q
	b.updatedAt = l.clock.Now()

	events, err := l.engine.Apply(b, StatusQuoteSent, System())
	if err != nil {
		b.quotedAmount, b.updatedAt = prev, prevUpdated
		return nil, err
	}
	return events, nil
}

// RecordPayment applies a couple's payment, issues its receipt and advances the payment phase.
func (l *Ledger) RecordPayment(b *Booking, p Payment, actor Actor) (*PaymentResult, error) {
	if actor.Role != RoleCouple || !b.IsParty(actor) {
		return nil, errs.Wrap(ErrUnauthorized, "only the booking's couple can pay")
	}
	if p.ID == uuid.Nil {
		return nil, ErrPaymentIDRequired
	}
	if !p.Type.IsValid() {
		return nil, errs.Wrap(ErrInvalidPaymentType, p.Type.String())
	}
	if !p.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if b.quotedAmount == nil || !acceptsPayment(b.status) {
		return nil, errs.Wrap(ErrInvalidState, "booking does not accept payments in status "+b.status.String())
	}

	newTotal := b.totalPaid.Add(p.Amount)
	if newTotal.Cmp(*b.quotedAmount) > 0 {
		return nil, errs.Wrap(ErrOverPayment, "remaining balance is "+b.RemainingBalance().String())
	}

	prevTotal, prevUpdated := b.totalPaid, b.updatedAt
	b.totalPaid = newTotal
	b.updatedAt = l.clock.Now()

	var events []Event
	if target, ok := paymentTarget(b.status, newTotal.Cmp(*b.quotedAmount) == 0); ok {
		var err error
		events, err = l.engine.Apply(b, target, System())
		if err != nil {
			b.totalPaid, b.updatedAt = prevTotal, prevUpdated
			return nil, err
		}
	}

	return &PaymentResult{
		Receipt: l.receipts.issue(b, p.ID, p.Amount, p.Type),
		Events:  events,
	}, nil
}

func acceptsPayment(s Status) bool {
	switch s {
	case StatusQuoteAccepted, StatusConfirmed, StatusDownpaymentPaid,
		StatusInProgress, StatusVendorCompleted, StatusCoupleCompleted:
		return true
	default:
		return false
	}
}

// paymentTarget returns the status a payment moves the booking to. Payments made once work has
// started settle the balance without changing status.
func paymentTarget(current Status, settled bool) (Status, bool) {
	switch current {
	case StatusQuoteAccepted, StatusConfirmed:
		if settled {
			return StatusFullyPaid, true
		}
		return StatusDownpaymentPaid, true
	case StatusDownpaymentPaid:
		if settled {
			return StatusFullyPaid, true
		}
	}
	return "", false
}
