package booking

import "wedding-booking/internal/pkg/errs"

var ErrInvalidStatus = errs.New("invalid booking status")

type Status string

const (
	StatusDraft             Status = "draft"
	StatusQuoteRequested    Status = "quote_requested"
	StatusQuoteSent         Status = "quote_sent"
	StatusQuoteAccepted     Status = "quote_accepted"
	StatusQuoteRejected     Status = "quote_rejected"
	StatusConfirmed         Status = "confirmed"
	StatusDownpaymentPaid   Status = "downpayment_paid"
	StatusFullyPaid         Status = "fully_paid"
	StatusInProgress        Status = "in_progress"
	StatusVendorCompleted   Status = "vendor_completed"
	StatusCoupleCompleted   Status = "couple_completed"
	StatusCompleted         Status = "completed"
	StatusCancelledByCouple Status = "cancelled_by_couple"
	StatusCancelledByVendor Status = "cancelled_by_vendor"
	StatusDisputed          Status = "disputed"
	StatusRefunded          Status = "refunded"
)

// Declaration order; reports and the registry endpoint iterate in this order.
var allStatuses = []Status{
	StatusDraft,
	StatusQuoteRequested,
	StatusQuoteSent,
	StatusQuoteAccepted,
	StatusQuoteRejected,
	StatusConfirmed,
	StatusDownpaymentPaid,
	StatusFullyPaid,
	StatusInProgress,
	StatusVendorCompleted,
	StatusCoupleCompleted,
	StatusCompleted,
	StatusCancelledByCouple,
	StatusCancelledByVendor,
	StatusDisputed,
	StatusRefunded,
}

var statusIndex = func() map[Status]int {
	m := make(map[Status]int, len(allStatuses))
	for i, s := range allStatuses {
		m[s] = i
	}
	return m
}()

func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.Wrap(ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusIndex[s]
	return ok
}

// Order is the position of s in the registry, or -1 for unknown values.
func (s Status) Order() int {
	if i, ok := statusIndex[s]; ok {
		return i
	}
	return -1
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelledByCouple, StatusCancelledByVendor, StatusRefunded:
		return true
	default:
		return false
	}
}

// BeforeConfirmation reports whether the booking is still in its quoting phase.
func (s Status) BeforeConfirmation() bool {
	switch s {
	case StatusDraft, StatusQuoteRequested, StatusQuoteSent, StatusQuoteAccepted, StatusQuoteRejected:
		return true
	default:
		return false
	}
}
