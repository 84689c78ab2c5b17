package booking

import "wedding-booking/internal/pkg/errs"

var (
	ErrInvalidTransition  = errs.New("invalid status transition")
	ErrUnauthorized       = errs.New("actor not authorized for this booking action")
	ErrInvalidState       = errs.New("booking is not in a state that allows this operation")
	ErrOverPayment        = errs.New("payment exceeds quoted amount")
	ErrInvalidPaymentType = errs.New("invalid payment type")
	ErrInvalidEventDate   = errs.New("invalid event date")
	ErrInvalidServiceType = errs.New("invalid service type")
	ErrInvalidParty       = errs.New("couple and vendor must be set and distinct")
)
