package commands

import (
	"wedding-booking/internal/infra"
	"wedding-booking/internal/pkg/errs"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrStaleState       = errs.New("booking changed since it was read")
	ErrDuplicatePayment = errs.New("payment id already used with different details")
)

// translateRepoErr maps repository outcomes onto the use-case error taxonomy.
func translateRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Tag(ErrBookingNotFound, err)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Tag(ErrStaleState, err)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Tag(ErrDuplicatePayment, err)
	default:
		return err
	}
}
