package request

import (
	"wedding-booking/internal/domain/booking"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the booking-specific binding tags to v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("money", validateMoney); err != nil {
		return err
	}
	return v.RegisterValidation("paymenttype", validatePaymentType)
}

// money accepts positive decimal strings with at most two fractional digits.
func validateMoney(fl validator.FieldLevel) bool {
	m, err := booking.ParseMoney(fl.Field().String())
	return err == nil && m.IsPositive()
}

func validatePaymentType(fl validator.FieldLevel) bool {
	return booking.PaymentType(fl.Field().String()).IsValid()
}
