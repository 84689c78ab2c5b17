package api

import (
	"errors"
	"net/http"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/handler/httperr"
	"wedding-booking/internal/handler/middleware"
	"wedding-booking/internal/pkg/errs"
	"wedding-booking/internal/usecase/commands"
	"wedding-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorMapping struct {
	target error
	status int
	msg    string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{commands.ErrStaleState, http.StatusConflict, "Booking was changed by another request"},
	{commands.ErrDuplicatePayment, http.StatusConflict, "Payment id already used with different details"},
	{booking.ErrInvalidTransition, http.StatusConflict, "Transition not allowed"},
	{booking.ErrInvalidState, http.StatusConflict, "Operation not allowed in the current status"},
	{booking.ErrUnauthorized, http.StatusForbidden, "Not allowed for this actor"},
	{booking.ErrOverPayment, http.StatusUnprocessableEntity, "Payment exceeds quoted amount"},
	{booking.ErrInvalidAmount, http.StatusUnprocessableEntity, "Amount must be positive"},
	{booking.ErrInvalidMoney, http.StatusUnprocessableEntity, "Invalid amount"},
	{booking.ErrInvalidPaymentType, http.StatusUnprocessableEntity, "Invalid payment type"},
	{booking.ErrInvalidEventDate, http.StatusUnprocessableEntity, "Invalid event date"},
	{booking.ErrInvalidStatus, http.StatusUnprocessableEntity, "Invalid status"},
	{booking.ErrInvalidServiceType, http.StatusUnprocessableEntity, "Invalid service type"},
	{booking.ErrInvalidParty, http.StatusUnprocessableEntity, "Invalid booking parties"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
}

func writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.msg, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

// domainTags are binding tags whose failures are domain validation errors rather than malformed input.
var domainTags = map[string]bool{"money": true, "paymenttype": true}

func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		status := http.StatusBadRequest
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
			if domainTags[fe.Tag()] {
				status = http.StatusUnprocessableEntity
			}
		}
		httperr.AbortWithError(c, status, err, "Invalid request", fields)
		return
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
}

func requireActor(c *gin.Context) (booking.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return booking.Actor{}, false
	}
	return actor, true
}
