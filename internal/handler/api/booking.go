package api

import (
	"net/http"
	"strconv"

	"wedding-booking/internal/domain/booking"
	reqdto "wedding-booking/internal/handler/dto/request"
	resdto "wedding-booking/internal/handler/dto/response"
	"wedding-booking/internal/handler/httperr"
	"wedding-booking/internal/usecase/commands"
	"wedding-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Create a draft booking with a vendor. Couples only.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	eventDate, err := req.ParsedEventDate()
	if err != nil {
		writeError(c, err)
		return
	}
	b, err := h.cmds.Create(c.Request.Context(), commands.CreateBookingInput{
		Actor:       actor,
		VendorID:    req.VendorID,
		ServiceType: req.ServiceType,
		EventDate:   eventDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(queries.ViewOf(b)))
}

// @Summary List bookings
// @Description List the caller's bookings, newest first, with keyset pagination
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var filter queries.BookingFilter
	if v := c.Query("status"); v != "" {
		s, err := booking.ParseStatus(v)
		if err != nil {
			writeError(c, err)
			return
		}
		filter.Status = &s
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		iv, err := strconv.Atoi(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = queries.ValidateLimit(iv)
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListForActor(c.Request.Context(), actor, filter, cursor, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := resdto.BookingListResponse{Bookings: resdto.FromBookingViews(items)}
	if next != nil {
		resp.NextCursor = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get booking
// @Description Get a booking the caller is a party to
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Amend event date
// @Description Change the event date while the booking is not yet confirmed
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AmendEventDateRequest true "New event date"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/event-date [patch]
func (h *BookingHandler) AmendEventDate(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.AmendEventDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	eventDate, err := req.ParsedEventDate()
	if err != nil {
		writeError(c, err)
		return
	}
	b, err := h.cmds.AmendEventDate(c.Request.Context(), commands.AmendEventDateInput{
		BookingID: id,
		Actor:     actor,
		EventDate: eventDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(queries.ViewOf(b)))
}

// @Summary Request transition
// @Description Move the booking to another status. expected_status guards against stale reads.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/transitions [post]
func (h *BookingHandler) Transition(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	target, expected, err := req.ToDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	b, err := h.cmds.RequestTransition(c.Request.Context(), commands.TransitionInput{
		BookingID:      id,
		Target:         target,
		Actor:          actor,
		ExpectedStatus: expected,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(queries.ViewOf(b)))
}

// @Summary Send quote
// @Description Set the quoted amount. Vendor only, while a quote is requested.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.SetQuoteRequest true "Quote"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/quote [post]
func (h *BookingHandler) SetQuote(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.SetQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	amount, err := req.ToDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	b, err := h.cmds.SetQuote(c.Request.Context(), commands.SetQuoteInput{
		BookingID: id,
		Actor:     actor,
		Amount:    amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(queries.ViewOf(b)))
}

// @Summary Record payment
// @Description Record a payment and issue its receipt. The Idempotency-Key header identifies the payment; replays return the original receipt.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param Idempotency-Key header string true "Payment id (UUID)"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 201 {object} resdto.PaymentResponse
// @Success 200 {object} resdto.PaymentResponse "Replayed payment"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/payments [post]
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	paymentID, err := uuid.Parse(c.GetHeader(idempotencyKeyHeader))
	if err != nil || paymentID == uuid.Nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key header must be a UUID", nil)
		return
	}
	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	amount, paymentType, err := req.ToDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	out, err := h.cmds.RecordPayment(c.Request.Context(), commands.RecordPaymentInput{
		BookingID:   id,
		Actor:       actor,
		PaymentID:   paymentID,
		Amount:      amount,
		PaymentType: paymentType,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if out.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.PaymentResponse{
		Booking:  resdto.FromBookingView(queries.ViewOf(out.Booking)),
		Receipt:  resdto.FromReceiptView(queries.ReceiptViewOf(out.Receipt)),
		Replayed: out.Replayed,
	})
}

// @Summary List receipts
// @Description List a booking's receipts in issue order
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.ReceiptResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/receipts [get]
func (h *BookingHandler) ListReceipts(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	items, err := h.q.ListReceipts(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipts": resdto.FromReceiptViews(items)})
}

// @Summary Confirm completion
// @Description Record the caller's completion confirmation. The booking completes once both parties confirm.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var (
		b   *booking.Booking
		err error
	)
	switch actor.Role {
	case booking.RoleVendor:
		b, err = h.cmds.MarkVendorComplete(c.Request.Context(), id, actor)
	case booking.RoleCouple:
		b, err = h.cmds.MarkCoupleComplete(c.Request.Context(), id, actor)
	default:
		err = booking.ErrUnauthorized
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(queries.ViewOf(b)))
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
