//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"
	"wedding-booking/internal/handler"
	"wedding-booking/internal/handler/api"
	resdto "wedding-booking/internal/handler/dto/response"
	"wedding-booking/internal/handler/middleware"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/pkg/errs"
	"wedding-booking/internal/usecase/commands"
	"wedding-booking/internal/usecase/queries"
	"wedding-booking/tests/common/builder"
	"wedding-booking/tests/common/httptest"
	"wedding-booking/tests/common/testutil"
	commandsmock "wedding-booking/tests/mock/commands"
	queriesmock "wedding-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// stubValidator accepts tokens of the form "<role>:<uuid>".
type stubValidator struct{}

func (stubValidator) Authenticate(token string) (booking.Actor, error) {
	role, id, ok := strings.Cut(token, ":")
	if !ok {
		return booking.Actor{}, errs.New("malformed token")
	}
	r, err := booking.ParseActorRole(role)
	if err != nil || !r.IsParty() {
		return booking.Actor{}, errs.New("bad role")
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return booking.Actor{}, err
	}
	return booking.Actor{Role: r, ID: uid}, nil
}

func tokenFor(a booking.Actor) string {
	return a.Role.String() + ":" + a.ID.String()
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	mockReports  *queriesmock.MockReportQueries

	bb     *builder.BookingBuilder
	couple string
	vendor string
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockReports = queriesmock.NewMockReportQueries(s.mockCtrl)

	cfg := config.NewTestConfig()
	err := handler.NewRouter(s.router, cfg, middleware.NewLogger(cfg.Log), handler.Handlers{
		Booking: api.NewBookingHandler(s.mockCommands, s.mockQueries),
		Report:  api.NewReportHandler(s.mockReports),
	}, middleware.NewAuthMiddleware(stubValidator{}))
	s.Require().NoError(err)

	s.bb = builder.NewBookingBuilder()
	s.couple = tokenFor(s.bb.Couple())
	s.vendor = tokenFor(s.bb.Vendor())
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) build(bb *builder.BookingBuilder) *booking.Booking {
	b, err := bb.Build()
	s.Require().NoError(err)
	return b
}

func (s *BookingHandlerTestSuite) url(suffix string) string {
	return "/api/bookings/" + s.bb.ID.String() + suffix
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	reqBody := s.bb.BuildCreateRequestDTO()
	created := s.build(s.bb)

	s.Run("success: returns 201 with the draft booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateBookingInput) (*booking.Booking, error) {
				s.Equal(s.bb.Couple(), in.Actor)
				s.Equal(s.bb.VendorID, in.VendorID)
				s.Equal("photography", in.ServiceType)
				s.Equal(s.bb.EventDate, in.EventDate)
				return created, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.couple)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(s.bb.ID, body.ID)
		s.Equal("draft", body.Status)
		s.Equal("2026-09-12", body.EventDate)
		s.Equal("0.00", body.TotalPaid)
		s.Nil(body.QuotedAmount)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "missing field: vendor_id", mutate: testutil.Field("vendor_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: service_type", mutate: testutil.Field("service_type", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: event_date", mutate: testutil.Field("event_date", nil), expectCode: http.StatusBadRequest},
			{name: "service_type too long (101 chars)", mutate: testutil.Field("service_type", strings.Repeat("a", 101)), expectCode: http.StatusBadRequest},
			{name: "event_date not a date", mutate: testutil.Field("event_date", "12/09/2026"), expectCode: http.StatusBadRequest},
			{name: "vendor_id not a uuid", mutate: testutil.Field("vendor_id", "acme"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.couple)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 403 when a vendor creates", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.vendor)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 422 when the event date is rejected", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(booking.ErrInvalidEventDate, "in the past")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.couple)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid event date")
	})
}

// ================================================================================
// TestTransition
// ================================================================================

func (s *BookingHandlerTestSuite) TestTransition() {
	url := s.url("/transitions")

	s.Run("success: passes target and expected status through", func() {
		moved := s.build(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = s.bb.ID
			b.CoupleID = s.bb.CoupleID
			b.VendorID = s.bb.VendorID
		}).WithStatus(booking.StatusQuoteRequested))

		s.mockCommands.EXPECT().RequestTransition(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.TransitionInput) (*booking.Booking, error) {
				s.Equal(s.bb.ID, in.BookingID)
				s.Equal(booking.StatusQuoteRequested, in.Target)
				s.Require().NotNil(in.ExpectedStatus)
				s.Equal(booking.StatusDraft, *in.ExpectedStatus)
				return moved, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"status": "quote_requested", "expected_status": "draft"}, s.couple)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("quote_requested", body.Status)
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "stale state", err: errs.Tag(commands.ErrStaleState, errs.New("0 rows")), expectCode: http.StatusConflict, expectMsg: "changed by another request"},
		{name: "invalid transition", err: errs.Wrap(booking.ErrInvalidTransition, "draft -> completed"), expectCode: http.StatusConflict, expectMsg: "Transition not allowed"},
		{name: "unauthorized", err: errs.Wrap(booking.ErrUnauthorized, "vendor"), expectCode: http.StatusForbidden, expectMsg: "Not allowed"},
		{name: "not found", err: errs.Tag(commands.ErrBookingNotFound, errs.New("no rows")), expectCode: http.StatusNotFound, expectMsg: "Booking not found"},
		{name: "unexpected", err: errs.New("connection reset"), expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
	}
	for _, tc := range errCases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().RequestTransition(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "confirmed"}, s.vendor)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("error: 422 on an unknown target status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "eloped"}, s.couple)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid status")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/nope/transitions", map[string]any{"status": "confirmed"}, s.couple)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestSetQuote
// ================================================================================

func (s *BookingHandlerTestSuite) TestSetQuote() {
	url := s.url("/quote")

	s.Run("success: amount is parsed into minor units", func() {
		quoted := s.build(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = s.bb.ID
		}).WithStatus(booking.StatusQuoteSent).WithQuote(150000))

		s.mockCommands.EXPECT().SetQuote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.SetQuoteInput) (*booking.Booking, error) {
				s.Equal(int64(150000), in.Amount.Minor())
				s.Equal(s.bb.Vendor(), in.Actor)
				return quoted, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": "1500.00"}, s.vendor)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.QuotedAmount)
		s.Equal("1500.00", *body.QuotedAmount)
		s.Equal("1500.00", body.Remaining)
	})

	cases := []testCaseBooking{
		{name: "zero amount", mutate: testutil.Field("amount", "0"), expectCode: http.StatusUnprocessableEntity},
		{name: "negative amount", mutate: testutil.Field("amount", "-5.00"), expectCode: http.StatusUnprocessableEntity},
		{name: "sub-minor precision", mutate: testutil.Field("amount", "10.001"), expectCode: http.StatusUnprocessableEntity},
		{name: "not a number", mutate: testutil.Field("amount", "ten"), expectCode: http.StatusUnprocessableEntity},
		{name: "missing amount", mutate: testutil.Field("amount", nil), expectCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			requestMap := testutil.DtoMap(s.T(), map[string]any{"amount": "1500.00"}, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.vendor)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
		})
	}

	s.Run("error: failed tag is reported per field", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": "10.001"}, s.vendor)
		httptest.AssertFieldErrors(s.T(), rec, http.StatusUnprocessableEntity, map[string]string{"Amount": "money"})
	})

	s.Run("error: 403 when the couple quotes", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": "1500.00"}, s.couple)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 409 outside quote_requested", func() {
		s.mockCommands.EXPECT().SetQuote(gomock.Any(), gomock.Any()).Return(nil, errs.Wrap(booking.ErrInvalidState, "draft")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amount": "1500.00"}, s.vendor)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "current status")
	})
}

// ================================================================================
// TestRecordPayment
// ================================================================================

func (s *BookingHandlerTestSuite) TestRecordPayment() {
	url := s.url("/payments")
	paymentID := uuid.New()
	headers := map[string]string{"Idempotency-Key": paymentID.String()}
	reqBody := map[string]any{"amount": "500.00", "payment_type": "deposit"}

	paid := s.bb.WithStatus(booking.StatusDownpaymentPaid).WithQuote(150000).WithTotalPaid(50000)
	receipt, err := paid.BuildReceipt(paymentID, 50000, booking.PaymentDeposit)
	s.Require().NoError(err)

	s.Run("success: 201 with booking and receipt", func() {
		s.mockCommands.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.RecordPaymentInput) (*commands.PaymentOutcome, error) {
				s.Equal(paymentID, in.PaymentID)
				s.Equal(int64(50000), in.Amount.Minor())
				s.Equal(booking.PaymentDeposit, in.PaymentType)
				return &commands.PaymentOutcome{Booking: s.build(paid), Receipt: receipt}, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.couple, headers)

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.False(body.Replayed)
		s.Equal("downpayment_paid", body.Booking.Status)
		s.Equal("1000.00", body.Booking.Remaining)
		s.Equal(receipt.Number(), body.Receipt.Number)
		s.Equal("500.00", body.Receipt.Amount)
	})

	s.Run("success: 200 on replay", func() {
		s.mockCommands.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentOutcome{Booking: s.build(paid), Receipt: receipt, Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.couple, headers)

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
	})

	s.Run("error: 400 without Idempotency-Key", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.couple)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 422 on unknown payment type", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("payment_type", "cash"))
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, s.couple, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid request")
	})

	s.Run("error: 403 when the vendor pays", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.vendor, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "overpayment", err: errs.Wrap(booking.ErrOverPayment, "1000.00 remaining"), expectCode: http.StatusUnprocessableEntity},
		{name: "duplicate payment", err: commands.ErrDuplicatePayment, expectCode: http.StatusConflict},
		{name: "stale state", err: errs.Tag(commands.ErrStaleState, nil), expectCode: http.StatusConflict},
		{name: "no quote yet", err: errs.Wrap(booking.ErrInvalidState, "quote_requested"), expectCode: http.StatusConflict},
	}
	for _, tc := range errCases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.couple, headers)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}

// ================================================================================
// TestComplete
// ================================================================================

func (s *BookingHandlerTestSuite) TestComplete() {
	url := s.url("/complete")
	vendorDone := s.bb.WithStatus(booking.StatusVendorCompleted).WithVendorCompleted()

	s.Run("vendor token marks the vendor side", func() {
		s.mockCommands.EXPECT().MarkVendorComplete(gomock.Any(), s.bb.ID, s.bb.Vendor()).Return(s.build(vendorDone), nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.vendor)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.VendorCompleted)
		s.False(body.CoupleCompleted)
	})

	s.Run("couple token marks the couple side", func() {
		done := s.build(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = s.bb.ID
		}).WithStatus(booking.StatusCompleted).WithVendorCompleted().WithCoupleCompleted())
		s.mockCommands.EXPECT().MarkCoupleComplete(gomock.Any(), s.bb.ID, s.bb.Couple()).Return(done, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.couple)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("completed", body.Status)
	})

	s.Run("error: 409 before the work started", func() {
		s.mockCommands.EXPECT().MarkCoupleComplete(gomock.Any(), s.bb.ID, s.bb.Couple()).
			Return(nil, errs.Wrap(booking.ErrInvalidState, "confirmed")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.couple)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// Reads
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.bb.Couple(), s.bb.ID).Return(s.bb.BuildView(), nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url(""), nil, s.couple)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.bb.ID, body.ID)
		s.Equal(s.bb.CoupleID, body.CoupleID)
	})

	s.Run("error: 404 for a stranger", func() {
		stranger := booking.Couple(uuid.New())
		s.mockQueries.EXPECT().GetByID(gomock.Any(), stranger, s.bb.ID).Return(nil, queries.ErrBookingNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url(""), nil, tokenFor(stranger))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: forwards filter and cursor, returns next cursor", func() {
		status := booking.StatusDraft
		s.mockQueries.EXPECT().
			ListForActor(gomock.Any(), s.bb.Vendor(), queries.BookingFilter{Status: &status}, &queries.Cursor{After: "abc"}, 5).
			Return([]*queries.BookingView{s.bb.BuildView()}, &queries.Cursor{After: "next"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?status=draft&limit=5&after=abc", nil, s.vendor)

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Bookings, 1)
		s.Equal("next", body.NextCursor)
	})

	s.Run("error: 422 on unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?status=eloped", nil, s.vendor)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid status")
	})

	s.Run("error: 400 on bad cursor", func() {
		s.mockQueries.EXPECT().ListForActor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=zzz", nil, s.vendor)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *BookingHandlerTestSuite) TestListReceipts() {
	receipt, err := s.bb.BuildReceipt(uuid.New(), 50000, booking.PaymentDeposit)
	s.Require().NoError(err)

	s.mockQueries.EXPECT().ListReceipts(gomock.Any(), s.bb.Couple(), s.bb.ID).
		Return([]*queries.ReceiptView{queries.ReceiptViewOf(receipt)}, nil).Times(1)
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/receipts"), nil, s.couple)

	var body struct {
		Receipts []resdto.ReceiptResponse `json:"receipts"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body.Receipts, 1)
	s.Equal("deposit", body.Receipts[0].PaymentType)
	s.Equal(receipt.Number(), body.Receipts[0].Number)
}

func (s *BookingHandlerTestSuite) TestReportSummary() {
	summary := report.Summarize([]report.BookingSnapshot{
		report.FromBooking(s.build(builder.NewBookingBuilder().WithStatus(booking.StatusFullyPaid).WithQuote(150000).WithTotalPaid(150000))),
	})

	s.Run("json by default", func() {
		s.mockReports.EXPECT().Summary(gomock.Any(), s.bb.Vendor()).Return(&summary, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reports/summary", nil, s.vendor)

		var body resdto.SummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.TotalBookings)
		s.Equal("1500.00", body.TotalRevenue)
		s.Equal("0.00", body.Outstanding)
		s.Len(body.StatusCounts, len(booking.AllStatuses()))
	})

	s.Run("plain text on request", func() {
		s.mockReports.EXPECT().Summary(gomock.Any(), s.bb.Vendor()).Return(&summary, nil).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/reports/summary", nil, s.vendor,
			map[string]string{"Accept": "text/plain"})

		s.Equal(http.StatusOK, rec.Code)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Content-Type": "text/plain; charset=utf-8"})
		s.Equal(summary.Text(), rec.Body.String())
	})
}

func (s *BookingHandlerTestSuite) TestStatusGraph() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/statuses", nil, "")

	var body resdto.StatusGraphResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body.Statuses, 16)
	s.ElementsMatch([]string{"completed", "cancelled_by_couple", "cancelled_by_vendor", "refunded"}, body.Terminal)
	s.Contains(body.Edges, resdto.EdgeResponse{From: "quote_sent", To: "quote_accepted", Actors: []string{"couple"}})
}
