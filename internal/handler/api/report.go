package api

import (
	"net/http"

	resdto "wedding-booking/internal/handler/dto/response"
	"wedding-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	q queries.ReportQueries
}

func NewReportHandler(q queries.ReportQueries) *ReportHandler {
	return &ReportHandler{q: q}
}

// @Summary Booking summary
// @Description Status counts and money totals over the caller's bookings. Send Accept: text/plain for the printable report.
// @Tags reports
// @Produce json
// @Produce plain
// @Security BearerAuth
// @Success 200 {object} resdto.SummaryResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	s, err := h.q.Summary(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}

	switch c.NegotiateFormat(gin.MIMEJSON, gin.MIMEPlain) {
	case gin.MIMEPlain:
		c.String(http.StatusOK, s.Text())
	default:
		c.JSON(http.StatusOK, resdto.FromSummary(s))
	}
}
