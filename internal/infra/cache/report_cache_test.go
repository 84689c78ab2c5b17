//go:build unit

package cache

import (
	"testing"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCachedSummaryPreservesReport(t *testing.T) {
	q := booking.NewMoney(50000)
	s := report.Summarize([]report.BookingSnapshot{
		{Status: booking.StatusFullyPaid, QuotedAmount: &q, TotalPaid: q},
		{Status: booking.StatusDraft},
	})

	got := fromSummary(&s).toSummary()
	if diff := cmp.Diff(s, got, cmp.AllowUnexported(booking.Money{})); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestReportKeyIsPerActor(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.NotEqual(t, reportKey(a), reportKey(b))
	assert.Equal(t, "report:summary:"+a.String(), reportKey(a))
}

func TestGenerationKeyIsSeparateFromSummary(t *testing.T) {
	a := uuid.New()
	assert.Equal(t, "report:generation:"+a.String(), generationKey(a))
	assert.NotEqual(t, reportKey(a), generationKey(a))
}
