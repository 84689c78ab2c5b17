//go:build unit

package report_test

import (
	"strings"
	"testing"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(minor int64) *booking.Money {
	m := booking.NewMoney(minor)
	return &m
}

func TestSummarize(t *testing.T) {
	rows := []report.BookingSnapshot{
		{Status: booking.StatusDraft},
		{Status: booking.StatusQuoteSent, QuotedAmount: money(50000)},
		{Status: booking.StatusDownpaymentPaid, QuotedAmount: money(30000), TotalPaid: booking.NewMoney(10000)},
		{Status: booking.StatusCompleted, QuotedAmount: money(20001), TotalPaid: booking.NewMoney(20001)},
		{Status: booking.StatusDraft},
	}

	got := report.Summarize(rows)

	assert.Equal(t, 5, got.TotalBookings)
	assert.Equal(t, 3, got.QuotedBookings)
	assert.Equal(t, int64(100001), got.TotalRevenue.Minor())
	assert.Equal(t, int64(30001), got.TotalCollected.Minor())
	assert.Equal(t, int64(70000), got.Outstanding.Minor())
	// 100001 / 3 = 33333.67 -> 33334
	assert.Equal(t, int64(33334), got.AverageBookingValue.Minor())

	require.Len(t, got.StatusCounts, 16)
	assert.Equal(t, 2, got.Count(booking.StatusDraft))
	assert.Equal(t, 1, got.Count(booking.StatusCompleted))
	assert.Equal(t, 0, got.Count(booking.StatusRefunded))
	for i, c := range got.StatusCounts {
		assert.Equal(t, booking.AllStatuses()[i], c.Status)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := report.Summarize(nil)

	assert.Equal(t, 0, got.TotalBookings)
	assert.True(t, got.AverageBookingValue.IsZero())
	assert.Len(t, got.StatusCounts, 16)
}

func TestSummarizeIsOrderIndependent(t *testing.T) {
	rows := []report.BookingSnapshot{
		{Status: booking.StatusFullyPaid, QuotedAmount: money(1000), TotalPaid: booking.NewMoney(1000)},
		{Status: booking.StatusQuoteRequested},
		{Status: booking.StatusDisputed, QuotedAmount: money(4000), TotalPaid: booking.NewMoney(500)},
	}
	reversed := []report.BookingSnapshot{rows[2], rows[1], rows[0]}

	a := report.Summarize(rows)
	b := report.Summarize(reversed)

	if diff := cmp.Diff(a, b, cmp.AllowUnexported(booking.Money{})); diff != "" {
		t.Fatalf("summary depends on input order (-a +b):\n%s", diff)
	}
	assert.Equal(t, a.Text(), b.Text())
}

func TestSummaryText(t *testing.T) {
	got := report.Summarize([]report.BookingSnapshot{
		{Status: booking.StatusQuoteSent, QuotedAmount: money(50000)},
	}).Text()

	assert.True(t, strings.HasPrefix(got, "Booking summary\n"))
	assert.Contains(t, got, "total revenue:         500.00\n")
	assert.Contains(t, got, "average booking value: 500.00\n")
	assert.Contains(t, got, "  quote_sent           1\n")

	draft := strings.Index(got, "draft")
	refunded := strings.Index(got, "refunded")
	assert.Less(t, draft, refunded, "statuses must follow registry order")
}
