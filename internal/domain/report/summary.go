package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"wedding-booking/internal/domain/booking"
)

// BookingSnapshot is the subset of a booking the summary reads.
type BookingSnapshot struct {
	Status       booking.Status
	QuotedAmount *booking.Money
	TotalPaid    booking.Money
}

func FromBooking(b *booking.Booking) BookingSnapshot {
	return BookingSnapshot{
		Status:       b.Status(),
		QuotedAmount: b.QuotedAmount(),
		TotalPaid:    b.TotalPaid(),
	}
}

type StatusCount struct {
	Status booking.Status
	Count  int
}

type Summary struct {
	// One entry per registry status, in registry order.
	StatusCounts        []StatusCount
	TotalBookings       int
	QuotedBookings      int
	TotalRevenue        booking.Money
	TotalCollected      booking.Money
	Outstanding         booking.Money
	AverageBookingValue booking.Money
}

// Summarize is pure; rows with statuses outside the registry are counted in TotalBookings only.
func Summarize(rows []BookingSnapshot) Summary {
	counts := make(map[booking.Status]int, len(rows))
	var revenue, collected booking.Money
	quoted := 0

	for _, r := range rows {
		counts[r.Status]++
		if r.QuotedAmount != nil {
			revenue = revenue.Add(*r.QuotedAmount)
			quoted++
		}
		collected = collected.Add(r.TotalPaid)
	}

	all := booking.AllStatuses()
	sc := make([]StatusCount, len(all))
	for i, s := range all {
		sc[i] = StatusCount{Status: s, Count: counts[s]}
	}

	return Summary{
		StatusCounts:        sc,
		TotalBookings:       len(rows),
		QuotedBookings:      quoted,
		TotalRevenue:        revenue,
		TotalCollected:      collected,
		Outstanding:         revenue.Sub(collected),
		AverageBookingValue: average(revenue, quoted),
	}
}

// average rounds half away from zero to the nearest minor unit.
func average(total booking.Money, n int) booking.Money {
	if n == 0 {
		return booking.Money{}
	}
	avg := decimal.NewFromInt(total.Minor()).Div(decimal.NewFromInt(int64(n))).Round(0)
	return booking.NewMoney(avg.IntPart())
}

func (s Summary) Count(status booking.Status) int {
	for _, c := range s.StatusCounts {
		if c.Status == status {
			return c.Count
		}
	}
	return 0
}

// Text renders a deterministic plain-text report.
func (s Summary) Text() string {
	var sb strings.Builder
	sb.WriteString("Booking summary\n")
	fmt.Fprintf(&sb, "  total bookings:        %d\n", s.TotalBookings)
	fmt.Fprintf(&sb, "  quoted bookings:       %d\n", s.QuotedBookings)
	fmt.Fprintf(&sb, "  total revenue:         %s\n", s.TotalRevenue)
	fmt.Fprintf(&sb, "  total collected:       %s\n", s.TotalCollected)
	fmt.Fprintf(&sb, "  outstanding:           %s\n", s.Outstanding)
	fmt.Fprintf(&sb, "  average booking value: %s\n", s.AverageBookingValue)
	sb.WriteString("By status\n")
	for _, c := range s.StatusCounts {
		fmt.Fprintf(&sb, "  %-20s %d\n", c.Status, c.Count)
	}
	return sb.String()
}
