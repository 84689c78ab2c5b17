package response

import (
	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"
)

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type SummaryResponse struct {
	StatusCounts             []StatusCountResponse `json:"status_counts"`
	TotalBookings            int                   `json:"total_bookings"`
	QuotedBookings           int                   `json:"quoted_bookings"`
	TotalRevenueMinor        int64                 `json:"total_revenue_minor"`
	TotalRevenue             string                `json:"total_revenue"`
	TotalCollectedMinor      int64                 `json:"total_collected_minor"`
	TotalCollected           string                `json:"total_collected"`
	OutstandingMinor         int64                 `json:"outstanding_minor"`
	Outstanding              string                `json:"outstanding"`
	AverageBookingValueMinor int64                 `json:"average_booking_value_minor"`
	AverageBookingValue      string                `json:"average_booking_value"`
}

func FromSummary(s *report.Summary) *SummaryResponse {
	counts := make([]StatusCountResponse, len(s.StatusCounts))
	for i, c := range s.StatusCounts {
		counts[i] = StatusCountResponse{Status: c.Status.String(), Count: c.Count}
	}
	return &SummaryResponse{
		StatusCounts:             counts,
		TotalBookings:            s.TotalBookings,
		QuotedBookings:           s.QuotedBookings,
		TotalRevenueMinor:        s.TotalRevenue.Minor(),
		TotalRevenue:             s.TotalRevenue.String(),
		TotalCollectedMinor:      s.TotalCollected.Minor(),
		TotalCollected:           s.TotalCollected.String(),
		OutstandingMinor:         s.Outstanding.Minor(),
		Outstanding:              s.Outstanding.String(),
		AverageBookingValueMinor: s.AverageBookingValue.Minor(),
		AverageBookingValue:      s.AverageBookingValue.String(),
	}
}

type EdgeResponse struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Actors []string `json:"actors"`
}

type StatusGraphResponse struct {
	Statuses []string       `json:"statuses"`
	Terminal []string       `json:"terminal"`
	Edges    []EdgeResponse `json:"edges"`
}

func FromGraph(statuses []booking.Status, edges []booking.Edge) *StatusGraphResponse {
	res := &StatusGraphResponse{
		Statuses: make([]string, 0, len(statuses)),
		Terminal: []string{},
		Edges:    make([]EdgeResponse, 0, len(edges)),
	}
	for _, s := range statuses {
		res.Statuses = append(res.Statuses, s.String())
		if s.IsTerminal() {
			res.Terminal = append(res.Terminal, s.String())
		}
	}
	for _, e := range edges {
		actors := make([]string, len(e.Actors))
		for i, a := range e.Actors {
			actors[i] = a.String()
		}
		res.Edges = append(res.Edges, EdgeResponse{From: e.From.String(), To: e.To.String(), Actors: actors})
	}
	return res
}
