//go:build unit

package booking_test

import (
	"testing"

	"wedding-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRegistry(t *testing.T) {
	t.Run("sixteen distinct statuses", func(t *testing.T) {
		all := booking.AllStatuses()
		require.Len(t, all, 16)

		seen := map[booking.Status]bool{}
		for i, s := range all {
			assert.True(t, s.IsValid(), s)
			assert.Equal(t, i, s.Order())
			assert.False(t, seen[s], "duplicate %s", s)
			seen[s] = true
		}
	})

	t.Run("parse rejects unknown strings", func(t *testing.T) {
		for _, raw := range []string{"", "Draft", "paid", "cancelled", "completed "} {
			_, err := booking.ParseStatus(raw)
			assert.ErrorIs(t, err, booking.ErrInvalidStatus, raw)
		}
		for _, s := range booking.AllStatuses() {
			parsed, err := booking.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("terminal statuses have no outgoing edges", func(t *testing.T) {
		terminals := []booking.Status{
			booking.StatusCompleted,
			booking.StatusCancelledByCouple,
			booking.StatusCancelledByVendor,
			booking.StatusRefunded,
		}
		for _, s := range terminals {
			assert.True(t, s.IsTerminal(), s)
			assert.Empty(t, booking.NextStatuses(s), s)
			for _, to := range booking.AllStatuses() {
				assert.False(t, booking.IsValidTransition(s, to), "%s -> %s", s, to)
			}
		}
	})

	t.Run("every non-terminal status has a way out", func(t *testing.T) {
		for _, s := range booking.AllStatuses() {
			if s.IsTerminal() {
				continue
			}
			assert.NotEmpty(t, booking.NextStatuses(s), s)
		}
	})

	t.Run("edges and their actors", func(t *testing.T) {
		cases := []struct {
			from   booking.Status
			to     booking.Status
			valid  bool
			actors []booking.ActorRole
		}{
			{booking.StatusDraft, booking.StatusQuoteRequested, true, []booking.ActorRole{booking.RoleCouple}},
			{booking.StatusQuoteRequested, booking.StatusQuoteSent, true, []booking.ActorRole{booking.RoleSystem}},
			{booking.StatusQuoteSent, booking.StatusQuoteAccepted, true, []booking.ActorRole{booking.RoleCouple}},
			{booking.StatusQuoteSent, booking.StatusQuoteRejected, true, []booking.ActorRole{booking.RoleCouple}},
			{booking.StatusQuoteRejected, booking.StatusQuoteRequested, true, []booking.ActorRole{booking.RoleCouple}},
			{booking.StatusQuoteAccepted, booking.StatusConfirmed, true, []booking.ActorRole{booking.RoleVendor}},
			{booking.StatusConfirmed, booking.StatusDownpaymentPaid, true, []booking.ActorRole{booking.RoleSystem}},
			{booking.StatusDownpaymentPaid, booking.StatusFullyPaid, true, []booking.ActorRole{booking.RoleSystem}},
			{booking.StatusFullyPaid, booking.StatusInProgress, true, []booking.ActorRole{booking.RoleVendor}},
			{booking.StatusInProgress, booking.StatusVendorCompleted, true, []booking.ActorRole{booking.RoleSystem}},
			{booking.StatusCoupleCompleted, booking.StatusCompleted, true, []booking.ActorRole{booking.RoleSystem}},
			{booking.StatusInProgress, booking.StatusCompleted, true, []booking.ActorRole{booking.RoleSystem}},
			{booking.StatusInProgress, booking.StatusDisputed, true, []booking.ActorRole{booking.RoleCouple, booking.RoleVendor}},
			{booking.StatusDisputed, booking.StatusRefunded, true, []booking.ActorRole{booking.RoleVendor}},
			{booking.StatusFullyPaid, booking.StatusCancelledByCouple, true, []booking.ActorRole{booking.RoleCouple}},
			{booking.StatusDraft, booking.StatusCancelledByVendor, true, []booking.ActorRole{booking.RoleVendor}},

			{booking.StatusDraft, booking.StatusQuoteSent, false, nil},
			{booking.StatusConfirmed, booking.StatusCompleted, false, nil},
			{booking.StatusQuoteSent, booking.StatusConfirmed, false, nil},
			{booking.StatusQuoteAccepted, booking.StatusDisputed, false, nil},
			{booking.StatusVendorCompleted, booking.StatusCancelledByCouple, false, nil},
			{booking.StatusFullyPaid, booking.StatusDownpaymentPaid, false, nil},
			{booking.StatusCompleted, booking.StatusDisputed, false, nil},
		}
		for _, tc := range cases {
			t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
				assert.Equal(t, tc.valid, booking.IsValidTransition(tc.from, tc.to))
				assert.ElementsMatch(t, tc.actors, booking.AllowedActors(tc.from, tc.to))
			})
		}
	})

	t.Run("completed is only entered by the system actor", func(t *testing.T) {
		for _, e := range booking.Graph() {
			if e.To != booking.StatusCompleted {
				continue
			}
			assert.Equal(t, []booking.ActorRole{booking.RoleSystem}, e.Actors, "%s -> completed", e.From)
		}
	})

	t.Run("graph endpoints are registered statuses", func(t *testing.T) {
		for _, e := range booking.Graph() {
			assert.True(t, e.From.IsValid())
			assert.True(t, e.To.IsValid())
			assert.NotEmpty(t, e.Actors)
		}
	})
}
