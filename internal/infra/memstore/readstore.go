package memstore

import (
	"context"
	"sort"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReadStore serves the query side from committed state.
type ReadStore struct {
	s *Store
}

func (s *Store) ReadStore() *ReadStore {
	return &ReadStore{s: s}
}

func (r *ReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.s.mu.RLock()
	snap, ok := r.s.bookings[id]
	r.s.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "booking not found", nil)
	}
	return viewOf(snap)
}

func (r *ReadStore) ListByParty(_ context.Context, actor booking.Actor, filter queries.BookingFilter, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	r.s.mu.RLock()
	var snaps []booking.Snapshot
	for _, snap := range r.s.bookings {
		if !partyOf(snap, actor) {
			continue
		}
		if filter.Status != nil && snap.Status != *filter.Status {
			continue
		}
		snaps = append(snaps, snap)
	}
	r.s.mu.RUnlock()

	sort.Slice(snaps, func(i, j int) bool {
		return newerThan(snaps[i].CreatedAt.UnixMicro(), snaps[i].ID, snaps[j].CreatedAt.UnixMicro(), snaps[j].ID)
	})

	out := make([]*queries.BookingView, 0, len(snaps))
	for _, snap := range snaps {
		if after != nil && !newerThan(after.CreatedAt.UnixMicro(), after.ID, snap.CreatedAt.UnixMicro(), snap.ID) {
			continue
		}
		if int32(len(out)) >= limit { // #nosec G115 -- bounded by the query limit
			break
		}
		v, err := viewOf(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *ReadStore) ListReceipts(_ context.Context, bookingID uuid.UUID) ([]*queries.ReceiptView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*queries.ReceiptView
	for _, pid := range r.s.receiptOrder {
		snap := r.s.receipts[pid]
		if snap.BookingID != bookingID {
			continue
		}
		rc, err := booking.ReconstructReceipt(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, queries.ReceiptViewOf(rc))
	}
	return out, nil
}

func (r *ReadStore) ReportRows(_ context.Context, actor booking.Actor) ([]report.BookingSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []report.BookingSnapshot
	for _, snap := range r.s.bookings {
		if !partyOf(snap, actor) {
			continue
		}
		rows = append(rows, report.BookingSnapshot{
			Status:       snap.Status,
			QuotedAmount: snap.QuotedAmount,
			TotalPaid:    snap.TotalPaid,
		})
	}
	return rows, nil
}

// newerThan orders by (created_at, id) descending, matching the Postgres keyset.
func newerThan(aMicros int64, aID uuid.UUID, bMicros int64, bID uuid.UUID) bool {
	if aMicros != bMicros {
		return aMicros > bMicros
	}
	return aID.String() > bID.String()
}

func partyOf(snap booking.Snapshot, actor booking.Actor) bool {
	switch actor.Role {
	case booking.RoleCouple:
		return snap.CoupleID == actor.ID
	case booking.RoleVendor:
		return snap.VendorID == actor.ID
	default:
		return false
	}
}

func viewOf(snap booking.Snapshot) (*queries.BookingView, error) {
	b, err := booking.ReconstructBooking(snap)
	if err != nil {
		return nil, err
	}
	return queries.ViewOf(b), nil
}
