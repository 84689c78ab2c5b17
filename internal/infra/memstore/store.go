// Package memstore keeps bookings in process memory. It backs the lifecycle
// demo and the use-case tests with the same optimistic guards as Postgres.
package memstore

import (
	"context"
	"log/slog"
	"sync"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type outboxRecord struct {
	event     shared.OutboxEvent
	published bool
	lastError string
}

type Store struct {
	mu sync.RWMutex

	bookings map[uuid.UUID]booking.Snapshot
	// receipts are keyed by payment id; receiptOrder keeps issue order.
	receipts     map[uuid.UUID]booking.ReceiptSnapshot
	receiptOrder []uuid.UUID
	outbox       []*outboxRecord

	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{
		bookings: make(map[uuid.UUID]booking.Snapshot),
		receipts: make(map[uuid.UUID]booking.ReceiptSnapshot),
		logger:   logger,
	}
}

// Within stages every write and applies them atomically at commit. Guards are
// checked when Save is called and again at commit, so the loser of a race
// gets a KindConflict error and nothing it staged becomes visible.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	t := &memTx{store: s, saved: make(map[uuid.UUID]staged), receipts: make(map[uuid.UUID]booking.ReceiptSnapshot)}
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(t)
}

func (s *Store) commit(t *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range t.createOrder {
		if _, exists := s.bookings[id]; exists {
			return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "booking already exists", nil)
		}
	}
	for id, st := range t.saved {
		if st.created {
			continue
		}
		cur, ok := s.bookings[id]
		if !ok {
			return infra.WrapRepoErr(s.logger, infra.KindNotFound, "booking not found", nil)
		}
		if !guardMatches(cur, st.expected) {
			return infra.WrapRepoErr(s.logger, infra.KindConflict, "booking changed concurrently", nil)
		}
	}
	for _, pid := range t.receiptOrder {
		if _, exists := s.receipts[pid]; exists {
			return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "payment already receipted", nil)
		}
	}

	for id, st := range t.saved {
		s.bookings[id] = st.snapshot
	}
	for _, pid := range t.receiptOrder {
		s.receipts[pid] = t.receipts[pid]
		s.receiptOrder = append(s.receiptOrder, pid)
	}
	for _, e := range t.events {
		s.outbox = append(s.outbox, &outboxRecord{event: e})
	}
	return nil
}

func guardMatches(cur booking.Snapshot, g booking.Guard) bool {
	return cur.Status == g.Status && cur.TotalPaid.Cmp(g.TotalPaid) == 0
}

type staged struct {
	snapshot booking.Snapshot
	expected booking.Guard
	created  bool
}

type memTx struct {
	store *Store

	saved        map[uuid.UUID]staged
	createOrder  []uuid.UUID
	receipts     map[uuid.UUID]booking.ReceiptSnapshot
	receiptOrder []uuid.UUID
	events       []shared.OutboxEvent
}

func (t *memTx) Bookings() shared.BookingRepository { return (*txBookings)(t) }
func (t *memTx) Receipts() shared.ReceiptRepository { return (*txReceipts)(t) }
func (t *memTx) Events() shared.EventRepository     { return (*txEvents)(t) }

type txBookings memTx

func (r *txBookings) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.saved[b.ID()]; ok {
		return infra.WrapRepoErr(r.store.logger, infra.KindDuplicateKey, "booking already exists", nil)
	}
	r.saved[b.ID()] = staged{snapshot: b.Snapshot(), created: true}
	r.createOrder = append(r.createOrder, b.ID())
	return nil
}

func (r *txBookings) Load(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.current(id)
	if !ok {
		return nil, infra.WrapRepoErr(r.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	return booking.ReconstructBooking(snap)
}

func (r *txBookings) Save(_ context.Context, b *booking.Booking, expected booking.Guard) error {
	cur, ok := r.current(b.ID())
	if !ok {
		return infra.WrapRepoErr(r.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	if !guardMatches(cur, expected) {
		return infra.WrapRepoErr(r.store.logger, infra.KindConflict, "booking changed concurrently", nil)
	}

	st, seen := r.saved[b.ID()]
	if !seen {
		st.expected = expected
	}
	st.snapshot = b.Snapshot()
	r.saved[b.ID()] = st
	return nil
}

// current prefers this transaction's staged copy over committed state.
func (r *txBookings) current(id uuid.UUID) (booking.Snapshot, bool) {
	if st, ok := r.saved[id]; ok {
		return st.snapshot, true
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	snap, ok := r.store.bookings[id]
	return snap, ok
}

type txReceipts memTx

func (r *txReceipts) Append(ctx context.Context, rc *booking.Receipt) error {
	if _, err := r.FindByPaymentID(ctx, rc.PaymentID()); err == nil {
		return infra.WrapRepoErr(r.store.logger, infra.KindDuplicateKey, "payment already receipted", nil)
	}
	r.receipts[rc.PaymentID()] = rc.Snapshot()
	r.receiptOrder = append(r.receiptOrder, rc.PaymentID())
	return nil
}

func (r *txReceipts) FindByPaymentID(_ context.Context, paymentID uuid.UUID) (*booking.Receipt, error) {
	if snap, ok := r.receipts[paymentID]; ok {
		return booking.ReconstructReceipt(snap)
	}
	r.store.mu.RLock()
	snap, ok := r.store.receipts[paymentID]
	r.store.mu.RUnlock()
	if !ok {
		return nil, infra.WrapRepoErr(r.store.logger, infra.KindNotFound, "receipt not found", nil)
	}
	return booking.ReconstructReceipt(snap)
}

type txEvents memTx

func (r *txEvents) Append(_ context.Context, events ...booking.Event) error {
	for _, e := range events {
		payload, err := e.Payload.Marshal()
		if err != nil {
			return infra.WrapRepoErr(r.store.logger, infra.KindDBFailure, "failed to encode event payload", err)
		}
		r.events = append(r.events, shared.OutboxEvent{
			ID:         e.ID,
			BookingID:  e.BookingID,
			Type:       string(e.Type),
			Status:     e.Status.String(),
			Payload:    payload,
			OccurredAt: e.OccurredAt,
		})
	}
	return nil
}
