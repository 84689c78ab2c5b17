package booking

import (
	"wedding-booking/internal/pkg/clock"
	"wedding-booking/internal/pkg/errs"
)

// CompletionTracker owns the vendor and couple completion flags.
type CompletionTracker struct {
	clock  clock.Clock
	engine *Engine
}

func NewCompletionTracker(clk clock.Clock, engine *Engine) *CompletionTracker {
	return &CompletionTracker{clock: clk, engine: engine}
}

type CompletionResult struct {
	// Changed is false when the actor had already confirmed.
	Changed bool
	Events  []Event
}

func (t *CompletionTracker) MarkVendorComplete(b *Booking, actor Actor) (*CompletionResult, error) {
	if actor.Role != RoleVendor || !b.IsParty(actor) {
		return nil, errs.Wrap(ErrUnauthorized, "only the booking's vendor can confirm vendor completion")
	}
	if b.vendorCompleted {
		return &CompletionResult{}, nil
	}
	if !awaitingCompletion(b.status) {
		return nil, errs.Wrap(ErrInvalidState, "cannot confirm completion in status "+b.status.String())
	}

	now := t.clock.Now()
	prevUpdated := b.updatedAt
	b.vendorCompleted = true
	b.vendorCompletedAt = &now
	b.updatedAt = now

	target := StatusVendorCompleted
	if b.coupleCompleted {
		target = StatusCompleted
	}
	events, err := t.engine.Apply(b, target, System())
	if err != nil {
		b.vendorCompleted, b.vendorCompletedAt, b.updatedAt = false, nil, prevUpdated
		return nil, err
	}
	return &CompletionResult{Changed: true, Events: events}, nil
}

func (t *CompletionTracker) MarkCoupleComplete(b *Booking, actor Actor) (*CompletionResult, error) {
	if actor.Role != RoleCouple || !b.IsParty(actor) {
		return nil, errs.Wrap(ErrUnauthorized, "only the booking's couple can confirm couple completion")
	}
	if b.coupleCompleted {
		return &CompletionResult{}, nil
	}
	if !awaitingCompletion(b.status) {
		return nil, errs.Wrap(ErrInvalidState, "cannot confirm completion in status "+b.status.String())
	}

	now := t.clock.Now()
	prevUpdated := b.updatedAt
	b.coupleCompleted = true
	b.coupleCompletedAt = &now
	b.updatedAt = now

	target := StatusCoupleCompleted
	if b.vendorCompleted {
		target = StatusCompleted
	}
	events, err := t.engine.Apply(b, target, System())
	if err != nil {
		b.coupleCompleted, b.coupleCompletedAt, b.updatedAt = false, nil, prevUpdated
		return nil, err
	}
	return &CompletionResult{Changed: true, Events: events}, nil
}

// Mark dispatches on the actor's role.
func (t *CompletionTracker) Mark(b *Booking, actor Actor) (*CompletionResult, error) {
	switch actor.Role {
	case RoleVendor:
		return t.MarkVendorComplete(b, actor)
	case RoleCouple:
		return t.MarkCoupleComplete(b, actor)
	default:
		return nil, ErrUnauthorized
	}
}

func awaitingCompletion(s Status) bool {
	switch s {
	case StatusInProgress, StatusVendorCompleted, StatusCoupleCompleted:
		return true
	default:
		return false
	}
}
