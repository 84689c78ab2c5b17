package booking

import (
	"wedding-booking/internal/pkg/clock"
	"wedding-booking/internal/pkg/errs"
)

// Engine is the only writer of a booking's status.
type Engine struct {
	clock clock.Clock
}

func NewEngine(clk clock.Clock) *Engine {
	return &Engine{clock: clk}
}

// Apply moves b to target on behalf of actor and returns the events the move emits.
// Party actors must be the booking's own couple or vendor.
func (e *Engine) Apply(b *Booking, target Status, actor Actor) ([]Event, error) {
	if !target.IsValid() {
		return nil, errs.Wrap(ErrInvalidStatus, target.String())
	}
	if !IsValidTransition(b.status, target) {
		return nil, errs.Wrap(ErrInvalidTransition, b.status.String()+" -> "+target.String())
	}
	if !CanActorTransition(b.status, target, actor.Role) {
		return nil, errs.Wrap(ErrUnauthorized, actor.Role.String()+" cannot move "+b.status.String()+" -> "+target.String())
	}
	if actor.Role.IsParty() && !b.IsParty(actor) {
		return nil, ErrUnauthorized
	}
	if target == StatusCompleted && !(b.vendorCompleted && b.coupleCompleted) {
		return nil, errs.Wrap(ErrInvalidState, "both parties must confirm completion")
	}

	now := e.clock.Now()
	b.status = target
	b.updatedAt = now

	if typ, ok := eventFor[target]; ok {
		return []Event{newEvent(b, typ, now)}, nil
	}
	return nil, nil
}
