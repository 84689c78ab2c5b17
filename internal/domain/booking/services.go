package booking

import "wedding-booking/internal/pkg/clock"

type Services struct {
	Clock      clock.Clock
	Engine     *Engine
	Ledger     *Ledger
	Completion *CompletionTracker
}

// NewServices wires the lifecycle components around one clock.
func NewServices(clk clock.Clock) *Services {
	engine := NewEngine(clk)
	return &Services{
		Clock:      clk,
		Engine:     engine,
		Ledger:     NewLedger(clk, engine, NewReceiptIssuer(clk)),
		Completion: NewCompletionTracker(clk, engine),
	}
}
