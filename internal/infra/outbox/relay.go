package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wedding-booking/internal/infra/messaging"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/shared"
)

// Relay polls persisted lifecycle events and hands them to the publisher.
// Delivery is at least once; consumers dedupe on the event_id header.
type Relay struct {
	store     shared.OutboxStore
	publisher messaging.Publisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewRelay(store shared.OutboxStore, publisher messaging.Publisher, cfg config.OutboxConfig, logger *slog.Logger) *Relay {
	return &Relay{
		store:     store,
		publisher: publisher,
		interval:  cfg.PollInterval,
		batchSize: cfg.BatchSize,
		logger:    logger,
	}
}

// RunOnce publishes one batch and reports how many events were delivered.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	events, err := r.store.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, e := range events {
		if err := r.publisher.Publish(ctx, e); err != nil {
			r.logger.Warn("event publish failed",
				slog.String("event_id", e.ID.String()),
				slog.String("event_type", e.Type),
				slog.Int("attempts", e.Attempts+1),
				slog.String("error", err.Error()))
			if markErr := r.store.MarkFailed(ctx, e.ID, err.Error()); markErr != nil {
				return delivered, markErr
			}
			continue
		}
		if err := r.store.MarkPublished(ctx, e.ID); err != nil {
			return delivered, err
		}
		delivered++
	}
	return delivered, nil
}

func (r *Relay) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox relay iteration failed", slog.String("error", err.Error()))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	r.logger.Info("outbox relay started", slog.Duration("interval", r.interval))
}

// Stop waits for the in-flight batch, then closes the publisher.
func (r *Relay) Stop(ctx context.Context) error {
	var err error
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
			select {
			case <-r.done:
			case <-ctx.Done():
				err = ctx.Err()
				return
			}
		}
		err = r.publisher.Close()
		r.logger.Info("outbox relay stopped")
	})
	return err
}
