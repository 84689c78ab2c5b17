package components

import (
	"context"
	"log/slog"

	"wedding-booking/internal/infra/messaging"
	"wedding-booking/internal/infra/outbox"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Provide(
		NewRelay,
	),
	fx.Invoke(registerRelay),
)

func NewRelay(store shared.OutboxStore, publisher messaging.Publisher, cfg config.Config, logger *slog.Logger) *outbox.Relay {
	return outbox.NewRelay(store, publisher, cfg.Outbox, logger)
}

func registerRelay(lc fx.Lifecycle, relay *outbox.Relay) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// The start context is cancelled once startup completes.
			relay.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
}
