package bootstrap

import (
	"log/slog"

	"wedding-booking/internal/infra/messaging"
	"wedding-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewPublisher,
	),
)

// NewPublisher falls back to logging events when no Kafka brokers are configured.
// The outbox relay owns the publisher and closes it on stop.
func NewPublisher(cfg config.Config, logger *slog.Logger) (messaging.Publisher, error) {
	if !cfg.Kafka.Enabled() {
		logger.Info("kafka disabled: events are only logged")
		return messaging.NewLogPublisher(logger), nil
	}
	p, err := messaging.NewKafkaPublisher(cfg.Kafka, logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}
