package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/shared"

	"github.com/IBM/sarama"
)

// Publisher delivers one outbox event to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, e shared.OutboxEvent) error
	Close() error
}

// KafkaPublisher sends events keyed by booking id, so one booking's events stay ordered on a partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewSaramaConfig(cfg config.KafkaConfig) *sarama.Config {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = cfg.RetryMax
	sc.Producer.Timeout = cfg.Timeout
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1
	sc.Producer.Partitioner = sarama.NewHashPartitioner
	return sc
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *slog.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic, logger), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Publish(_ context.Context, e shared.OutboxEvent) error {
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.BookingID.String()),
		Value: sarama.ByteEncoder(e.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(e.ID.String())},
			{Key: []byte("event_type"), Value: []byte(e.Type)},
			{Key: []byte("status"), Value: []byte(e.Status)},
		},
		Timestamp: e.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send %s to Kafka: %w", e.Type, err)
	}

	p.logger.Debug("event published",
		slog.String("event_id", e.ID.String()),
		slog.String("event_type", e.Type),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher stands in for Kafka when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, e shared.OutboxEvent) error {
	p.logger.Info("booking event",
		slog.String("event_id", e.ID.String()),
		slog.String("event_type", e.Type),
		slog.String("booking_id", e.BookingID.String()),
		slog.String("status", e.Status),
		slog.String("occurred_at", e.OccurredAt.UTC().Format(time.RFC3339)))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
