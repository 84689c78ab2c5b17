//go:build unit

package messaging_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"wedding-booking/internal/infra/messaging"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/shared"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func outboxEvent() shared.OutboxEvent {
	return shared.OutboxEvent{
		ID:         uuid.New(),
		BookingID:  uuid.New(),
		Type:       "booking.fully_paid",
		Status:     "fully_paid",
		Payload:    []byte(`{"status":"fully_paid"}`),
		OccurredAt: time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisherSendsPayload(t *testing.T) {
	cfg := config.NewTestConfig().Kafka
	producer := mocks.NewSyncProducer(t, messaging.NewSaramaConfig(cfg))
	defer func() { _ = producer.Close() }()

	e := outboxEvent()
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != e.BookingID.String() {
			return errors.New("message not keyed by booking id")
		}
		if msg.Topic != cfg.Topic {
			return errors.New("unexpected topic " + msg.Topic)
		}
		return nil
	})

	pub := messaging.NewKafkaPublisherWithProducer(producer, cfg.Topic, discard)
	require.NoError(t, pub.Publish(context.Background(), e))
}

func TestKafkaPublisherReportsFailure(t *testing.T) {
	cfg := config.NewTestConfig().Kafka
	producer := mocks.NewSyncProducer(t, messaging.NewSaramaConfig(cfg))
	defer func() { _ = producer.Close() }()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := messaging.NewKafkaPublisherWithProducer(producer, cfg.Topic, discard)
	err := pub.Publish(context.Background(), outboxEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}
