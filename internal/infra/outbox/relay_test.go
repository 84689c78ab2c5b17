//go:build unit

package outbox_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/infra/memstore"
	"wedding-booking/internal/infra/messaging"
	"wedding-booking/internal/infra/outbox"
	"wedding-booking/internal/pkg/clock"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/commands"
	"wedding-booking/internal/usecase/shared"
	"wedding-booking/tests/common/builder"
	messagingmock "wedding-booking/tests/mock/messaging"
	sharedmock "wedding-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunOnce(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Outbox
	first := shared.OutboxEvent{ID: uuid.New(), Type: string(booking.EventQuoteAccepted)}
	second := shared.OutboxEvent{ID: uuid.New(), Type: string(booking.EventFullyPaid), Attempts: 2}

	t.Run("marks delivered and failed events", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockOutboxStore(ctrl)
		pub := messagingmock.NewMockPublisher(ctrl)

		store.EXPECT().FetchPending(ctx, cfg.BatchSize).Return([]shared.OutboxEvent{first, second}, nil)
		pub.EXPECT().Publish(ctx, first).Return(nil)
		store.EXPECT().MarkPublished(ctx, first.ID).Return(nil)
		pub.EXPECT().Publish(ctx, second).Return(errors.New("broker unavailable"))
		store.EXPECT().MarkFailed(ctx, second.ID, "broker unavailable").Return(nil)

		n, err := outbox.NewRelay(store, pub, cfg, discard).RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("fetch failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockOutboxStore(ctrl)
		pub := messagingmock.NewMockPublisher(ctrl)
		boom := errors.New("db down")
		store.EXPECT().FetchPending(ctx, cfg.BatchSize).Return(nil, boom)

		_, err := outbox.NewRelay(store, pub, cfg, discard).RunOnce(ctx)
		require.ErrorIs(t, err, boom)
	})
}

func TestRelayDrainsCommittedEvents(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(discard)
	cmds := commands.NewBookingCommands(store, booking.NewServices(clock.NewMockClock(builder.DefaultNow)), nil, discard)

	bb := builder.NewBookingBuilder().WithStatus(booking.StatusQuoteSent).WithQuote(50000)
	b, err := bb.Build()
	require.NoError(t, err)
	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	}))

	_, err = cmds.RequestTransition(ctx, commands.TransitionInput{BookingID: bb.ID, Target: booking.StatusQuoteAccepted, Actor: bb.Couple()})
	require.NoError(t, err)

	relay := outbox.NewRelay(store.Outbox(), messaging.NewLogPublisher(discard), config.NewTestConfig().Outbox, discard)
	n, err := relay.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	pending, err := store.Outbox().FetchPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockOutboxStore(ctrl)
	pub := messagingmock.NewMockPublisher(ctrl)
	cfg := config.NewTestConfig().Outbox

	polled := make(chan struct{}, 1)
	store.EXPECT().FetchPending(gomock.Any(), cfg.BatchSize).DoAndReturn(func(context.Context, int) ([]shared.OutboxEvent, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return nil, nil
	}).MinTimes(1)
	pub.EXPECT().Close().Return(nil).Times(1)

	relay := outbox.NewRelay(store, pub, cfg, discard)
	relay.Start(context.Background())

	select {
	case <-polled:
	case <-time.After(2 * time.Second):
		t.Fatal("relay never polled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, relay.Stop(ctx))
	require.NoError(t, relay.Stop(ctx))
}
