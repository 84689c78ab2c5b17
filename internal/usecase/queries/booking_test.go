//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/usecase/queries"
	"wedding-booking/tests/common/builder"
	queriesmock "wedding-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	bb := builder.NewBookingBuilder().WithStatus(booking.StatusQuoteSent).WithQuote(50000)
	notFound := infra.WrapRepoErr(discard, infra.KindNotFound, "booking not found", nil)

	tests := []struct {
		name     string
		actor    booking.Actor
		storeErr error
		errIs    error
	}{
		{name: "couple reads", actor: bb.Couple()},
		{name: "vendor reads", actor: bb.Vendor()},
		{name: "stranger sees nothing", actor: booking.Vendor(uuid.New()), errIs: queries.ErrBookingNotFound},
		{name: "missing row", actor: bb.Couple(), storeErr: notFound, errIs: queries.ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookingReadStore(ctrl)
			if tt.storeErr != nil {
				store.EXPECT().FindByID(ctx, bb.ID).Return(nil, tt.storeErr)
			} else {
				store.EXPECT().FindByID(ctx, bb.ID).Return(bb.BuildView(), nil)
			}

			v, err := queries.NewBookingQueries(store).GetByID(ctx, tt.actor, bb.ID)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, bb.ID, v.ID)
			assert.Equal(t, int64(50000), v.RemainingMinor())
		})
	}
}

func TestListForActorPaginates(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBookingReadStore(ctrl)
	coupleID := uuid.New()
	actor := booking.Couple(coupleID)

	rows := make([]*queries.BookingView, 3)
	for i := range rows {
		bb := builder.NewBookingBuilder()
		bb.CoupleID = coupleID
		bb.CreatedAt = builder.DefaultNow.Add(-time.Duration(i) * time.Hour)
		rows[i] = bb.BuildView()
	}

	store.EXPECT().ListByParty(ctx, actor, queries.BookingFilter{}, (*queries.Keyset)(nil), int32(3)).Return(rows, nil)

	page, next, err := queries.NewBookingQueries(store).ListForActor(ctx, actor, queries.BookingFilter{}, nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)

	k, err := queries.DecodeKeyset(next.After)
	require.NoError(t, err)
	assert.Equal(t, rows[1].ID, k.ID)
	assert.True(t, rows[1].CreatedAt.Equal(k.CreatedAt))

	store.EXPECT().ListByParty(ctx, actor, queries.BookingFilter{}, &k, int32(3)).Return(rows[2:], nil)
	page, next, err = queries.NewBookingQueries(store).ListForActor(ctx, actor, queries.BookingFilter{}, next, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Nil(t, next)
}

func TestListForActorRejects(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBookingReadStore(ctrl)
	q := queries.NewBookingQueries(store)
	bogus := booking.Status("archived")

	_, _, err := q.ListForActor(ctx, booking.System(), queries.BookingFilter{}, nil, 10)
	require.ErrorIs(t, err, booking.ErrUnauthorized)

	_, _, err = q.ListForActor(ctx, booking.Couple(uuid.New()), queries.BookingFilter{Status: &bogus}, nil, 10)
	require.ErrorIs(t, err, booking.ErrInvalidStatus)

	_, _, err = q.ListForActor(ctx, booking.Couple(uuid.New()), queries.BookingFilter{}, &queries.Cursor{After: "not-a-cursor"}, 10)
	require.ErrorIs(t, err, queries.ErrInvalidCursor)
}

func TestListReceiptsChecksParty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBookingReadStore(ctrl)
	bb := builder.NewBookingBuilder().WithStatus(booking.StatusFullyPaid).WithQuote(50000).WithTotalPaid(50000)
	receipts := []*queries.ReceiptView{{ID: uuid.New(), BookingID: bb.ID, AmountMinor: 50000, PaymentType: "full"}}

	store.EXPECT().FindByID(ctx, bb.ID).Return(bb.BuildView(), nil).Times(2)
	store.EXPECT().ListReceipts(ctx, bb.ID).Return(receipts, nil).Times(1)

	q := queries.NewBookingQueries(store)
	got, err := q.ListReceipts(ctx, bb.Couple(), bb.ID)
	require.NoError(t, err)
	assert.Equal(t, receipts, got)

	_, err = q.ListReceipts(ctx, booking.Couple(uuid.New()), bb.ID)
	require.ErrorIs(t, err, queries.ErrBookingNotFound)
}

func TestGetByIDPropagatesStoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBookingReadStore(ctrl)
	boom := errors.New("connection reset")
	store.EXPECT().FindByID(ctx, gomock.Any()).Return(nil, boom)

	_, err := queries.NewBookingQueries(store).GetByID(ctx, booking.Couple(uuid.New()), uuid.New())
	require.ErrorIs(t, err, boom)
}
