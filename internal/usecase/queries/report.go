package queries

import (
	"context"
	"log/slog"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"
	"wedding-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ReportCache holds computed summaries per actor. A miss is (nil, false, nil).
// Set stores s only while the actor's generation still equals gen.
type ReportCache interface {
	Get(ctx context.Context, actorID uuid.UUID) (*report.Summary, bool, error)
	Generation(ctx context.Context, actorID uuid.UUID) (int64, error)
	Set(ctx context.Context, actorID uuid.UUID, gen int64, s *report.Summary) error
}

type ReportQueries interface {
	Summary(ctx context.Context, actor booking.Actor) (*report.Summary, error)
}

type reportQueriesImpl struct {
	store  BookingReadStore
	cache  ReportCache
	logger *slog.Logger
}

func NewReportQueries(store BookingReadStore, cache ReportCache, logger *slog.Logger) ReportQueries {
	return &reportQueriesImpl{store: store, cache: cache, logger: logger}
}

// Summary aggregates the bookings the actor is a party to. Cache failures degrade to recomputation.
func (q *reportQueriesImpl) Summary(ctx context.Context, actor booking.Actor) (*report.Summary, error) {
	if !actor.Role.IsParty() {
		return nil, errs.Wrap(booking.ErrUnauthorized, "reports are scoped to a party")
	}

	var (
		gen       int64
		cacheable bool
	)
	if q.cache != nil {
		s, ok, err := q.cache.Get(ctx, actor.ID)
		switch {
		case err != nil:
			q.logger.Warn("report cache read failed", slog.String("error", err.Error()))
		case ok:
			return s, nil
		}

		// read before the store so an invalidation during the read discards this result
		gen, err = q.cache.Generation(ctx, actor.ID)
		if err != nil {
			q.logger.Warn("report cache generation read failed", slog.String("error", err.Error()))
		}
		cacheable = err == nil
	}

	rows, err := q.store.ReportRows(ctx, actor)
	if err != nil {
		return nil, err
	}
	s := report.Summarize(rows)

	if cacheable {
		if err := q.cache.Set(ctx, actor.ID, gen, &s); err != nil {
			q.logger.Warn("report cache write failed", slog.String("error", err.Error()))
		}
	}
	return &s, nil
}
