package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"
	"wedding-booking/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix     = "report:summary:"
	generationKeyPrefix = "report:generation:"
)

var errGenerationMoved = errors.New("report generation moved")

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// ReportCache stores per-actor summaries in Redis. Writes to a booking drop both parties' entries
// and bump their generation, so a summary computed before the write is never stored after it.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewReportCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ReportCache {
	return &ReportCache{client: client, ttl: ttl, logger: logger}
}

func (c *ReportCache) Get(ctx context.Context, actorID uuid.UUID) (*report.Summary, bool, error) {
	raw, err := c.client.Get(ctx, reportKey(actorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cs cachedSummary
	if err := json.Unmarshal(raw, &cs); err != nil {
		c.logger.Warn("dropping unreadable report cache entry", slog.String("actor_id", actorID.String()))
		_ = c.client.Del(ctx, reportKey(actorID)).Err()
		return nil, false, nil
	}
	s := cs.toSummary()
	return &s, true, nil
}

func (c *ReportCache) Generation(ctx context.Context, actorID uuid.UUID) (int64, error) {
	return c.generation(ctx, c.client, actorID)
}

func (c *ReportCache) generation(ctx context.Context, r redis.Cmdable, actorID uuid.UUID) (int64, error) {
	gen, err := r.Get(ctx, generationKey(actorID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set is a no-op when the generation moved past gen.
func (c *ReportCache) Set(ctx context.Context, actorID uuid.UUID, gen int64, s *report.Summary) error {
	raw, err := json.Marshal(fromSummary(s))
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := c.generation(ctx, tx, actorID)
		if err != nil {
			return err
		}
		if cur != gen {
			return errGenerationMoved
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, reportKey(actorID), raw, c.ttl)
			return nil
		})
		return err
	}, generationKey(actorID))

	if errors.Is(err, errGenerationMoved) || errors.Is(err, redis.TxFailedErr) {
		c.logger.Debug("skipping stale report summary", slog.String("actor_id", actorID.String()))
		return nil
	}
	return err
}

func (c *ReportCache) Invalidate(ctx context.Context, actorIDs ...uuid.UUID) error {
	if len(actorIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range actorIDs {
			pipe.Incr(ctx, generationKey(id))
			pipe.Del(ctx, reportKey(id))
		}
		return nil
	})
	return err
}

func reportKey(actorID uuid.UUID) string {
	return reportKeyPrefix + actorID.String()
}

func generationKey(actorID uuid.UUID) string {
	return generationKeyPrefix + actorID.String()
}

type cachedCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type cachedSummary struct {
	StatusCounts        []cachedCount `json:"status_counts"`
	TotalBookings       int           `json:"total_bookings"`
	QuotedBookings      int           `json:"quoted_bookings"`
	TotalRevenue        int64         `json:"total_revenue_minor"`
	TotalCollected      int64         `json:"total_collected_minor"`
	Outstanding         int64         `json:"outstanding_minor"`
	AverageBookingValue int64         `json:"average_booking_value_minor"`
}

func fromSummary(s *report.Summary) cachedSummary {
	cs := cachedSummary{
		StatusCounts:        make([]cachedCount, len(s.StatusCounts)),
		TotalBookings:       s.TotalBookings,
		QuotedBookings:      s.QuotedBookings,
		TotalRevenue:        s.TotalRevenue.Minor(),
		TotalCollected:      s.TotalCollected.Minor(),
		Outstanding:         s.Outstanding.Minor(),
		AverageBookingValue: s.AverageBookingValue.Minor(),
	}
	for i, sc := range s.StatusCounts {
		cs.StatusCounts[i] = cachedCount{Status: sc.Status.String(), Count: sc.Count}
	}
	return cs
}

func (cs cachedSummary) toSummary() report.Summary {
	s := report.Summary{
		StatusCounts:        make([]report.StatusCount, len(cs.StatusCounts)),
		TotalBookings:       cs.TotalBookings,
		QuotedBookings:      cs.QuotedBookings,
		TotalRevenue:        booking.NewMoney(cs.TotalRevenue),
		TotalCollected:      booking.NewMoney(cs.TotalCollected),
		Outstanding:         booking.NewMoney(cs.Outstanding),
		AverageBookingValue: booking.NewMoney(cs.AverageBookingValue),
	}
	for i, c := range cs.StatusCounts {
		s.StatusCounts[i] = report.StatusCount{Status: booking.Status(c.Status), Count: c.Count}
	}
	return s
}

// NoopReportCache is used when Redis is not configured.
type NoopReportCache struct{}

func (NoopReportCache) Get(context.Context, uuid.UUID) (*report.Summary, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Generation(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (NoopReportCache) Set(context.Context, uuid.UUID, int64, *report.Summary) error { return nil }

func (NoopReportCache) Invalidate(context.Context, ...uuid.UUID) error { return nil }
