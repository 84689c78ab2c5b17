package bootstrap

import (
	"context"
	"log/slog"

	"wedding-booking/internal/infra/cache"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/commands"
	"wedding-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

// ReportCache is read by the report queries and invalidated by the booking commands.
type ReportCache interface {
	queries.ReportCache
	commands.ReportInvalidator
}

var CacheModule = fx.Module("cache",
	fx.Provide(
		fx.Annotate(
			NewReportCache,
			fx.As(new(queries.ReportCache)),
			fx.As(new(commands.ReportInvalidator)),
		),
	),
)

func NewReportCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (ReportCache, error) {
	if !cfg.Redis.Enabled() {
		logger.Info("report cache disabled: REDIS_ADDR not set")
		return cache.NoopReportCache{}, nil
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("report cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return cache.NewReportCache(client, cfg.Redis.TTL, logger), nil
}
