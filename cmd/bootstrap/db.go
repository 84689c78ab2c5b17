package bootstrap

import (
	"context"
	"log/slog"

	"wedding-booking/internal/infra/db"
	"wedding-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(RunMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// RunMigrations applies pending migrations at startup when AUTO_MIGRATE is set.
func RunMigrations(cfg config.Config, logger *slog.Logger) error {
	if !cfg.Migrations.AutoMigrate {
		return nil
	}
	return db.Migrate(cfg.Migrations.Path, cfg.DB, logger)
}
