package components

import (
	"log/slog"

	"wedding-booking/internal/infra/db"
	"wedding-booking/internal/infra/readstore"
	"wedding-booking/internal/infra/repository"
	"wedding-booking/internal/infra/uow"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/queries"
	"wedding-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork: bookings, receipts and events are bound per transaction
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Outbox
		fx.Annotate(
			NewOutboxStore,
			fx.As(new(shared.OutboxStore)),
		),
	),
)

// NewDBTX exposes the pool for reads outside a unit of work.
func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewOutboxStore(dbtx db.DBTX, cfg config.Config, logger *slog.Logger) *repository.OutboxStore {
	return repository.NewOutboxStore(dbtx, cfg.Outbox.MaxAttempts, logger)
}
