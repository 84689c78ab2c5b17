package bootstrap

import (
	"wedding-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	CacheModule,
	MessagingModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.OutboxModule,
	components.HandlerModule,
)
