package bootstrap

import (
	"voucher-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	CacheModule,
	JWTModule,
	ObservabilityModule,
	SigningModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
