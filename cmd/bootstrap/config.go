package bootstrap

import (
	"voucher-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.BatchConfig { return cfg.Batch },
	),
)
