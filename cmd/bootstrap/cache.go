package bootstrap

import (
	"context"
	"log/slog"

	"voucher-engine/internal/infra/cache"
	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCache,
	),
)

// NewCache connects to redis when REDIS_ADDR is set. Without it every read
// goes to the store.
func NewCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.Cache {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, voucher cache disabled")
		return cache.Noop{}
	}

	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// reads fall back to the store, so an unreachable cache is not fatal
				logger.Warn("Redis ping failed", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisCache(client)
}
