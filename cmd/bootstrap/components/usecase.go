package components

import (
	"log/slog"

	"voucher-engine/internal/observability/metrics"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/config"
	"voucher-engine/internal/usecase"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/effects"
	"voucher-engine/internal/usecase/queries"
	"voucher-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	effects.NewRunner,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewVoucherUseCase,
		commands.NewBatchUseCase,
		commands.NewBookUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewVoucherQueries,
		queries.NewBookQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewVoucherQueries(
	uow shared.UnitOfWork,
	cache shared.Cache,
	localizer shared.Localizer,
	verifier queries.TokenVerifier,
	runner effects.Runner,
	m *metrics.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) queries.VoucherQueries {
	return queries.NewVoucherQueries(uow, cache, localizer, verifier, runner, m, clk, logger, cfg.Cache.VoucherTTL)
}
