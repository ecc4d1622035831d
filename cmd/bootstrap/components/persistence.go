package components

import (
	"voucher-engine/internal/infra/bookpdf"
	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/infra/localization"
	"voucher-engine/internal/infra/repository"
	"voucher-engine/internal/infra/uow"
	"voucher-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	repositoryModule,
	collaboratorModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork hands out the voucher, claim, scan, code, book and
		// translation repositories per transaction
		uow.NewPostgresUoW,
		// Business directory is read-only and outside any transaction
		fx.Annotate(
			repository.NewBusinessDirectory,
			fx.As(new(shared.BusinessDirectory)),
		),
	),
)

var collaboratorModule = fx.Module("persistence/collaborators",
	fx.Provide(
		fx.Annotate(
			localization.NewStoreLocalizer,
			fx.As(new(shared.Localizer)),
		),
		fx.Annotate(
			bookpdf.NewRenderer,
			fx.As(new(shared.BookRenderer)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
