package components

import (
	"voucher-engine/internal/handler"
	"voucher-engine/internal/handler/api"
	"voucher-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewVoucherHandler,
		api.NewBookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
