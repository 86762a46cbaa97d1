package components

import (
	"agrirent/internal/handler"
	"agrirent/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewAdminHandler,
	),
	fx.Invoke(handler.NewRouter),
)
