package components

import (
	"agrirent/internal/domain/booking"
	"agrirent/internal/pkg/clock"
	"agrirent/internal/pkg/config"
	"agrirent/internal/usecase/commands"
	"agrirent/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBookingFactory,
)

func NewBookingFactory(cfg config.Config, clk clock.Clock) *booking.Factory {
	return booking.NewFactory(clk, cfg.Booking.HoldTTL, cfg.Booking.WindowDays, cfg.Booking.MaxDates)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewPaymentUseCase,
		commands.NewSweeperUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)
