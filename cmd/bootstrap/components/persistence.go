package components

import (
	"agrirent/internal/infra/readstore"
	"agrirent/internal/infra/uow"
	"agrirent/internal/usecase/queries"
	"agrirent/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Booking views
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		// Availability reads
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReader)),
		),
	),
)
