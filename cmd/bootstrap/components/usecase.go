package components

import (
	"slotbook/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		usecase.NewBookingCommands,
		usecase.NewBookingQueries,
		usecase.NewCatalogCommands,
	),
)
