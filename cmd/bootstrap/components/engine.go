package components

import (
	"slotbook/internal/engine"
	"slotbook/internal/pkg/clock"

	"go.uber.org/fx"
)

var EngineModule = fx.Module("engine",
	fx.Provide(
		clock.NewRealClock,
		engine.NewCatalog,
		engine.NewLedger,
		engine.NewAvailability,
		engine.NewQueue,
	),
)
