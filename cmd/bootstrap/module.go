package bootstrap

import (
	"slotbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	JWTModule,
	components.PersistenceModule,
	components.EngineModule,
	components.UseCaseModule,
	components.HandlerModule,
)
