package bootstrap

import (
	"airaa-jewels/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	JWTModule,
	PaymentModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
