package bootstrap

import (
	"airaa-jewels/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
		func(cfg config.Config) config.CheckoutConfig { return cfg.Checkout },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
	),
)
