package bootstrap

import (
	"airaa-jewels/internal/infra/payment"
	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			func(cfg config.PaymentConfig) *payment.Client { return payment.NewClient(cfg) },
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
