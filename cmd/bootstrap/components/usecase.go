package components

import (
	"airaa-jewels/internal/domain/pricing"
	"airaa-jewels/internal/pkg/clock"
	"airaa-jewels/internal/usecase"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricing.NewDefaultCalculator,
		fx.As(new(pricing.Calculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCartCommands,
		commands.NewCheckoutCommands,
		commands.NewProductCommands,
		commands.NewCouponCommands,
		commands.NewOrderCommands,
		commands.NewSettingsCommands,
		commands.NewWishlistCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewProductQueries,
		queries.NewCartQueries,
		queries.NewCouponQueries,
		queries.NewSettingsQueries,
		queries.NewOrderQueries,
		queries.NewWishlistQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
