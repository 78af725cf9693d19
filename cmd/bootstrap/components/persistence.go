package components

import (
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/infra/readstore"
	"airaa-jewels/internal/infra/sessioncart"
	"airaa-jewels/internal/infra/uow"
	"airaa-jewels/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	uow.NewPostgresUoW,
	sessioncart.NewRedisStore,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductReadStore)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartReadStore)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
		),
		fx.Annotate(
			readstore.NewSettingsReadStore,
			fx.As(new(queries.SettingsReadStore)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewWishlistReadStore,
			fx.As(new(queries.WishlistReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
