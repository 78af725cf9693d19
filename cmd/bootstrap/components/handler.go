package components

import (
	"airaa-jewels/internal/handler"
	"airaa-jewels/internal/handler/api"
	"airaa-jewels/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewWishlistHandler,
		api.NewOrderHandler,
		api.NewSettingsHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	catalog *api.CatalogHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	wishlist *api.WishlistHandler,
	order *api.OrderHandler,
	settings *api.SettingsHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Catalog:  catalog,
		Cart:     cart,
		Checkout: checkout,
		Wishlist: wishlist,
		Order:    order,
		Settings: settings,
		Admin:    admin,
	}
}
