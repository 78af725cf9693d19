package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"airaa-jewels/internal/domain/user"
	"airaa-jewels/internal/handler/api"
	"airaa-jewels/internal/handler/middleware"
	"airaa-jewels/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Catalog  *api.CatalogHandler
	Cart     *api.CartHandler
	Checkout *api.CheckoutHandler
	Wishlist *api.WishlistHandler
	Order    *api.OrderHandler
	Settings *api.SettingsHandler
	Admin    *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		auth.Use(authMiddleware.GuestSession())
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/products", Handler: h.Catalog.List},
			{Method: http.MethodGet, Path: "/products/:id", Handler: h.Catalog.GetByID},
			{Method: http.MethodGet, Path: "/settings", Handler: h.Settings.Get},
		})

		// Cart works for guests and logged-in users alike.
		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.GuestSession(), authMiddleware.OptionalAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
				{Method: http.MethodDelete, Path: "", Handler: h.Cart.Clear},
				{Method: http.MethodPost, Path: "/items", Handler: h.Cart.AddItem},
				{Method: http.MethodPatch, Path: "/items/:id", Handler: h.Cart.UpdateItem},
				{Method: http.MethodDelete, Path: "/items/:id", Handler: h.Cart.RemoveItem},
				{Method: http.MethodPost, Path: "/coupon", Handler: h.Cart.ApplyCoupon},
				{Method: http.MethodDelete, Path: "/coupon", Handler: h.Cart.RemoveCoupon},
			})
		}

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.RequireAuth())
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "/begin", Handler: h.Checkout.Begin},
				{Method: http.MethodPost, Path: "/confirm", Handler: h.Checkout.Confirm},
				{Method: http.MethodGet, Path: "/payment/health", Handler: h.Checkout.PaymentHealth},
			})
		}

		wishlist := apiGroup.Group("/wishlist")
		wishlist.Use(authMiddleware.RequireAuth())
		{
			addRoutes(wishlist, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Wishlist.List},
				{Method: http.MethodPost, Path: "/toggle", Handler: h.Wishlist.Toggle},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Wishlist.Remove},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Order.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.GetByID},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/settings", Handler: h.Admin.GetSettings},
				{Method: http.MethodPatch, Path: "/settings", Handler: h.Admin.PatchSettings},
				{Method: http.MethodGet, Path: "/coupons", Handler: h.Admin.ListCoupons},
				{Method: http.MethodPost, Path: "/coupons", Handler: h.Admin.CreateCoupon},
				{Method: http.MethodPut, Path: "/coupons/:id", Handler: h.Admin.UpdateCoupon},
				{Method: http.MethodDelete, Path: "/coupons/:id", Handler: h.Admin.DeleteCoupon},
				{Method: http.MethodPost, Path: "/products", Handler: h.Admin.CreateProduct},
				{Method: http.MethodPut, Path: "/products/:id", Handler: h.Admin.UpdateProduct},
				{Method: http.MethodPatch, Path: "/products/:id/stock", Handler: h.Admin.SetProductStock},
				{Method: http.MethodGet, Path: "/orders", Handler: h.Admin.ListOrders},
				{Method: http.MethodPatch, Path: "/orders/:id/status", Handler: h.Admin.UpdateOrderStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
