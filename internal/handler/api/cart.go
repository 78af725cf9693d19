package api

import (
	"errors"
	"net/http"

	"airaa-jewels/internal/domain/cart"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/handler/middleware"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
	guestCarts   commands.GuestCartStore
}

func NewCartHandler(
	cartCommands commands.CartCommands,
	cartQueries queries.CartQueries,
	guestCarts commands.GuestCartStore,
) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
		guestCarts:   guestCarts,
	}
}

// cartActor resolves who the cart belongs to: the logged-in user when a
// valid token was presented, otherwise the guest session.
func cartActor(c *gin.Context) commands.CartActor {
	if userID, ok := middleware.GetUserID(c); ok {
		return commands.UserActor(userID)
	}
	return commands.GuestActor(middleware.GetCartSessionID(c))
}

// @Summary Get the current cart
// @Description Returns the cart with a fully priced quote
// @Tags cart
// @Produce json
// @Success 200 {object} queries.CartView
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	actor := cartActor(c)

	var (
		view *queries.CartView
		err  error
	)
	if actor.UserID != nil {
		view, err = h.cartQueries.GetByUser(c.Request.Context(), *actor.UserID)
	} else {
		var guestCart *cart.Cart
		guestCart, err = h.guestCarts.Get(c.Request.Context(), actor.SessionID)
		if err == nil {
			if guestCart == nil {
				guestCart = cart.NewCart(uuid.Nil)
			}
			view, err = h.cartQueries.ViewOf(c.Request.Context(), guestCart)
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Add an item to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.AddCartItemRequest true "Item to add"
// @Success 200 {object} queries.CartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.cartCommands.AddItem(c.Request.Context(), cartActor(c), req)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update a cart line's quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} queries.CartView
// @Failure 400 {object} map[string]string
// @Router /cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req reqdto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.cartCommands.UpdateItem(c.Request.Context(), cartActor(c), productID, req)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Param mode query string true "Line mode" Enums(buy, rent)
// @Success 200 {object} queries.CartView
// @Failure 400 {object} map[string]string
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req reqdto.RemoveCartItemRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid mode",
		})
		return
	}

	view, err := h.cartCommands.RemoveItem(c.Request.Context(), cartActor(c), productID, req.Mode)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Clear the cart
// @Tags cart
// @Produce json
// @Success 200 {object} queries.CartView
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.cartCommands.Clear(c.Request.Context(), cartActor(c))
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Apply a coupon to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} queries.CartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req reqdto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.cartCommands.ApplyCoupon(c.Request.Context(), cartActor(c), req.Code)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Remove the applied coupon
// @Tags cart
// @Produce json
// @Success 200 {object} queries.CartView
// @Router /cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	view, err := h.cartCommands.RemoveCoupon(c.Request.Context(), cartActor(c))
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) abortCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, commands.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Coupon not found",
		})
	case errors.Is(err, commands.ErrProductOutOfStock):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Product is out of stock",
		})
	case errors.Is(err, commands.ErrProductNotForRent):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Product is not available for rent",
		})
	case errors.Is(err, commands.ErrCouponNotActive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Coupon is not active",
		})
	case errors.Is(err, commands.ErrCouponBelowMinimum):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Order amount is below the coupon minimum",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
