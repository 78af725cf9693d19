package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "airaa-jewels/internal/handler/dto/request"
	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler groups the store-management endpoints: settings, coupon
// and product maintenance, and order fulfilment.
type AdminHandler struct {
	settingsCommands commands.SettingsCommands
	settingsQueries  queries.SettingsQueries
	couponCommands   commands.CouponCommands
	couponQueries    queries.CouponQueries
	productCommands  commands.ProductCommands
	orderCommands    commands.OrderCommands
	orderQueries     queries.OrderQueries
}

func NewAdminHandler(
	settingsCommands commands.SettingsCommands,
	settingsQueries queries.SettingsQueries,
	couponCommands commands.CouponCommands,
	couponQueries queries.CouponQueries,
	productCommands commands.ProductCommands,
	orderCommands commands.OrderCommands,
	orderQueries queries.OrderQueries,
) *AdminHandler {
	return &AdminHandler{
		settingsCommands: settingsCommands,
		settingsQueries:  settingsQueries,
		couponCommands:   couponCommands,
		couponQueries:    couponQueries,
		productCommands:  productCommands,
		orderCommands:    orderCommands,
		orderQueries:     orderQueries,
	}
}

// @Summary Get store settings
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.SettingsView
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	view, err := h.settingsQueries.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Patch store settings
// @Description Only provided fields change; the merged result is validated before applying
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.PatchSettingsRequest true "Settings patch"
// @Success 200 {object} queries.SettingsView
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/settings [patch]
func (h *AdminHandler) PatchSettings(c *gin.Context) {
	var req reqdto.PatchSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.settingsCommands.Patch(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid settings values",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List coupons
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.CouponView
// @Router /admin/coupons [get]
func (h *AdminHandler) ListCoupons(c *gin.Context) {
	views, err := h.couponQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if views == nil {
		views = []*queries.CouponView{}
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Create a coupon
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCouponRequest true "Coupon to create"
// @Success 201 {object} queries.CouponView
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/coupons [post]
func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.couponCommands.Create(c.Request.Context(), req)
	if err != nil {
		h.abortCouponError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Update a coupon
// @Description The code is immutable; carts reference coupons by code
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body reqdto.UpdateCouponRequest true "Fields to update"
// @Success 200 {object} queries.CouponView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/coupons/{id} [put]
func (h *AdminHandler) UpdateCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon ID",
		})
		return
	}

	var req reqdto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.couponCommands.Update(c.Request.Context(), id, req)
	if err != nil {
		h.abortCouponError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete a coupon
// @Description Carts holding the coupon keep its code but lose the discount
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id} [delete]
func (h *AdminHandler) DeleteCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coupon ID",
		})
		return
	}

	if err := h.couponCommands.Delete(c.Request.Context(), id); err != nil {
		h.abortCouponError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create a product
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateProductRequest true "Product to create"
// @Success 201 {object} queries.ProductView
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.productCommands.Create(c.Request.Context(), req)
	if err != nil {
		h.abortProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Update a product
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} queries.ProductView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req reqdto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.productCommands.Update(c.Request.Context(), id, req)
	if err != nil {
		h.abortProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Set product stock status
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param in_stock query bool true "Stock status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id}/stock [patch]
func (h *AdminHandler) SetProductStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	inStock, err := strconv.ParseBool(c.Query("in_stock"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "in_stock must be true or false",
		})
		return
	}

	if err := h.productCommands.SetInStock(c.Request.Context(), id, inStock); err != nil {
		h.abortProductError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List all orders
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param kind query string false "Order kind" Enums(purchase, rental)
// @Param status query string false "Order status"
// @Param limit query int false "Page size (max 100)"
// @Param after query string false "Pagination cursor"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} map[string]string
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var filter queries.OrderFilter
	if kind := c.Query("kind"); kind != "" {
		filter.Kind = &kind
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
		filter.Limit = limit
	}
	if after := c.Query("after"); after != "" {
		filter.After = &queries.Cursor{After: after}
	}

	items, next, err := h.orderQueries.ListAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.NewOrderListResponse(items, next))
}

// @Summary Update order status
// @Description An unknown order ID is a no-op and returns 204
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} queries.OrderView
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req reqdto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.orderCommands.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidOrderStatus):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid status for this order kind",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	if view == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AdminHandler) abortCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDuplicateCouponCode):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Coupon code already exists",
		})
	case errors.Is(err, queries.ErrCouponNotFound), errors.Is(err, commands.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Coupon not found",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid coupon data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *AdminHandler) abortProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrProductNotFound), errors.Is(err, queries.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid product data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
