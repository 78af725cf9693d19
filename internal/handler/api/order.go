package api

import (
	"errors"
	"net/http"

	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/handler/middleware"
	"airaa-jewels/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderQueries queries.OrderQueries
}

func NewOrderHandler(orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{orderQueries: orderQueries}
}

// @Summary List my orders
// @Description Lists the caller's orders, optionally filtered to purchases or rentals
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param kind query string false "Order kind" Enums(purchase, rental)
// @Success 200 {object} resdto.OrderListResponse
// @Router /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var kind *string
	if k := c.Query("kind"); k != "" {
		kind = &k
	}

	items, err := h.orderQueries.ListByUser(c.Request.Context(), userID, kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.NewOrderListResponse(items, nil))
}

// @Summary Get an order
// @Description Customers can only read their own orders; admins can read any
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, _ := middleware.GetUserRole(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), userID, role.String(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, queries.ErrOrderAccess):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "You do not have access to this order",
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
