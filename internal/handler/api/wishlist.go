package api

import (
	"errors"
	"net/http"

	reqdto "airaa-jewels/internal/handler/dto/request"
	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/handler/middleware"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WishlistHandler struct {
	wishlistCommands commands.WishlistCommands
	wishlistQueries  queries.WishlistQueries
}

func NewWishlistHandler(
	wishlistCommands commands.WishlistCommands,
	wishlistQueries queries.WishlistQueries,
) *WishlistHandler {
	return &WishlistHandler{
		wishlistCommands: wishlistCommands,
		wishlistQueries:  wishlistQueries,
	}
}

// @Summary List wishlisted products
// @Tags wishlist
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.WishlistResponse
// @Router /wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.wishlistQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if items == nil {
		items = []*queries.ProductListItem{}
	}

	c.JSON(http.StatusOK, resdto.WishlistResponse{Items: items})
}

// @Summary Toggle a product on the wishlist
// @Tags wishlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.ToggleWishlistRequest true "Product to toggle"
// @Success 200 {object} resdto.ToggleWishlistResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /wishlist/toggle [post]
func (h *WishlistHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	inWishlist, err := h.wishlistCommands.Toggle(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.ToggleWishlistResponse{InWishlist: inWishlist})
}

// @Summary Remove a product from the wishlist
// @Tags wishlist
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /wishlist/{id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if err := h.wishlistCommands.Remove(c.Request.Context(), userID, productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
