package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	productQueries queries.ProductQueries
}

func NewCatalogHandler(productQueries queries.ProductQueries) *CatalogHandler {
	return &CatalogHandler{productQueries: productQueries}
}

// @Summary List products
// @Description Browse the catalog with optional category, search, sort and cursor pagination
// @Tags catalog
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Name substring search"
// @Param sort query string false "Sort order" Enums(newest, price_asc, price_desc, rating)
// @Param limit query int false "Page size (max 100)"
// @Param after query string false "Pagination cursor"
// @Success 200 {object} resdto.ProductListResponse
// @Failure 400 {object} map[string]string
// @Router /products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	filter := queries.ProductFilter{
		Sort: queries.ProductSort(c.DefaultQuery("sort", string(queries.SortNewest))),
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
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

	items, next, err := h.productQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.NewProductListResponse(items, next))
}

// @Summary Get product details
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} queries.ProductView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *CatalogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := h.productQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrProductNotFound):
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

	c.JSON(http.StatusOK, product)
}
