package api

import (
	"net/http"

	"airaa-jewels/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the public storefront settings (tax rate,
// shipping fee and threshold, COD availability).
type SettingsHandler struct {
	settingsQueries queries.SettingsQueries
}

func NewSettingsHandler(settingsQueries queries.SettingsQueries) *SettingsHandler {
	return &SettingsHandler{settingsQueries: settingsQueries}
}

// @Summary Get storefront settings
// @Tags settings
// @Produce json
// @Success 200 {object} queries.SettingsView
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	view, err := h.settingsQueries.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}
