package api

import (
	"errors"
	"net/http"

	reqdto "airaa-jewels/internal/handler/dto/request"
	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/handler/middleware"
	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/pkg/cookie"
	"airaa-jewels/internal/pkg/jwt"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	jwtService   *jwt.Service
	cookieCfg    config.CookieConfig
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	jwtService *jwt.Service,
	cookieCfg config.CookieConfig,
) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		jwtService:   jwtService,
		cookieCfg:    cookieCfg,
	}
}

// @Summary Register a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Registration request"
// @Success 201 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email is already registered",
			})
		case errors.Is(err, commands.ErrAuthenticationFailed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	h.setTokenCookies(c, result.TokenPair)
	user, err := h.userQueries.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		// Account exists and tokens are issued; the profile view is best-effort.
		user = nil
	}

	c.JSON(http.StatusCreated, resdto.LoginResponse{
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
		User:         user,
	})
}

// @Summary User login
// @Description Login with email and password; any guest cart on the session merges into the account cart
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	sessionID := middleware.GetCartSessionID(c)
	result, err := h.authCommands.Login(c.Request.Context(), req, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	h.setTokenCookies(c, result.TokenPair)
	user, err := h.userQueries.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		user = nil
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
		User:         user,
	})
}

// @Summary Refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest true "Refresh request"
// @Success 200 {object} resdto.RefreshResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := cookie.GetRefreshToken(c)
	if refreshToken == "" {
		var req reqdto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Refresh token required",
			})
			return
		}
		refreshToken = req.RefreshToken
	}

	pair, err := h.authCommands.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired refresh token",
		})
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, resdto.RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// @Summary User logout
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	user, err := h.userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, queries.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, pair *commands.TokenPair) {
	cookie.SetTokenCookies(
		c,
		h.cookieCfg,
		pair.AccessToken,
		pair.RefreshToken,
		h.jwtService.AccessTokenDuration(),
		h.jwtService.RefreshTokenDuration(),
	)
}
