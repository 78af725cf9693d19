package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"airaa-jewels/internal/domain/user"
	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/pkg/cookie"
	"airaa-jewels/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	cookieCfg      config.CookieConfig
}

const (
	ctxUserIDKey    = "user_id"
	ctxUserRoleKey  = "user_role"
	ctxSessionIDKey = "cart_session_id"

	guestSessionCookie = "cart_session"
	// A week matches the redis-side cart TTL.
	guestSessionMaxAge = 7 * 24 * 60 * 60
)

var roleHierarchy = map[user.Role]int{
	user.RoleCustomer: 1,
	user.RoleAdmin:    2,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, cookieCfg config.CookieConfig) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		cookieCfg:      cookieCfg,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		userID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does
// not abort on failure. Cart endpoints use it so guests can shop.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			// Invalid token; continue without aborting.
			c.Next()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		c.Next()
	}
}

// GuestSession assigns a session cookie so anonymous visitors keep their
// cart across requests. Logged-in users carry one too until login merges
// the guest cart away.
func (m *AuthMiddleware) GuestSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(guestSessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(guestSessionCookie, sessionID, guestSessionMaxAge, "/", m.cookieCfg.Domain, m.cookieCfg.Secure, true)
		}
		c.Set(ctxSessionIDKey, sessionID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

func GetCartSessionID(c *gin.Context) string {
	sessionID, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return ""
	}
	id, _ := sessionID.(string)
	return id
}
