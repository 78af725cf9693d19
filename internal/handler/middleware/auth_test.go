//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"airaa-jewels/internal/domain/user"
	"airaa-jewels/internal/handler/middleware"
	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/pkg/jwt"
	"airaa-jewels/internal/usecase"
	"airaa-jewels/tests/common/authtest"
	"airaa-jewels/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtHelper *authtest.JWTHelper
	userID    uuid.UUID
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	cfg := config.NewTestConfig()
	s.jwtHelper = authtest.NewJWTHelper(cfg.JWT)

	access, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	s.Require().NoError(err)
	refresh, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	s.Require().NoError(err)
	validator := usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, access, refresh))
	mw := middleware.NewAuthMiddleware(validator, cfg.Cookie)

	echoIdentity := func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"role":    string(role),
		})
	}

	s.router.GET("/protected", mw.RequireAuth(), echoIdentity)
	s.router.GET("/admin-only", mw.RequireAuth(), mw.RequireRoleAtLeast(user.RoleAdmin), echoIdentity)
	s.router.GET("/optional", mw.OptionalAuth(), echoIdentity)
	s.router.GET("/session", mw.GuestSession(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": middleware.GetCartSessionID(c)})
	})
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("accepts a valid bearer token", func() {
		token := s.jwtHelper.GenerateToken(s.T(), s.userID, user.RoleCustomer)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/protected", nil, token)

		var body struct {
			UserID uuid.UUID `json:"user_id"`
			Role   string    `json:"role"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.userID, body.UserID)
		s.Equal("customer", body.Role)
	})

	s.Run("rejects a missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/protected", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("rejects an expired token", func() {
		token := s.jwtHelper.CreateExpiredToken(s.T(), s.userID, user.RoleCustomer)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/protected", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("rejects a garbage token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/protected", nil, "not.a.jwt")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	s.Run("admin passes the role gate", func() {
		token := s.jwtHelper.GenerateToken(s.T(), s.userID, user.RoleAdmin)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin-only", nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("customer is forbidden", func() {
		token := s.jwtHelper.GenerateToken(s.T(), s.userID, user.RoleCustomer)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin-only", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("sets identity when the token is valid", func() {
		token := s.jwtHelper.GenerateToken(s.T(), s.userID, user.RoleCustomer)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, token)

		var body struct {
			UserID uuid.UUID `json:"user_id"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.userID, body.UserID)
	})

	s.Run("continues anonymously without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "")

		var body struct {
			UserID uuid.UUID `json:"user_id"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(uuid.Nil, body.UserID)
	})

	s.Run("continues anonymously on an invalid token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "bad-token")

		var body struct {
			UserID uuid.UUID `json:"user_id"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(uuid.Nil, body.UserID)
	})
}

func (s *AuthMiddlewareTestSuite) TestGuestSession() {
	s.Run("issues a session cookie on first visit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/session", nil, "")

		var body struct {
			SessionID string `json:"session_id"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotEmpty(body.SessionID)

		sessionCookie := httptest.ExtractCookie(rec, "cart_session")
		s.Require().NotNil(sessionCookie)
		s.Equal(body.SessionID, sessionCookie.Value)
	})

	s.Run("reuses an existing session cookie", func() {
		sessionID := uuid.NewString()
		cookies := []*http.Cookie{{Name: "cart_session", Value: sessionID}}

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/session", nil, cookies, "")

		var body struct {
			SessionID string `json:"session_id"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(sessionID, body.SessionID)

		s.Nil(httptest.ExtractCookie(rec, "cart_session"), "no fresh cookie expected")
	})
}
