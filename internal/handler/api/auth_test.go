//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"airaa-jewels/internal/handler/api"
	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/pkg/jwt"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/tests/common/builder"
	"airaa-jewels/tests/common/httptest"
	"airaa-jewels/tests/common/testutil"
	commandsmock "airaa-jewels/tests/mock/commands"
	queriesmock "airaa-jewels/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	cfg := config.NewTestConfig()
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, &jwt.Service{}, cfg.Cookie)

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Mock middleware behavior for /auth/me
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			c.Set("user_id", uuid.New())
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	reqBody := builder.NewAuthBuilder().BuildDTO()
	returnUser := builder.NewUserBuilder().BuildReadModel()
	expectedToken := "test-jwt-token"
	expectedRefresh := "test-refresh-token"

	s.Run("success: returns 200 OK for valid credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody, "").
			Return(&commands.LoginResult{
				UserID:    returnUser.ID,
				TokenPair: &commands.TokenPair{AccessToken: expectedToken, RefreshToken: expectedRefresh},
			}, nil).Times(1)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
			Return(returnUser, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnUser.Email, response.User.Email)
		s.Equal(expectedToken, response.AccessToken)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		bound := []testCaseAuth{
			{name: "email boundary OK (valid email)", mutate: testutil.Field("email", "valid@example.com"), expectCode: http.StatusOK},
			{name: "email boundary invalid (invalid email)", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary OK (8 chars)", mutate: testutil.Field("password", "password"), expectCode: http.StatusOK},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
		}

		missing := []testCaseAuth{
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
		}

		for _, tc := range append(bound, missing...) {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusOK {
					email, _ := requestMap["email"].(string)
					password, _ := requestMap["password"].(string)
					expectedReq := (&builder.AuthBuilder{Email: email, Password: password}).BuildDTO()
					s.mockCommands.EXPECT().Login(gomock.Any(), expectedReq, "").
						Return(&commands.LoginResult{
							UserID:    returnUser.ID,
							TokenPair: &commands.TokenPair{AccessToken: expectedToken, RefreshToken: expectedRefresh},
						}, nil)
					s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
						Return(returnUser, nil)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				if tc.expectCode == http.StatusOK {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid credentials",
				commandsError:  commands.ErrInvalidCredentials,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "user not found",
				commandsError:  commands.ErrUserNotFound,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "user inactive",
				commandsError:  commands.ErrUserInactive,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Account is inactive",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody, "").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"

	reqBody := builder.NewAuthBuilder().BuildRegisterDTO()
	returnUser := builder.NewUserBuilder().BuildReadModel()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).
			Return(&commands.LoginResult{
				UserID:    returnUser.ID,
				TokenPair: &commands.TokenPair{AccessToken: "tok", RefreshToken: "ref"},
			}, nil).Times(1)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
			Return(returnUser, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnUser.Email, response.User.Email)
	})

	s.Run("error: 409 Conflict when the email is taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).
			Return(nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already registered")
	})

	s.Run("error: 400 Bad Request when the display name is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("display_name", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: returns 204 No Content", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the current user", func() {
		returnUser := builder.NewUserBuilder().BuildReadModel()
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
			Return(returnUser, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnUser.Email, response.Email)
	})

	s.Run("error: 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 404 when the user no longer exists", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
