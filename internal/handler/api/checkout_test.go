//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"airaa-jewels/internal/handler/api"
	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/tests/common/httptest"
	commandsmock "airaa-jewels/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockGateway  *commandsmock.MockPaymentGateway
	handler      *api.CheckoutHandler
	userID       uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockGateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands, s.mockGateway)

	// Mock middleware behavior: checkout routes always run authenticated.
	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.userID)
			h(c)
		}
	}

	s.router.POST("/checkout/begin", authed(s.handler.Begin))
	s.router.POST("/checkout/confirm", authed(s.handler.Confirm))
	s.router.GET("/checkout/payment/health", s.handler.PaymentHealth)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func testQuoteView() queries.QuoteView {
	return queries.QuoteView{
		SubtotalCents: 350000,
		ShippingCents: 15000,
		TaxCents:      65700,
		DiscountCents: 35000,
		TotalCents:    395700,
		ItemCount:     3,
	}
}

func testOrderView(kind string) *queries.OrderView {
	return &queries.OrderView{
		ID:            uuid.New(),
		Kind:          kind,
		Status:        "processing",
		TotalCents:    395700,
		PaymentMethod: "cod",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func idempotencyHeader(key string) map[string]string {
	return map[string]string{"Idempotency-Key": key}
}

func (s *CheckoutHandlerTestSuite) TestBegin() {
	url := "/checkout/begin"
	reqBody := map[string]any{
		"payment_method":   "cod",
		"shipping_address": "12 MG Road, Bengaluru",
	}

	s.Run("success: cash on delivery returns the quote without a payment intent", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().
			Begin(gomock.Any(), s.userID, gomock.Any(), key).
			Return(&commands.BeginCheckoutResult{
				Quote:         testQuoteView(),
				PaymentMethod: "cod",
			}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(key.String()), "bearer-token")

		var response resdto.BeginCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.Quote)
		s.Equal(int64(395700), response.Quote.TotalCents)
		s.Nil(response.Payment)
		s.False(response.Replayed)
	})

	s.Run("success: gateway payment returns the payment intent", func() {
		key := uuid.New()
		gatewayBody := map[string]any{
			"payment_method":   "gateway",
			"shipping_address": "12 MG Road, Bengaluru",
		}
		s.mockCommands.EXPECT().
			Begin(gomock.Any(), s.userID, gomock.Any(), key).
			Return(&commands.BeginCheckoutResult{
				Quote:         testQuoteView(),
				PaymentMethod: "gateway",
				Payment: &commands.PaymentIntent{
					Reference:   "pay_abc123",
					AmountCents: 395700,
					Currency:    "INR",
					Key:         "rzp_test_client_key",
				},
			}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, gatewayBody, idempotencyHeader(key.String()), "bearer-token")

		var response resdto.BeginCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.Payment)
		s.Equal("pay_abc123", response.Payment.Reference)
		s.Equal(int64(395700), response.Payment.AmountCents)
		s.Equal("rzp_test_client_key", response.Payment.Key)
	})

	s.Run("success: replay omits the quote and carries the completed order", func() {
		key := uuid.New()
		order := testOrderView("purchase")
		s.mockCommands.EXPECT().
			Begin(gomock.Any(), s.userID, gomock.Any(), key).
			Return(&commands.BeginCheckoutResult{
				PaymentMethod: "cod",
				IsReplayed:    true,
				Order:         order,
			}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(key.String()), "bearer-token")

		var response resdto.BeginCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
		s.Nil(response.Quote)
		s.Require().NotNil(response.Order)
		s.Equal(order.ID, response.Order.ID)
	})

	s.Run("error: 400 when the idempotency key is missing or malformed", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header is required")

		rec = httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader("not-a-uuid"), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "valid UUID")
	})

	s.Run("error: 400 for an unsupported payment method", func() {
		badBody := map[string]any{
			"payment_method":   "bitcoin",
			"shipping_address": "12 MG Road, Bengaluru",
		}
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, badBody, idempotencyHeader(uuid.NewString()), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "empty cart", commandsError: commands.ErrCartEmpty, expectedStatus: http.StatusUnprocessableEntity},
			{name: "cod disabled", commandsError: commands.ErrCodDisabled, expectedStatus: http.StatusUnprocessableEntity},
			{name: "payment declined", commandsError: commands.ErrPaymentDeclined, expectedStatus: http.StatusPaymentRequired},
			{name: "gateway unavailable", commandsError: commands.ErrPaymentUnavailable, expectedStatus: http.StatusServiceUnavailable},
			{name: "conflicting replay", commandsError: commands.ErrDuplicateCheckout, expectedStatus: http.StatusConflict},
			{name: "internal error", commandsError: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					Begin(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(uuid.NewString()), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *CheckoutHandlerTestSuite) TestConfirm() {
	url := "/checkout/confirm"
	reqBody := map[string]any{
		"payment_method":   "cod",
		"shipping_address": "12 MG Road, Bengaluru",
	}

	s.Run("success: 201 Created with the placed orders", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().
			Confirm(gomock.Any(), s.userID, gomock.Any(), key).
			Return(&commands.ConfirmCheckoutResult{
				Orders: []*queries.OrderView{testOrderView("purchase"), testOrderView("rental")},
			}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(key.String()), "bearer-token")

		var response resdto.ConfirmCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Len(response.Orders, 2)
		s.False(response.Replayed)
	})

	s.Run("success: 200 OK when replaying a completed confirmation", func() {
		key := uuid.New()
		order := testOrderView("purchase")
		s.mockCommands.EXPECT().
			Confirm(gomock.Any(), s.userID, gomock.Any(), key).
			Return(&commands.ConfirmCheckoutResult{
				Orders:     []*queries.OrderView{order},
				IsReplayed: true,
			}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(key.String()), "bearer-token")

		var response resdto.ConfirmCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
		s.Require().Len(response.Orders, 1)
		s.Equal(order.ID, response.Orders[0].ID)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "confirm before begin", commandsError: commands.ErrCheckoutNotStarted, expectedStatus: http.StatusConflict, expectedMsg: "not started"},
			{name: "missing payment reference", commandsError: commands.ErrPaymentNotConfirmed, expectedStatus: http.StatusBadRequest, expectedMsg: "Payment reference"},
			{name: "empty cart", commandsError: commands.ErrCartEmpty, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "Cart is empty"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					Confirm(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(uuid.NewString()), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 400 when the idempotency key is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header is required")
	})
}

func (s *CheckoutHandlerTestSuite) TestPaymentHealth() {
	url := "/checkout/payment/health"

	s.Run("success: reports ok when the gateway responds", func() {
		s.mockGateway.EXPECT().Health(gomock.Any()).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("ok", response["status"])
	})

	s.Run("error: 503 when the gateway is unreachable", func() {
		s.mockGateway.EXPECT().Health(gomock.Any()).Return(errors.New("connection refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusServiceUnavailable, rec.Code)

		var response map[string]string
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal("unavailable", response["status"])
	})
}
