//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/handler/api"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/usecase/commands"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/tests/common/httptest"
	"airaa-jewels/tests/common/testutil"
	commandsmock "airaa-jewels/tests/mock/commands"
	queriesmock "airaa-jewels/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockCommands   *commandsmock.MockCartCommands
	mockQueries    *queriesmock.MockCartQueries
	mockGuestCarts *commandsmock.MockGuestCartStore
	handler        *api.CartHandler
	userID         uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.mockGuestCarts = commandsmock.NewMockGuestCartStore(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCommands, s.mockQueries, s.mockGuestCarts)

	// Mock middleware behavior: Authorization header authenticates,
	// X-Cart-Session simulates the guest session cookie.
	withActor := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if c.GetHeader("Authorization") != "" {
				c.Set("user_id", s.userID)
			}
			if sid := c.GetHeader("X-Cart-Session"); sid != "" {
				c.Set("cart_session_id", sid)
			}
			h(c)
		}
	}

	s.router.GET("/cart", withActor(s.handler.Get))
	s.router.POST("/cart/items", withActor(s.handler.AddItem))
	s.router.PATCH("/cart/items/:id", withActor(s.handler.UpdateItem))
	s.router.DELETE("/cart/items/:id", withActor(s.handler.RemoveItem))
	s.router.DELETE("/cart", withActor(s.handler.Clear))
	s.router.POST("/cart/coupon", withActor(s.handler.ApplyCoupon))
	s.router.DELETE("/cart/coupon", withActor(s.handler.RemoveCoupon))
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func emptyCartView() *queries.CartView {
	return &queries.CartView{
		Lines:     []queries.CartLineView{},
		UpdatedAt: time.Now(),
	}
}

func (s *CartHandlerTestSuite) TestGet() {
	s.Run("success: authenticated user reads the persisted cart", func() {
		view := emptyCartView()
		view.Quote.SubtotalCents = 250000
		s.mockQueries.EXPECT().
			GetByUser(gomock.Any(), s.userID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "bearer-token")

		var response queries.CartView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(250000), response.Quote.SubtotalCents)
	})

	s.Run("success: guest session reads the session cart", func() {
		sessionID := uuid.NewString()
		guestCart := cart.NewCart(uuid.Nil)
		s.mockGuestCarts.EXPECT().
			Get(gomock.Any(), sessionID).
			Return(guestCart, nil).Times(1)
		s.mockQueries.EXPECT().
			ViewOf(gomock.Any(), guestCart).
			Return(emptyCartView(), nil).Times(1)

		headers := map[string]string{"X-Cart-Session": sessionID}
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/cart", nil, headers, "")

		var response queries.CartView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Lines)
	})

	s.Run("success: unknown guest session yields an empty cart", func() {
		sessionID := uuid.NewString()
		s.mockGuestCarts.EXPECT().
			Get(gomock.Any(), sessionID).
			Return(nil, nil).Times(1)
		s.mockQueries.EXPECT().
			ViewOf(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *cart.Cart) (*queries.CartView, error) {
				s.Require().NotNil(c)
				s.Empty(c.Lines())
				return emptyCartView(), nil
			}).Times(1)

		headers := map[string]string{"X-Cart-Session": sessionID}
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/cart", nil, headers, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"
	reqBody := map[string]any{
		"product_id": uuid.NewString(),
		"mode":       "buy",
		"quantity":   2,
	}

	s.Run("success: returns the updated cart view", func() {
		view := emptyCartView()
		view.Quote.ItemCount = 2
		s.mockCommands.EXPECT().
			AddItem(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, actor commands.CartActor, _ any) (*queries.CartView, error) {
				s.Require().NotNil(actor.UserID)
				s.Equal(s.userID, *actor.UserID)
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response queries.CartView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(2, response.Quote.ItemCount)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "product not found", commandsError: commands.ErrProductNotFound, expectedStatus: http.StatusNotFound},
			{name: "out of stock", commandsError: commands.ErrProductOutOfStock, expectedStatus: http.StatusConflict},
			{name: "not available for rent", commandsError: commands.ErrProductNotForRent, expectedStatus: http.StatusUnprocessableEntity},
			{name: "domain validation", commandsError: commands.ErrDomainValidation, expectedStatus: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					AddItem(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})

	s.Run("error: 400 Bad Request on binding failures", func() {
		testCases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing product_id", mutate: testutil.Field("product_id", nil)},
			{name: "invalid mode", mutate: testutil.Field("mode", "lease")},
			{name: "zero quantity", mutate: testutil.Field("quantity", 0)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *CartHandlerTestSuite) TestUpdateItem() {
	productID := uuid.New()
	url := "/cart/items/" + productID.String()

	s.Run("success: updates the line quantity", func() {
		reqBody := map[string]any{"mode": "buy", "quantity": 3}
		s.mockCommands.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any(), productID, gomock.Any()).
			Return(emptyCartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: quantities below one reach the no-op guard", func() {
		for _, qty := range []int{0, -1} {
			reqBody := map[string]any{"mode": "buy", "quantity": qty}
			s.mockCommands.EXPECT().
				UpdateItem(gomock.Any(), gomock.Any(), productID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ commands.CartActor, _ uuid.UUID, req reqdto.UpdateCartItemRequest) (*queries.CartView, error) {
					s.Equal(qty, req.Quantity)
					return emptyCartView(), nil
				}).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}
	})

	s.Run("error: 400 for a malformed product ID", func() {
		reqBody := map[string]any{"mode": "buy", "quantity": 3}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/not-a-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product ID")
	})
}

func (s *CartHandlerTestSuite) TestRemoveItem() {
	productID := uuid.New()

	s.Run("success: removes the line for the given mode", func() {
		s.mockCommands.EXPECT().
			RemoveItem(gomock.Any(), gomock.Any(), productID, "rent").
			Return(emptyCartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/"+productID.String()+"?mode=rent", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when the mode query is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/"+productID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid mode")
	})
}

func (s *CartHandlerTestSuite) TestCoupon() {
	s.Run("success: applies a coupon", func() {
		code := "WELCOME350"
		view := emptyCartView()
		view.CouponCode = &code
		s.mockCommands.EXPECT().
			ApplyCoupon(gomock.Any(), gomock.Any(), code).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/coupon", map[string]any{"code": code}, "bearer-token")

		var response queries.CartView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.CouponCode)
		s.Equal(code, *response.CouponCode)
	})

	s.Run("error: maps coupon errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "unknown code", commandsError: commands.ErrCouponNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Coupon not found"},
			{name: "outside validity window", commandsError: commands.ErrCouponNotActive, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "not active"},
			{name: "below minimum order", commandsError: commands.ErrCouponBelowMinimum, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "below the coupon minimum"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					ApplyCoupon(gomock.Any(), gomock.Any(), "SOMECODE").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/coupon", map[string]any{"code": "SOMECODE"}, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("success: removes the applied coupon", func() {
		s.mockCommands.EXPECT().
			RemoveCoupon(gomock.Any(), gomock.Any()).
			Return(emptyCartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/coupon", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
