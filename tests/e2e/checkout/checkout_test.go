//go:build e2e

package checkout_test

import (
	"net/http"
	"testing"

	"airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/tests/common/authtest"
	"airaa-jewels/tests/common/dbtest"
	"airaa-jewels/tests/common/httptest"
	"airaa-jewels/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	cartURL      = "/api/cart"
	cartItemsURL = "/api/cart/items"
	couponURL    = "/api/cart/coupon"
	beginURL     = "/api/checkout/begin"
	confirmURL   = "/api/checkout/confirm"
	ordersURL    = "/api/orders"
)

type checkoutSuite struct {
	e2e.SharedSuite

	necklaceID uuid.UUID
	earringsID uuid.UUID
	banglesID  uuid.UUID
	token      string
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(checkoutSuite))
}

func (s *checkoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	t := s.T()
	s.necklaceID = dbtest.CreateTestProduct(t, s.DB, "Gold Necklace", "necklaces", 250000)
	s.earringsID = dbtest.CreateTestProduct(t, s.DB, "Pearl Earrings", "earrings", 50000)
	s.banglesID = dbtest.CreateTestRentableProduct(t, s.DB, "Bridal Bangles", "bangles", 400000, 20000, 100000)
	dbtest.CreateTestCoupon(t, s.DB, "WELCOME350", 35000, 100000)

	s.token = authtest.CreateAndLogin(t, s.DB, s.Router, "shopper@example.com", "customer")
}

// fillCart puts the standard purchase fixture into the cart:
// one necklace plus two pairs of earrings with the welcome coupon,
// which prices out to 3500.00 subtotal, 150.00 shipping, 657.00 tax
// and 350.00 off.
func (s *checkoutSuite) fillCart() {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartItemsURL,
		request.AddCartItemRequest{ProductID: s.necklaceID, Mode: "buy", Quantity: 1}, s.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, cartItemsURL,
		request.AddCartItemRequest{ProductID: s.earringsID, Mode: "buy", Quantity: 2}, s.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, couponURL,
		request.ApplyCouponRequest{Code: "WELCOME350"}, s.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *checkoutSuite) TestCartQuote() {
	s.Run("quote reflects shipping, tax and discount", func() {
		t := s.T()
		s.fillCart()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cart queries.CartView
		httptest.DecodeResponseBody(t, w.Body, &cart)
		require.Len(t, cart.Lines, 2)
		require.Equal(t, int64(350000), cart.Quote.SubtotalCents)
		require.Equal(t, int64(15000), cart.Quote.ShippingCents)
		require.Equal(t, int64(65700), cart.Quote.TaxCents)
		require.Equal(t, int64(35000), cart.Quote.DiscountCents)
		require.Equal(t, int64(395700), cart.Quote.TotalCents)
		require.NotNil(t, cart.CouponCode)
		require.Equal(t, "WELCOME350", *cart.CouponCode)
	})

	s.Run("free shipping above the threshold", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.necklaceID, Mode: "buy", Quantity: 2}, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)

		var cart queries.CartView
		httptest.DecodeResponseBody(t, w.Body, &cart)
		require.Equal(t, int64(500000), cart.Quote.SubtotalCents)
		require.Equal(t, int64(0), cart.Quote.ShippingCents, "orders at the threshold ship free")
	})
}

func (s *checkoutSuite) TestCodCheckout() {
	s.Run("begin, confirm and replay", func() {
		t := s.T()
		s.fillCart()

		key := uuid.New().String()
		headers := map[string]string{"Idempotency-Key": key}
		beginReq := request.BeginCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Chennai"}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, beginURL, beginReq, headers, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var begin response.BeginCheckoutResponse
		httptest.DecodeResponseBody(t, w.Body, &begin)
		require.False(t, begin.Replayed)
		require.NotNil(t, begin.Quote)
		require.Equal(t, int64(395700), begin.Quote.TotalCents)
		require.Nil(t, begin.Payment, "cod checkouts have no payment intent")

		confirmReq := request.ConfirmCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Chennai"}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, confirmURL, confirmReq, headers, s.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var confirm response.ConfirmCheckoutResponse
		httptest.DecodeResponseBody(t, w.Body, &confirm)
		require.False(t, confirm.Replayed)
		require.Len(t, confirm.Orders, 1)
		order := confirm.Orders[0]
		require.Equal(t, "purchase", order.Kind)
		require.Equal(t, "cod", order.PaymentMethod)
		require.Equal(t, int64(395700), order.TotalCents)
		require.Len(t, order.Lines, 2)

		// Replaying the same key must not create a second order.
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, confirmURL, confirmReq, headers, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &confirm)
		require.True(t, confirm.Replayed)
		require.Len(t, confirm.Orders, 1)
		require.Equal(t, order.ID, confirm.Orders[0].ID)

		var orderCount int
		err := s.DB.QueryRow(t.Context(), "SELECT COUNT(*) FROM orders").Scan(&orderCount)
		require.NoError(t, err)
		require.Equal(t, 1, orderCount)

		// The cart is consumed by the confirm.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var cart queries.CartView
		httptest.DecodeResponseBody(t, w.Body, &cart)
		require.Empty(t, cart.Lines)
	})

	s.Run("cod rejected when disabled", func() {
		t := s.T()
		s.fillCart()
		dbtest.UpdateStoreSettings(t, s.DB, 18, 500000, 15000, false)

		headers := map[string]string{"Idempotency-Key": uuid.New().String()}
		beginReq := request.BeginCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Chennai"}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, beginURL, beginReq, headers, s.token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("empty cart cannot begin checkout", func() {
		t := s.T()

		headers := map[string]string{"Idempotency-Key": uuid.New().String()}
		beginReq := request.BeginCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Chennai"}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, beginURL, beginReq, headers, s.token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("missing idempotency key is rejected", func() {
		t := s.T()
		s.fillCart()

		beginReq := request.BeginCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Chennai"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, beginURL, beginReq, s.token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *checkoutSuite) TestGatewayCheckout() {
	s.Run("begin opens a payment intent and confirm records its reference", func() {
		t := s.T()
		s.fillCart()

		headers := map[string]string{"Idempotency-Key": uuid.New().String()}
		beginReq := request.BeginCheckoutRequest{PaymentMethod: "gateway", ShippingAddress: "12 MG Road, Chennai"}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, beginURL, beginReq, headers, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var begin response.BeginCheckoutResponse
		httptest.DecodeResponseBody(t, w.Body, &begin)
		require.NotNil(t, begin.Payment, "gateway checkouts get a payment intent")
		require.NotEmpty(t, begin.Payment.Reference)
		require.Equal(t, int64(395700), begin.Payment.AmountCents)
		require.NotEmpty(t, begin.Payment.Key, "widget key must reach the client")

		confirmReq := request.ConfirmCheckoutRequest{
			PaymentMethod:   "gateway",
			ShippingAddress: "12 MG Road, Chennai",
			PaymentRef:      &begin.Payment.Reference,
		}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, confirmURL, confirmReq, headers, s.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var confirm response.ConfirmCheckoutResponse
		httptest.DecodeResponseBody(t, w.Body, &confirm)
		require.Len(t, confirm.Orders, 1)
		require.NotNil(t, confirm.Orders[0].PaymentRef)
		require.Equal(t, begin.Payment.Reference, *confirm.Orders[0].PaymentRef)
	})

	s.Run("confirm without a payment reference is rejected", func() {
		t := s.T()
		s.fillCart()

		headers := map[string]string{"Idempotency-Key": uuid.New().String()}
		beginReq := request.BeginCheckoutRequest{PaymentMethod: "gateway", ShippingAddress: "12 MG Road, Chennai"}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, beginURL, beginReq, headers, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		confirmReq := request.ConfirmCheckoutRequest{PaymentMethod: "gateway", ShippingAddress: "12 MG Road, Chennai"}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, confirmURL, confirmReq, headers, s.token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *checkoutSuite) TestMixedCartSplitsOrders() {
	s.Run("buy and rent lines become separate orders", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.necklaceID, Mode: "buy", Quantity: 1}, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.banglesID, Mode: "rent", Quantity: 1, RentDays: 3}, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		headers := map[string]string{"Idempotency-Key": uuid.New().String()}
		beginReq := request.BeginCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Chennai"}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, beginURL, beginReq, headers, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		confirmReq := request.ConfirmCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Chennai"}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, confirmURL, confirmReq, headers, s.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var confirm response.ConfirmCheckoutResponse
		httptest.DecodeResponseBody(t, w.Body, &confirm)
		require.Len(t, confirm.Orders, 2)

		kinds := map[string]*queries.OrderView{}
		for _, o := range confirm.Orders {
			kinds[o.Kind] = o
		}
		require.Contains(t, kinds, "purchase")
		require.Contains(t, kinds, "rental")

		rental := kinds["rental"]
		require.Len(t, rental.Lines, 1)
		require.Equal(t, 3, rental.Lines[0].RentDays)
		require.Equal(t, int64(100000), rental.DepositCents, "rental order carries the security deposit")

		// Both orders show up in the user's history.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var list response.OrderListResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list.Items, 2)
	})
}
