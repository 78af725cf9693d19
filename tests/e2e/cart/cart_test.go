//go:build e2e

package cart_test

import (
	"net/http"
	"testing"

	"airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/usecase/queries"
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
	loginURL     = "/api/auth/login"
)

type cartSuite struct {
	e2e.SharedSuite

	ringID    uuid.UUID
	pendantID uuid.UUID
}

func TestCartSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(cartSuite))
}

func (s *cartSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	t := s.T()
	s.ringID = dbtest.CreateTestProduct(t, s.DB, "Diamond Ring", "rings", 180000)
	s.pendantID = dbtest.CreateTestProduct(t, s.DB, "Ruby Pendant", "pendants", 60000)
	dbtest.CreateTestCoupon(t, s.DB, "BIGSPEND", 50000, 1000000)
}

// guestSession grabs the cart_session cookie issued on first contact.
func (s *cartSuite) guestSession() []*http.Cookie {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	session := httptest.ExtractCookie(w, "cart_session")
	require.NotNil(t, session, "guest session cookie missing")
	return []*http.Cookie{session}
}

func (s *cartSuite) TestGuestCart() {
	s.Run("guest cart persists across requests", func() {
		t := s.T()
		cookies := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.ringID, Mode: "buy", Quantity: 1}, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, cartURL, nil, cookies, "")
		require.Equal(t, http.StatusOK, w.Code)

		var cart queries.CartView
		httptest.DecodeResponseBody(t, w.Body, &cart)
		require.Len(t, cart.Lines, 1)
		require.Equal(t, s.ringID, cart.Lines[0].ProductID)
	})

	s.Run("different sessions see different carts", func() {
		t := s.T()
		first := s.guestSession()
		second := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.ringID, Mode: "buy", Quantity: 1}, first, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, cartURL, nil, second, "")
		require.Equal(t, http.StatusOK, w.Code)

		var cart queries.CartView
		httptest.DecodeResponseBody(t, w.Body, &cart)
		require.Empty(t, cart.Lines)
	})

	s.Run("guest cart merges into the account on login", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "merger@example.com", "customer")
		cookies := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.ringID, Mode: "buy", Quantity: 2}, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "merger@example.com", Password: "password123"}, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var loginRes response.LoginResponse
		httptest.DecodeResponseBody(t, w.Body, &loginRes)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, loginRes.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)

		var cart queries.CartView
		httptest.DecodeResponseBody(t, w.Body, &cart)
		require.Len(t, cart.Lines, 1)
		require.Equal(t, s.ringID, cart.Lines[0].ProductID)
		require.Equal(t, 2, cart.Lines[0].Quantity)
	})
}

func (s *cartSuite) TestCartValidation() {
	s.Run("out of stock products cannot be added", func() {
		t := s.T()
		dbtest.SetProductStock(t, s.DB, s.pendantID, false)
		cookies := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.pendantID, Mode: "buy", Quantity: 1}, cookies, "")
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("products without a rent price cannot be rented", func() {
		t := s.T()
		cookies := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.ringID, Mode: "rent", Quantity: 1, RentDays: 2}, cookies, "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("coupon below its minimum order is rejected", func() {
		t := s.T()
		cookies := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.pendantID, Mode: "buy", Quantity: 1}, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, couponURL,
			request.ApplyCouponRequest{Code: "BIGSPEND"}, cookies, "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("percentage coupon discounts the subtotal", func() {
		t := s.T()
		dbtest.CreateTestPercentCoupon(t, s.DB, "PCT10", 10, 0)
		cookies := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.ringID, Mode: "buy", Quantity: 1}, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, couponURL,
			request.ApplyCouponRequest{Code: "PCT10"}, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cart queries.CartView
		httptest.DecodeResponseBody(t, w.Body, &cart)
		require.Equal(t, int64(180000), cart.Quote.SubtotalCents)
		require.Equal(t, int64(18000), cart.Quote.DiscountCents)
	})

	s.Run("unknown coupon codes return not found", func() {
		t := s.T()
		cookies := s.guestSession()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, cartItemsURL,
			request.AddCartItemRequest{ProductID: s.pendantID, Mode: "buy", Quantity: 1}, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, couponURL,
			request.ApplyCouponRequest{Code: "NOSUCHCODE"}, cookies, "")
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
