//go:build e2e

package admin_test

import (
	"fmt"
	"net/http"
	"testing"

	"airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/tests/common/authtest"
	"airaa-jewels/tests/common/builder"
	"airaa-jewels/tests/common/dbtest"
	"airaa-jewels/tests/common/httptest"
	"airaa-jewels/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	settingsURL = "/api/admin/settings"
	couponsURL  = "/api/admin/coupons"
	productsURL = "/api/admin/products"
	ordersURL   = "/api/admin/orders"
)

type adminSuite struct {
	e2e.SharedSuite
	adminToken    string
	customerToken string
}

func TestAdminSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(adminSuite))
}

func (s *adminSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.adminToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", "admin")
	s.customerToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "customer@example.com", "customer")
}

func (s *adminSuite) TestAccessControl() {
	s.Run("customers cannot reach admin routes", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, settingsURL, nil, s.customerToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("unauthenticated requests are rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, settingsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *adminSuite) TestSettings() {
	s.Run("reads the seeded defaults", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, settingsURL, nil, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var view queries.SettingsView
		httptest.DecodeResponseBody(t, w.Body, &view)
		require.Equal(t, float64(18), view.TaxRatePercent)
		require.Equal(t, int64(500000), view.FreeShippingThresholdCents)
		require.Equal(t, int64(15000), view.ShippingFeeCents)
		require.True(t, view.CodEnabled)
	})

	s.Run("patch changes only the provided fields", func() {
		t := s.T()

		codEnabled := false
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, settingsURL,
			request.PatchSettingsRequest{CodEnabled: &codEnabled}, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var view queries.SettingsView
		httptest.DecodeResponseBody(t, w.Body, &view)
		require.False(t, view.CodEnabled)
		require.Equal(t, float64(18), view.TaxRatePercent, "untouched field changed")
	})

	s.Run("rejects invalid values", func() {
		t := s.T()

		negative := float64(-1)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, settingsURL,
			request.PatchSettingsRequest{TaxRatePercent: &negative}, s.adminToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("public settings endpoint reflects fixture updates", func() {
		t := s.T()

		dbtest.UpdateStoreSettings(t, s.DB, 12, 300000, 9900, true)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/settings", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var view queries.SettingsView
		httptest.DecodeResponseBody(t, w.Body, &view)
		require.Equal(t, float64(12), view.TaxRatePercent)
		require.Equal(t, int64(9900), view.ShippingFeeCents)
	})
}

func (s *adminSuite) TestCoupons() {
	s.Run("create, update and delete a coupon", func() {
		t := s.T()

		reqBody := builder.NewCouponBuilder().WithCode("FESTIVE500").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, couponsURL, reqBody, s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created queries.CouponView
		httptest.DecodeResponseBody(t, w.Body, &created)
		require.Equal(t, "FESTIVE500", created.Code)

		newMin := int64(200000)
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf("%s/%s", couponsURL, created.ID),
			request.UpdateCouponRequest{MinOrderCents: &newMin}, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var updated queries.CouponView
		httptest.DecodeResponseBody(t, w.Body, &updated)
		require.Equal(t, int64(200000), updated.MinOrderCents)
		require.Equal(t, "FESTIVE500", updated.Code, "code is immutable")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf("%s/%s", couponsURL, created.ID), nil, s.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, couponsURL, nil, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var listed []*queries.CouponView
		httptest.DecodeResponseBody(t, w.Body, &listed)
		require.Empty(t, listed)
	})

	s.Run("duplicate code is rejected", func() {
		t := s.T()

		reqBody := builder.NewCouponBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, couponsURL, reqBody, s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, couponsURL, reqBody, s.adminToken)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("an expired coupon cannot be applied to a cart", func() {
		t := s.T()

		reqBody := builder.NewCouponBuilder().WithCode("LASTYEAR").AsExpired().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, couponsURL, reqBody, s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		productID := dbtest.CreateTestProduct(t, s.DB, "Pearl Pendant", "pendants", 150000)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/cart/items",
			request.AddCartItemRequest{ProductID: productID, Mode: "buy", Quantity: 1}, s.customerToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/cart/coupon",
			request.ApplyCouponRequest{Code: "LASTYEAR"}, s.customerToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *adminSuite) TestProducts() {
	s.Run("create and update a product", func() {
		t := s.T()

		reqBody := builder.NewProductBuilder().WithName("Temple Necklace").AsRentable(20000, 100000).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, productsURL, reqBody, s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created queries.ProductView
		httptest.DecodeResponseBody(t, w.Body, &created)
		require.Equal(t, "Temple Necklace", created.Name)
		require.NotNil(t, created.RentPriceCents)

		newPrice := int64(275000)
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf("%s/%s", productsURL, created.ID),
			request.UpdateProductRequest{PriceCents: &newPrice}, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		// The storefront sees the change.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("/api/products/%s", created.ID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var public queries.ProductView
		httptest.DecodeResponseBody(t, w.Body, &public)
		require.Equal(t, int64(275000), public.PriceCents)
	})

	s.Run("stock toggle makes the product unbuyable", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Jhumka Earrings", "earrings", 80000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%s/stock?in_stock=false", productsURL, productID), nil, s.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/cart/items",
			request.AddCartItemRequest{ProductID: productID, Mode: "buy", Quantity: 1}, s.customerToken)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("unknown product update returns 404", func() {
		t := s.T()

		name := "Ghost"
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf("%s/%s", productsURL, uuid.New()),
			request.UpdateProductRequest{Name: &name}, s.adminToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *adminSuite) TestOrders() {
	s.Run("lists placed orders and updates fulfilment status", func() {
		t := s.T()

		orderID := s.placeCodOrder(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var list response.OrderListResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list.Items, 1)
		require.Equal(t, "processing", list.Items[0].Status)

		tracking := "TRK-774421"
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%s/status", ordersURL, orderID),
			request.UpdateOrderStatusRequest{Status: "shipped", TrackingNumber: &tracking}, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated queries.OrderView
		httptest.DecodeResponseBody(t, w.Body, &updated)
		require.Equal(t, "shipped", updated.Status)
		require.NotNil(t, updated.TrackingNumber)
		require.Equal(t, tracking, *updated.TrackingNumber)
	})

	s.Run("rejects a status that belongs to the other kind", func() {
		t := s.T()

		orderID := s.placeCodOrder(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%s/status", ordersURL, orderID),
			request.UpdateOrderStatusRequest{Status: "returned"}, s.adminToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("unknown order ID is a no-op", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%s/status", ordersURL, uuid.New()),
			request.UpdateOrderStatusRequest{Status: "shipped"}, s.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

// placeCodOrder walks the customer through a cash-on-delivery checkout
// and returns the resulting purchase order ID.
func (s *adminSuite) placeCodOrder(t *testing.T) uuid.UUID {
	t.Helper()

	productID := dbtest.CreateTestProduct(t, s.DB, "Kundan Choker", "necklaces", 220000)
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/cart/items",
		request.AddCartItemRequest{ProductID: productID, Mode: "buy", Quantity: 1}, s.customerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	key := uuid.NewString()
	checkoutBody := request.BeginCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Bengaluru"}
	w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/checkout/begin",
		checkoutBody, map[string]string{"Idempotency-Key": key}, s.customerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	confirmBody := request.ConfirmCheckoutRequest{PaymentMethod: "cod", ShippingAddress: "12 MG Road, Bengaluru"}
	w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/checkout/confirm",
		confirmBody, map[string]string{"Idempotency-Key": key}, s.customerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var confirm response.ConfirmCheckoutResponse
	httptest.DecodeResponseBody(t, w.Body, &confirm)
	require.Len(t, confirm.Orders, 1)
	return confirm.Orders[0].ID
}
