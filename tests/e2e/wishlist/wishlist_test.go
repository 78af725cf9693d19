//go:build e2e

package wishlist_test

import (
	"fmt"
	"net/http"
	"testing"

	"airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/tests/common/authtest"
	"airaa-jewels/tests/common/dbtest"
	"airaa-jewels/tests/common/httptest"
	"airaa-jewels/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	wishlistURL = "/api/wishlist"
	toggleURL   = "/api/wishlist/toggle"
)

type wishlistSuite struct {
	e2e.SharedSuite
	token     string
	productID uuid.UUID
}

func TestWishlistSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(wishlistSuite))
}

func (s *wishlistSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.token = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "wisher@example.com", "customer")
	s.productID = dbtest.CreateTestProduct(s.T(), s.DB, "Polki Ring", "rings", 120000)
}

func (s *wishlistSuite) TestToggle() {
	s.Run("toggling adds then removes", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, toggleURL,
			request.ToggleWishlistRequest{ProductID: s.productID}, s.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var toggled response.ToggleWishlistResponse
		httptest.DecodeResponseBody(t, w.Body, &toggled)
		require.True(t, toggled.InWishlist)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, wishlistURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var list response.WishlistResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list.Items, 1)
		require.Equal(t, s.productID, list.Items[0].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, toggleURL,
			request.ToggleWishlistRequest{ProductID: s.productID}, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		httptest.DecodeResponseBody(t, w.Body, &toggled)
		require.False(t, toggled.InWishlist)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, wishlistURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Empty(t, list.Items)
	})

	s.Run("unknown product cannot be wishlisted", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, toggleURL,
			request.ToggleWishlistRequest{ProductID: uuid.New()}, s.token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("wishlists are per user", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, toggleURL,
			request.ToggleWishlistRequest{ProductID: s.productID}, s.token)
		require.Equal(t, http.StatusOK, w.Code)

		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", "customer")
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, wishlistURL, nil, otherToken)
		require.Equal(t, http.StatusOK, w.Code)
		var list response.WishlistResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Empty(t, list.Items)
	})
}

func (s *wishlistSuite) TestRemove() {
	s.Run("remove deletes the entry", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, toggleURL,
			request.ToggleWishlistRequest{ProductID: s.productID}, s.token)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf("%s/%s", wishlistURL, s.productID), nil, s.token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, wishlistURL, nil, s.token)
		require.Equal(t, http.StatusOK, w.Code)
		var list response.WishlistResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Empty(t, list.Items)
	})

	s.Run("removing an absent entry is a no-op", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf("%s/%s", wishlistURL, s.productID), nil, s.token)
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func (s *wishlistSuite) TestRequiresAuth() {
	s.Run("all wishlist routes need a login", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, wishlistURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, toggleURL,
			request.ToggleWishlistRequest{ProductID: s.productID}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
