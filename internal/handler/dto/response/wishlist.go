package response

import "airaa-jewels/internal/usecase/queries"

type WishlistResponse struct {
	Items []*queries.ProductListItem `json:"items"`
}

type ToggleWishlistResponse struct {
	InWishlist bool `json:"in_wishlist"`
}
