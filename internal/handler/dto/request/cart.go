package request

import (
	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Mode      string    `json:"mode" binding:"required,oneof=buy rent"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	// RentDays is only meaningful for rent mode; 0 falls back to one day.
	RentDays int `json:"rent_days" binding:"omitempty,min=0"`
}

type UpdateCartItemRequest struct {
	Mode string `json:"mode" binding:"required,oneof=buy rent"`
	// Quantities below one pass binding; the cart treats them as a
	// no-op rather than an error.
	Quantity int `json:"quantity"`
}

type RemoveCartItemRequest struct {
	Mode string `form:"mode" binding:"required,oneof=buy rent"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}
