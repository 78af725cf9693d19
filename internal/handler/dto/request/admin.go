package request

import "time"

type PatchSettingsRequest struct {
	TaxRatePercent             *float64 `json:"tax_rate_percent,omitempty"`
	FreeShippingThresholdCents *int64   `json:"free_shipping_threshold_cents,omitempty"`
	ShippingFeeCents           *int64   `json:"shipping_fee_cents,omitempty"`
	CodEnabled                 *bool    `json:"cod_enabled,omitempty"`
}

type CreateCouponRequest struct {
	Code           string     `json:"code" binding:"required"`
	AmountOffCents *int64     `json:"amount_off_cents,omitempty"`
	PercentOff     *float64   `json:"percent_off,omitempty"`
	MinOrderCents  int64      `json:"min_order_cents" binding:"min=0"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidTo        *time.Time `json:"valid_to,omitempty"`
}

type UpdateCouponRequest struct {
	AmountOffCents *int64     `json:"amount_off_cents,omitempty"`
	PercentOff     *float64   `json:"percent_off,omitempty"`
	MinOrderCents  *int64     `json:"min_order_cents,omitempty"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidTo        *time.Time `json:"valid_to,omitempty"`
}

type CreateProductRequest struct {
	Name                 string `json:"name" binding:"required,max=200"`
	Category             string `json:"category" binding:"required"`
	PriceCents           int64  `json:"price_cents" binding:"min=0"`
	RentPriceCents       *int64 `json:"rent_price_cents,omitempty"`
	SecurityDepositCents int64  `json:"security_deposit_cents" binding:"min=0"`
	InStock              bool   `json:"in_stock"`
}

type UpdateProductRequest struct {
	Name                 *string `json:"name,omitempty"`
	Category             *string `json:"category,omitempty"`
	PriceCents           *int64  `json:"price_cents,omitempty"`
	RentPriceCents       *int64  `json:"rent_price_cents,omitempty"`
	SecurityDepositCents *int64  `json:"security_deposit_cents,omitempty"`
	InStock              *bool   `json:"in_stock,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status         string  `json:"status" binding:"required"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}
