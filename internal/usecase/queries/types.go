package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ProductView struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Category             string    `json:"category"`
	PriceCents           int64     `json:"price_cents"`
	RentPriceCents       *int64    `json:"rent_price_cents,omitempty"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
	InStock              bool      `json:"in_stock"`
	Rating               float64   `json:"rating"`
	ReviewCount          int       `json:"review_count"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type ProductListItem struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	PriceCents     int64     `json:"price_cents"`
	RentPriceCents *int64    `json:"rent_price_cents,omitempty"`
	InStock        bool      `json:"in_stock"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"review_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type CartLineView struct {
	ProductID            uuid.UUID `json:"product_id"`
	ProductName          string    `json:"product_name"`
	Mode                 string    `json:"mode"`
	Quantity             int       `json:"quantity"`
	UnitPriceCents       int64     `json:"unit_price_cents"`
	RentPriceCents       int64     `json:"rent_price_cents"`
	RentDays             int       `json:"rent_days"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
	AmountCents          int64     `json:"amount_cents"`
}

type QuoteView struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TotalCents    int64 `json:"total_cents"`
	DepositCents  int64 `json:"deposit_cents"`
	ItemCount     int   `json:"item_count"`
}

type CartView struct {
	Lines      []CartLineView `json:"lines"`
	CouponCode *string        `json:"coupon_code,omitempty"`
	Quote      QuoteView      `json:"quote"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type OrderLineView struct {
	ProductID            uuid.UUID `json:"product_id"`
	ProductName          string    `json:"product_name"`
	Quantity             int       `json:"quantity"`
	UnitPriceCents       int64     `json:"unit_price_cents"`
	RentPriceCents       int64     `json:"rent_price_cents"`
	RentDays             int       `json:"rent_days"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
}

type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Kind            string          `json:"kind"`
	Status          string          `json:"status"`
	Lines           []OrderLineView `json:"lines"`
	SubtotalCents   int64           `json:"subtotal_cents"`
	ShippingCents   int64           `json:"shipping_cents"`
	TaxCents        int64           `json:"tax_cents"`
	DiscountCents   int64           `json:"discount_cents"`
	TotalCents      int64           `json:"total_cents"`
	DepositCents    int64           `json:"deposit_cents"`
	CouponCode      *string         `json:"coupon_code,omitempty"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentRef      *string         `json:"payment_ref,omitempty"`
	TrackingNumber  *string         `json:"tracking_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	ItemCount  int       `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type CouponView struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	AmountOffCents *int64     `json:"amount_off_cents,omitempty"`
	PercentOff     *float64   `json:"percent_off,omitempty"`
	MinOrderCents  int64      `json:"min_order_cents"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidTo        *time.Time `json:"valid_to,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type SettingsView struct {
	TaxRatePercent             float64   `json:"tax_rate_percent"`
	FreeShippingThresholdCents int64     `json:"free_shipping_threshold_cents"`
	ShippingFeeCents           int64     `json:"shipping_fee_cents"`
	CodEnabled                 bool      `json:"cod_enabled"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
}
