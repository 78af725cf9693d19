package shared

import (
	"time"

	"github.com/google/uuid"
)

type ProductSnapshot struct {
	ID                   uuid.UUID
	Name                 string
	Category             string
	PriceCents           int64
	RentPriceCents       *int64
	SecurityDepositCents int64
	InStock              bool
}

type CouponSnapshot struct {
	ID             uuid.UUID
	Code           string
	AmountOffCents *int64
	PercentOff     *float64
	MinOrderCents  int64
	ValidFrom      *time.Time
	ValidTo        *time.Time
}

type SettingsSnapshot struct {
	TaxRatePercent             float64
	FreeShippingThresholdCents int64
	ShippingFeeCents           int64
	CodEnabled                 bool
}

type OrderSnapshot struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Kind   string
	Status string
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}
