package settings

import (
	"errors"
	"time"
)

var (
	ErrNegativeTaxRate   = errors.New("tax rate cannot be negative")
	ErrNegativeThreshold = errors.New("free shipping threshold cannot be negative")
	ErrNegativeFee       = errors.New("shipping fee cannot be negative")
)

// Settings is the single store-wide configuration row. Changes take
// effect on the next quote; carts hold no pricing snapshot.
type Settings struct {
	taxRatePercent             float64
	freeShippingThresholdCents int64
	shippingFeeCents           int64
	codEnabled                 bool
	updatedAt                  time.Time
}

func NewSettings(taxRatePercent float64, freeShippingThresholdCents, shippingFeeCents int64, codEnabled bool) (*Settings, error) {
	s := &Settings{
		taxRatePercent:             taxRatePercent,
		freeShippingThresholdCents: freeShippingThresholdCents,
		shippingFeeCents:           shippingFeeCents,
		codEnabled:                 codEnabled,
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func ReconstructSettings(taxRatePercent float64, freeShippingThresholdCents, shippingFeeCents int64, codEnabled bool, updatedAt time.Time) *Settings {
	return &Settings{
		taxRatePercent:             taxRatePercent,
		freeShippingThresholdCents: freeShippingThresholdCents,
		shippingFeeCents:           shippingFeeCents,
		codEnabled:                 codEnabled,
		updatedAt:                  updatedAt,
	}
}

// Patch applies the non-nil fields. Validation runs against the merged
// result so a patch cannot leave the row invalid.
func (s *Settings) Patch(taxRatePercent *float64, freeShippingThresholdCents, shippingFeeCents *int64, codEnabled *bool) error {
	next := *s
	if taxRatePercent != nil {
		next.taxRatePercent = *taxRatePercent
	}
	if freeShippingThresholdCents != nil {
		next.freeShippingThresholdCents = *freeShippingThresholdCents
	}
	if shippingFeeCents != nil {
		next.shippingFeeCents = *shippingFeeCents
	}
	if codEnabled != nil {
		next.codEnabled = *codEnabled
	}
	if err := next.validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *Settings) validate() error {
	if s.taxRatePercent < 0 {
		return ErrNegativeTaxRate
	}
	if s.freeShippingThresholdCents < 0 {
		return ErrNegativeThreshold
	}
	if s.shippingFeeCents < 0 {
		return ErrNegativeFee
	}
	return nil
}

func (s *Settings) TaxRatePercent() float64            { return s.taxRatePercent }
func (s *Settings) FreeShippingThresholdCents() int64  { return s.freeShippingThresholdCents }
func (s *Settings) ShippingFeeCents() int64            { return s.shippingFeeCents }
func (s *Settings) CodEnabled() bool                   { return s.codEnabled }
func (s *Settings) UpdatedAt() time.Time               { return s.updatedAt }
