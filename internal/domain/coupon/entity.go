package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrBelowMinimumOrder = errors.New("order amount below coupon minimum")
)

type Coupon struct {
	id            uuid.UUID
	code          Code
	discount      Discount
	minOrderCents int64
	validFrom     *time.Time
	validTo       *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewCoupon(
	id uuid.UUID,
	code string,
	amountOffCents *int64,
	percentOff *float64,
	minOrderCents int64,
	validFrom, validTo *time.Time,
) (*Coupon, error) {
	couponCode, err := NewCouponCode(code)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(amountOffCents, percentOff)
	if err != nil {
		return nil, err
	}

	if minOrderCents < 0 {
		return nil, ErrInvalidMinOrder
	}

	return &Coupon{
		id:            id,
		code:          couponCode,
		discount:      discount,
		minOrderCents: minOrderCents,
		validFrom:     validFrom,
		validTo:       validTo,
	}, nil
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	if c.validFrom != nil && t.Before(*c.validFrom) {
		return false
	}
	if c.validTo != nil && t.After(*c.validTo) {
		return false
	}
	return true
}

// ValidateUsage checks the validity window and the minimum order amount.
// The minimum is enforced only here, at application time; a coupon that
// passed validation stays applied even if the cart later shrinks below
// the minimum (grandfathering, preserved from the storefront).
func (c *Coupon) ValidateUsage(t time.Time, subtotalCents int64) error {
	if !c.IsValidAt(t) {
		if c.validFrom != nil && t.Before(*c.validFrom) {
			return ErrCouponNotYetValid
		}
		return ErrCouponExpired
	}
	if subtotalCents < c.minOrderCents {
		return ErrBelowMinimumOrder
	}
	return nil
}

func (c *Coupon) DiscountFor(subtotalCents int64) int64 {
	return c.discount.AmountFor(subtotalCents)
}

func (c *Coupon) ID() uuid.UUID         { return c.id }
func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Discount() Discount    { return c.discount }
func (c *Coupon) MinOrderCents() int64  { return c.minOrderCents }
func (c *Coupon) ValidFrom() *time.Time { return c.validFrom }
func (c *Coupon) ValidTo() *time.Time   { return c.validTo }
func (c *Coupon) CreatedAt() time.Time  { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time  { return c.updatedAt }
