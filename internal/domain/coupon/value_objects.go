package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidMinOrder        = errors.New("minimum order amount cannot be negative")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

// NewCouponCode validates the raw code without changing its case.
// Lookups are case-sensitive, so no normalization happens here.
func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(code)
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Discount struct {
	amountOffCents *int64
	percentOff     *float64
}

func NewFixedDiscount(amountOffCents int64) (Discount, error) {
	if amountOffCents < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountOffCents: &amountOffCents}, nil
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percentOff: &percentOff}, nil
}

func NewDiscount(amountOffCents *int64, percentOff *float64) (Discount, error) {
	if amountOffCents != nil && percentOff != nil {
		return Discount{}, errors.New("discount can only be either fixed amount or percentage, not both")
	}

	if amountOffCents == nil && percentOff == nil {
		return Discount{}, errors.New("discount must have either fixed amount or percentage")
	}

	if amountOffCents != nil {
		return NewFixedDiscount(*amountOffCents)
	}

	return NewPercentageDiscount(*percentOff)
}

func (d Discount) Type() DiscountType {
	if d.percentOff != nil {
		return DiscountPercentage
	}
	return DiscountFixed
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

func (d Discount) IsFixed() bool {
	return d.amountOffCents != nil
}

func (d Discount) AmountOffCents() int64 {
	if d.amountOffCents != nil {
		return *d.amountOffCents
	}
	return 0
}

func (d Discount) PercentOff() float64 {
	if d.percentOff != nil {
		return *d.percentOff
	}
	return 0
}

// AmountFor returns the discount in cents for the given subtotal.
// A percentage discount is computed off the subtotal alone (shipping and
// tax are never discounted); a fixed discount is returned as-is even when
// it exceeds the subtotal, matching the storefront's historical behavior.
func (d Discount) AmountFor(subtotalCents int64) int64 {
	if d.IsPercentage() {
		return int64(float64(subtotalCents) * (d.PercentOff() / 100.0))
	}
	return d.AmountOffCents()
}
