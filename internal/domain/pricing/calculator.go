package pricing

import (
	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/domain/coupon"
)

// Settings is the slice of admin configuration the calculator needs.
type Settings struct {
	TaxRatePercent             float64
	FreeShippingThresholdCents int64
	ShippingFeeCents           int64
}

// Quote is the full price breakdown for a checkout. The deposit total is
// reported separately: it is refundable, not revenue, and not part of
// TotalCents.
type Quote struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	DiscountCents int64
	TotalCents    int64
	DepositCents  int64
	ItemCount     int
}

type Calculator interface {
	Quote(c *cart.Cart, settings Settings, discount *coupon.Discount) Quote
}

type DefaultCalculator struct{}

func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{}
}

// Quote derives the totals from the cart, settings and the applied
// discount. Pure: no side effects beyond reading the inputs.
//
// Shipping is waived above the free-shipping threshold and for carts
// with no buy lines (rentals are delivered with their fitting visit).
// Tax applies to subtotal plus shipping. The discount is computed off
// the subtotal alone; the minimum-order check happened at apply time
// and is deliberately not repeated here. The total is not clamped at
// zero: a fixed discount larger than the payable amount yields a
// negative total, matching the storefront it replaces.
func (dc *DefaultCalculator) Quote(c *cart.Cart, settings Settings, discount *coupon.Discount) Quote {
	subtotal := c.SubtotalCents()

	var shipping int64
	if c.HasBuyLines() && subtotal < settings.FreeShippingThresholdCents {
		shipping = settings.ShippingFeeCents
	}

	tax := int64(float64(subtotal+shipping) * settings.TaxRatePercent / 100.0)

	var discountCents int64
	if discount != nil {
		discountCents = discount.AmountFor(subtotal)
	}

	return Quote{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
		DiscountCents: discountCents,
		TotalCents:    subtotal + shipping + tax - discountCents,
		DepositCents:  c.DepositTotalCents(),
		ItemCount:     c.ItemCount(),
	}
}
