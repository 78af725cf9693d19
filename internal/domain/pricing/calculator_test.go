//go:build unit

package pricing_test

import (
	"testing"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/domain/coupon"
	"airaa-jewels/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeSettings = pricing.Settings{
	TaxRatePercent:             18,
	FreeShippingThresholdCents: 500000,
	ShippingFeeCents:           15000,
}

func buyCart(t *testing.T, priceCents int64, qty int) *cart.Cart {
	t.Helper()
	c := cart.NewCart(uuid.New())
	line, err := cart.NewBuyLine(uuid.New(), "Gold Necklace", priceCents, qty)
	require.NoError(t, err)
	c.AddLine(line)
	return c
}

func TestQuote(t *testing.T) {
	calc := pricing.NewDefaultCalculator()

	t.Run("buy below threshold with percentage coupon", func(t *testing.T) {
		c := buyCart(t, 350000, 1)
		discount, err := coupon.NewPercentageDiscount(10)
		require.NoError(t, err)

		q := calc.Quote(c, storeSettings, &discount)

		want := pricing.Quote{
			SubtotalCents: 350000,
			ShippingCents: 15000,
			TaxCents:      65700,
			DiscountCents: 35000,
			TotalCents:    395700,
			ItemCount:     1,
		}
		if diff := cmp.Diff(want, q); diff != "" {
			t.Errorf("Quote mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("shipping waived at threshold", func(t *testing.T) {
		c := buyCart(t, 500000, 1)

		q := calc.Quote(c, storeSettings, nil)

		assert.Equal(t, int64(0), q.ShippingCents)
		assert.Equal(t, int64(90000), q.TaxCents)
		assert.Equal(t, int64(590000), q.TotalCents)
	})

	t.Run("shipping waived for rent-only cart", func(t *testing.T) {
		c := cart.NewCart(uuid.New())
		line, err := cart.NewRentLine(uuid.New(), "Bridal Set", 50000, 1, 2, 100000)
		require.NoError(t, err)
		c.AddLine(line)

		q := calc.Quote(c, storeSettings, nil)

		assert.Equal(t, int64(100000), q.SubtotalCents)
		assert.Equal(t, int64(0), q.ShippingCents)
		assert.Equal(t, int64(100000), q.DepositCents)
	})

	t.Run("mixed cart charges shipping below threshold", func(t *testing.T) {
		c := buyCart(t, 250000, 1)
		line, err := cart.NewRentLine(uuid.New(), "Bridal Set", 50000, 1, 2, 100000)
		require.NoError(t, err)
		c.AddLine(line)

		q := calc.Quote(c, storeSettings, nil)

		assert.Equal(t, int64(350000), q.SubtotalCents)
		assert.Equal(t, int64(15000), q.ShippingCents)
	})

	t.Run("deposit excluded from total", func(t *testing.T) {
		c := cart.NewCart(uuid.New())
		line, err := cart.NewRentLine(uuid.New(), "Bridal Set", 100000, 1, 1, 500000)
		require.NoError(t, err)
		c.AddLine(line)

		q := calc.Quote(c, storeSettings, nil)

		assert.Equal(t, int64(118000), q.TotalCents)
		assert.Equal(t, int64(500000), q.DepositCents)
	})

	t.Run("fixed discount is not capped at subtotal", func(t *testing.T) {
		c := buyCart(t, 10000, 1)
		discount, err := coupon.NewFixedDiscount(50000)
		require.NoError(t, err)

		q := calc.Quote(c, storeSettings, &discount)

		assert.Equal(t, int64(50000), q.DiscountCents)
		assert.Equal(t, int64(10000+15000+4500-50000), q.TotalCents)
		assert.Less(t, q.TotalCents, int64(0))
	})

	t.Run("discount applies to subtotal only", func(t *testing.T) {
		c := buyCart(t, 100000, 1)
		discount, err := coupon.NewPercentageDiscount(50)
		require.NoError(t, err)

		q := calc.Quote(c, storeSettings, &discount)

		// Half of the subtotal, not of subtotal+shipping+tax.
		assert.Equal(t, int64(50000), q.DiscountCents)
	})

	t.Run("empty cart quotes all zeros", func(t *testing.T) {
		c := cart.NewCart(uuid.New())

		q := calc.Quote(c, storeSettings, nil)

		assert.Equal(t, int64(0), q.SubtotalCents)
		assert.Equal(t, int64(0), q.ShippingCents)
		assert.Equal(t, int64(0), q.TaxCents)
		assert.Equal(t, int64(0), q.TotalCents)
	})
}
