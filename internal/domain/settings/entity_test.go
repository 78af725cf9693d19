//go:build unit

package settings_test

import (
	"testing"

	"airaa-jewels/internal/domain/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	t.Run("negative tax rate rejected", func(t *testing.T) {
		_, err := settings.NewSettings(-1, 500000, 15000, true)
		require.ErrorIs(t, err, settings.ErrNegativeTaxRate)
	})

	t.Run("patch applies only non-nil fields", func(t *testing.T) {
		s, err := settings.NewSettings(18, 500000, 15000, true)
		require.NoError(t, err)

		rate := 12.0
		cod := false
		require.NoError(t, s.Patch(&rate, nil, nil, &cod))

		assert.Equal(t, 12.0, s.TaxRatePercent())
		assert.Equal(t, int64(500000), s.FreeShippingThresholdCents())
		assert.False(t, s.CodEnabled())
	})

	t.Run("invalid patch leaves settings unchanged", func(t *testing.T) {
		s, err := settings.NewSettings(18, 500000, 15000, true)
		require.NoError(t, err)

		fee := int64(-100)
		require.ErrorIs(t, s.Patch(nil, nil, &fee, nil), settings.ErrNegativeFee)
		assert.Equal(t, int64(15000), s.ShippingFeeCents())
	})
}
