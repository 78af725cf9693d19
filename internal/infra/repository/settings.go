package repository

import (
	"context"

	"airaa-jewels/internal/domain/settings"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
)

type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

const updateSettingsSQL = `
UPDATE store_settings
SET tax_rate_percent = $1, free_shipping_threshold_cents = $2,
    shipping_fee_cents = $3, cod_enabled = $4, updated_at = now()
WHERE id = TRUE`

func (r *SettingsRepository) Update(ctx context.Context, tx db.DBTX, s *settings.Settings) error {
	_, err := tx.Exec(ctx, updateSettingsSQL,
		s.TaxRatePercent(),
		s.FreeShippingThresholdCents(),
		s.ShippingFeeCents(),
		s.CodEnabled(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update store settings", err)
	}
	return nil
}
