package readstore

import (
	"context"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/usecase/queries"
)

type SettingsReadStore struct {
	db db.DBTX
}

func NewSettingsReadStore(db db.DBTX) *SettingsReadStore {
	return &SettingsReadStore{db: db}
}

const getSettingsSQL = `
SELECT tax_rate_percent, free_shipping_threshold_cents, shipping_fee_cents, cod_enabled, updated_at
FROM store_settings
WHERE id = TRUE`

func (s *SettingsReadStore) Get(ctx context.Context) (*queries.SettingsView, error) {
	var v queries.SettingsView
	err := s.db.QueryRow(ctx, getSettingsSQL).Scan(
		&v.TaxRatePercent,
		&v.FreeShippingThresholdCents,
		&v.ShippingFeeCents,
		&v.CodEnabled,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load store settings", err)
	}
	return &v, nil
}
