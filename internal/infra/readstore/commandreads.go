package readstore

import (
	"context"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/pkg/pgconv"
	"airaa-jewels/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the lightweight snapshot lookups command handlers
// need for validation. It is bound to whatever DBTX the caller runs on,
// so the same reads work inside and outside transactions.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(db db.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

const productSnapshotSQL = `
SELECT id, name, category, price_cents, rent_price_cents, security_deposit_cents, in_stock
FROM products
WHERE id = $1`

func (r *CommandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var s shared.ProductSnapshot
	err := r.db.QueryRow(ctx, productSnapshotSQL, id).Scan(
		&s.ID,
		&s.Name,
		&s.Category,
		&s.PriceCents,
		&s.RentPriceCents,
		&s.SecurityDepositCents,
		&s.InStock,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read product snapshot", err)
	}
	return &s, nil
}

const couponSnapshotSQL = `
SELECT id, code, amount_off_cents, percent_off, min_order_cents, valid_from, valid_to
FROM coupons
WHERE code = $1`

func (r *CommandReads) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	var s shared.CouponSnapshot
	err := r.db.QueryRow(ctx, couponSnapshotSQL, code).Scan(
		&s.ID,
		&s.Code,
		&s.AmountOffCents,
		&s.PercentOff,
		&s.MinOrderCents,
		&s.ValidFrom,
		&s.ValidTo,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read coupon snapshot", err)
	}
	return &s, nil
}

const settingsSnapshotSQL = `
SELECT tax_rate_percent, free_shipping_threshold_cents, shipping_fee_cents, cod_enabled
FROM store_settings
WHERE id = TRUE`

func (r *CommandReads) Settings(ctx context.Context) (*shared.SettingsSnapshot, error) {
	var s shared.SettingsSnapshot
	err := r.db.QueryRow(ctx, settingsSnapshotSQL).Scan(
		&s.TaxRatePercent,
		&s.FreeShippingThresholdCents,
		&s.ShippingFeeCents,
		&s.CodEnabled,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read settings snapshot", err)
	}
	return &s, nil
}

const orderSnapshotSQL = `
SELECT id, user_id, kind, status
FROM orders
WHERE id = $1`

func (r *CommandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	var s shared.OrderSnapshot
	err := r.db.QueryRow(ctx, orderSnapshotSQL, id).Scan(
		&s.ID,
		&s.UserID,
		&s.Kind,
		&s.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read order snapshot", err)
	}
	return &s, nil
}

const idempotencySnapshotSQL = `
SELECT key, user_id, status, request_hash, result_order_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

func (r *CommandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, idempotencySnapshotSQL, key, userID).Scan(
		&rec.Key,
		&rec.UserID,
		&rec.Status,
		&rec.RequestHash,
		&rec.ResultOrderID,
		&rec.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read idempotency key", err)
	}
	return &rec, nil
}
