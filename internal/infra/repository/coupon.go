package repository

import (
	"context"

	"airaa-jewels/internal/domain/coupon"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"

	"github.com/google/uuid"
)

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

const insertCouponSQL = `
INSERT INTO coupons (id, code, amount_off_cents, percent_off, min_order_cents, valid_from, valid_to)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (r *CouponRepository) Create(ctx context.Context, tx db.DBTX, c *coupon.Coupon) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertCouponSQL,
		c.ID(),
		c.Code().String(),
		amountOff(c.Discount()),
		percentOff(c.Discount()),
		c.MinOrderCents(),
		c.ValidFrom(),
		c.ValidTo(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert coupon", err, infra.ClassifyPgError(err))
	}
	return id, nil
}

const updateCouponSQL = `
UPDATE coupons
SET amount_off_cents = $2, percent_off = $3, min_order_cents = $4,
    valid_from = $5, valid_to = $6, updated_at = now()
WHERE id = $1`

func (r *CouponRepository) Update(ctx context.Context, tx db.DBTX, c *coupon.Coupon) error {
	tag, err := tx.Exec(ctx, updateCouponSQL,
		c.ID(),
		amountOff(c.Discount()),
		percentOff(c.Discount()),
		c.MinOrderCents(),
		c.ValidFrom(),
		c.ValidTo(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update coupon", err, infra.ClassifyPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteCouponSQL = `DELETE FROM coupons WHERE id = $1`

func (r *CouponRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteCouponSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

func amountOff(d coupon.Discount) *int64 {
	if !d.IsFixed() {
		return nil
	}
	v := d.AmountOffCents()
	return &v
}

func percentOff(d coupon.Discount) *float64 {
	if !d.IsPercentage() {
		return nil
	}
	v := d.PercentOff()
	return &v
}
