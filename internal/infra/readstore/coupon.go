package readstore

import (
	"context"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/pkg/pgconv"
	"airaa-jewels/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(db db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: db}
}

const couponColumns = `id, code, amount_off_cents, percent_off, min_order_cents,
       valid_from, valid_to, created_at, updated_at`

const findCouponByIDSQL = `
SELECT ` + couponColumns + `
FROM coupons
WHERE id = $1`

func (s *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CouponView, error) {
	view, err := scanCouponView(s.db.QueryRow(ctx, findCouponByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon", err)
	}
	return view, nil
}

// Codes are matched exactly; lookups are case sensitive.
const findCouponByCodeSQL = `
SELECT ` + couponColumns + `
FROM coupons
WHERE code = $1`

func (s *CouponReadStore) FindByCode(ctx context.Context, code string) (*queries.CouponView, error) {
	view, err := scanCouponView(s.db.QueryRow(ctx, findCouponByCodeSQL, code))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return view, nil
}

const findAllCouponsSQL = `
SELECT ` + couponColumns + `
FROM coupons
ORDER BY created_at DESC`

func (s *CouponReadStore) FindAll(ctx context.Context) ([]*queries.CouponView, error) {
	rows, err := s.db.Query(ctx, findAllCouponsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	var views []*queries.CouponView
	for rows.Next() {
		view, err := scanCouponView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupons", err)
	}
	return views, nil
}

func scanCouponView(row rowScanner) (*queries.CouponView, error) {
	var v queries.CouponView
	err := row.Scan(
		&v.ID,
		&v.Code,
		&v.AmountOffCents,
		&v.PercentOff,
		&v.MinOrderCents,
		&v.ValidFrom,
		&v.ValidTo,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
