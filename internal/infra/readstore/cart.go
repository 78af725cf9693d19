package readstore

import (
	"context"
	"time"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// CartReadStore loads carts outside write transactions; pricing and
// coupon resolution happen on the query side.
type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(db db.DBTX) *CartReadStore {
	return &CartReadStore{db: db}
}

const readCartByUserSQL = `
SELECT id, user_id, coupon_id, coupon_code, updated_at
FROM carts
WHERE user_id = $1`

const readCartLinesSQL = `
SELECT product_id, product_name, mode, quantity,
       unit_price_cents, rent_price_cents, rent_days, security_deposit_cents
FROM cart_lines
WHERE cart_id = $1
ORDER BY position`

func (s *CartReadStore) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var (
		id         uuid.UUID
		uid        uuid.UUID
		couponID   *uuid.UUID
		couponCode *string
		updatedAt  time.Time
	)
	row := s.db.QueryRow(ctx, readCartByUserSQL, userID)
	if err := row.Scan(&id, &uid, &couponID, &couponCode, &updatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load cart", err)
	}

	rows, err := s.db.Query(ctx, readCartLinesSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load cart lines", err)
	}
	defer rows.Close()

	var lines []cart.Line
	for rows.Next() {
		var (
			productID    uuid.UUID
			productName  string
			mode         string
			quantity     int
			unitPrice    int64
			rentPrice    int64
			rentDays     int
			depositCents int64
		)
		if err := rows.Scan(&productID, &productName, &mode, &quantity, &unitPrice, &rentPrice, &rentDays, &depositCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart line", err)
		}
		lines = append(lines, cart.ReconstructLine(productID, productName, cart.Mode(mode), quantity, unitPrice, rentPrice, rentDays, depositCents))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cart lines", err)
	}

	var applied *cart.AppliedCoupon
	if couponID != nil && couponCode != nil {
		applied = &cart.AppliedCoupon{CouponID: *couponID, Code: *couponCode}
	}

	return cart.ReconstructCart(id, uid, lines, applied, updatedAt), nil
}
