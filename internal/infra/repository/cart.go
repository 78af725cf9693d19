package repository

import (
	"context"
	"time"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

const findCartByUserSQL = `
SELECT id, user_id, coupon_id, coupon_code, updated_at
FROM carts
WHERE user_id = $1`

const findCartLinesSQL = `
SELECT product_id, product_name, mode, quantity,
       unit_price_cents, rent_price_cents, rent_days, security_deposit_cents
FROM cart_lines
WHERE cart_id = $1
ORDER BY position`

func (r *CartRepository) FindByUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*cart.Cart, error) {
	var (
		id         uuid.UUID
		uid        uuid.UUID
		couponID   *uuid.UUID
		couponCode *string
		updatedAt  time.Time
	)
	row := tx.QueryRow(ctx, findCartByUserSQL, userID)
	if err := row.Scan(&id, &uid, &couponID, &couponCode, &updatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart", err)
	}

	rows, err := tx.Query(ctx, findCartLinesSQL, id)
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

const upsertCartSQL = `
INSERT INTO carts (id, user_id, coupon_id, coupon_code, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id) DO UPDATE
SET coupon_id = EXCLUDED.coupon_id,
    coupon_code = EXCLUDED.coupon_code,
    updated_at = now()
RETURNING id`

const deleteCartLinesSQL = `DELETE FROM cart_lines WHERE cart_id = $1`

const insertCartLineSQL = `
INSERT INTO cart_lines (cart_id, product_id, product_name, mode, quantity,
                        unit_price_cents, rent_price_cents, rent_days, security_deposit_cents, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Save replaces the cart's line set wholesale. The cart row keeps its
// original id when the user already had one.
func (r *CartRepository) Save(ctx context.Context, tx db.DBTX, c *cart.Cart) error {
	var couponID *uuid.UUID
	var couponCode *string
	if applied := c.Coupon(); applied != nil {
		couponID = &applied.CouponID
		couponCode = &applied.Code
	}

	var cartID uuid.UUID
	if err := tx.QueryRow(ctx, upsertCartSQL, c.ID(), c.UserID(), couponID, couponCode).Scan(&cartID); err != nil {
		return infra.WrapRepoErr("failed to upsert cart", err, infra.ClassifyPgError(err))
	}

	if _, err := tx.Exec(ctx, deleteCartLinesSQL, cartID); err != nil {
		return infra.WrapRepoErr("failed to clear cart lines", err)
	}

	for i, line := range c.Lines() {
		_, err := tx.Exec(ctx, insertCartLineSQL,
			cartID,
			line.ProductID(),
			line.ProductName(),
			line.Mode().String(),
			line.Quantity(),
			line.UnitPriceCents(),
			line.RentPriceCents(),
			line.RentDays(),
			line.SecurityDepositCents(),
			i,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert cart line", err, infra.ClassifyPgError(err))
		}
	}
	return nil
}
