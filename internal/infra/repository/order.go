package repository

import (
	"context"
	"time"

	"airaa-jewels/internal/domain/order"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const insertOrderSQL = `
INSERT INTO orders (id, user_id, kind, status,
                    subtotal_cents, shipping_cents, tax_cents, discount_cents, total_cents, deposit_cents,
                    coupon_code, shipping_address, payment_method, payment_ref, tracking_number)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING id`

const insertOrderLineSQL = `
INSERT INTO order_lines (order_id, position, product_id, product_name, quantity,
                         unit_price_cents, rent_price_cents, rent_days, security_deposit_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertOrderSQL,
		o.ID(),
		o.UserID(),
		o.Kind().String(),
		o.Status().String(),
		o.SubtotalCents(),
		o.ShippingCents(),
		o.TaxCents(),
		o.DiscountCents(),
		o.TotalCents(),
		o.DepositCents(),
		o.CouponCode(),
		o.ShippingAddress(),
		string(o.PaymentMethod()),
		o.PaymentRef(),
		o.TrackingNumber(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert order", err, infra.ClassifyPgError(err))
	}

	for i, line := range o.Lines() {
		_, err := tx.Exec(ctx, insertOrderLineSQL,
			id, i,
			line.ProductID,
			line.ProductName,
			line.Quantity,
			line.UnitPriceCents,
			line.RentPriceCents,
			line.RentDays,
			line.SecurityDepositCents,
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert order line", err, infra.ClassifyPgError(err))
		}
	}
	return id, nil
}

const updateOrderStatusSQL = `
UPDATE orders
SET status = $2, tracking_number = $3, updated_at = now()
WHERE id = $1`

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, o *order.Order) error {
	tag, err := tx.Exec(ctx, updateOrderStatusSQL, o.ID(), o.Status().String(), o.TrackingNumber())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

const findOrderByIDSQL = `
SELECT id, user_id, kind, status,
       subtotal_cents, shipping_cents, tax_cents, discount_cents, total_cents, deposit_cents,
       coupon_code, shipping_address, payment_method, payment_ref, tracking_number,
       created_at, updated_at
FROM orders
WHERE id = $1`

const findOrderLinesSQL = `
SELECT product_id, product_name, quantity,
       unit_price_cents, rent_price_cents, rent_days, security_deposit_cents
FROM order_lines
WHERE order_id = $1
ORDER BY position`

func (r *OrderRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	var (
		orderID, userID            uuid.UUID
		kind, status               string
		totals                     order.Totals
		couponCode                 *string
		shippingAddr               string
		paymentMethod              string
		paymentRef, trackingNumber *string
		createdAt, updatedAt       time.Time
	)
	err := tx.QueryRow(ctx, findOrderByIDSQL, id).Scan(
		&orderID, &userID, &kind, &status,
		&totals.SubtotalCents, &totals.ShippingCents, &totals.TaxCents, &totals.DiscountCents, &totals.TotalCents, &totals.DepositCents,
		&couponCode, &shippingAddr, &paymentMethod, &paymentRef, &trackingNumber,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	rows, err := tx.Query(ctx, findOrderLinesSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	defer rows.Close()

	var lines []order.OrderLine
	for rows.Next() {
		var line order.OrderLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity,
			&line.UnitPriceCents, &line.RentPriceCents, &line.RentDays, &line.SecurityDepositCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order lines", err)
	}

	return order.ReconstructOrder(
		orderID, userID,
		order.Kind(kind), order.Status(status),
		lines, totals,
		couponCode, shippingAddr,
		order.PaymentMethod(paymentMethod), paymentRef, trackingNumber,
		createdAt, updatedAt,
	), nil
}
