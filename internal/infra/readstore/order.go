package readstore

import (
	"context"
	"fmt"
	"strings"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/pkg/pgconv"
	"airaa-jewels/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

const findOrderViewSQL = `
SELECT id, user_id, kind, status,
       subtotal_cents, shipping_cents, tax_cents, discount_cents, total_cents, deposit_cents,
       coupon_code, shipping_address, payment_method, payment_ref, tracking_number,
       created_at, updated_at
FROM orders
WHERE id = $1`

const findOrderLineViewsSQL = `
SELECT product_id, product_name, quantity,
       unit_price_cents, rent_price_cents, rent_days, security_deposit_cents
FROM order_lines
WHERE order_id = $1
ORDER BY position`

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var v queries.OrderView
	row := s.db.QueryRow(ctx, findOrderViewSQL, id)
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.Kind,
		&v.Status,
		&v.SubtotalCents,
		&v.ShippingCents,
		&v.TaxCents,
		&v.DiscountCents,
		&v.TotalCents,
		&v.DepositCents,
		&v.CouponCode,
		&v.ShippingAddress,
		&v.PaymentMethod,
		&v.PaymentRef,
		&v.TrackingNumber,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	rows, err := s.db.Query(ctx, findOrderLineViewsSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l queries.OrderLineView
		if err := rows.Scan(
			&l.ProductID,
			&l.ProductName,
			&l.Quantity,
			&l.UnitPriceCents,
			&l.RentPriceCents,
			&l.RentDays,
			&l.SecurityDepositCents,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		v.Lines = append(v.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order lines", err)
	}
	return &v, nil
}

const orderListColumns = `
SELECT o.id, o.user_id, o.kind, o.status, o.total_cents,
       (SELECT COALESCE(SUM(l.quantity), 0) FROM order_lines l WHERE l.order_id = o.id),
       o.created_at
FROM orders o`

func (s *OrderReadStore) FindByUser(ctx context.Context, userID uuid.UUID, kind *string) ([]*queries.OrderListItem, error) {
	sql := orderListColumns + " WHERE o.user_id = $1"
	args := []any{userID}
	if kind != nil {
		args = append(args, *kind)
		sql += fmt.Sprintf(" AND o.kind = $%d", len(args))
	}
	sql += " ORDER BY o.created_at DESC, o.id DESC"

	return s.listOrders(ctx, sql, args...)
}

func (s *OrderReadStore) FindAll(ctx context.Context, filter queries.OrderFilter) ([]*queries.OrderListItem, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conds = append(conds, fmt.Sprintf("o.kind = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if filter.After != nil && filter.After.After != "" {
		afterTime, afterID, err := queries.DecodeAfterCursor(filter.After.After)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid pagination cursor", err, infra.KindNotFound)
		}
		args = append(args, afterTime)
		tsArg := len(args)
		args = append(args, afterID)
		conds = append(conds, fmt.Sprintf("(o.created_at, o.id) < ($%d, $%d)", tsArg, len(args)))
	}

	sql := orderListColumns
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY o.created_at DESC, o.id DESC"
	args = append(args, filter.Limit)
	sql += fmt.Sprintf(" LIMIT $%d", len(args))

	return s.listOrders(ctx, sql, args...)
}

func (s *OrderReadStore) listOrders(ctx context.Context, sql string, args ...any) ([]*queries.OrderListItem, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Kind,
			&item.Status,
			&item.TotalCents,
			&item.ItemCount,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return items, nil
}
