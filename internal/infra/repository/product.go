package repository

import (
	"context"

	"airaa-jewels/internal/domain/catalog"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const insertProductSQL = `
INSERT INTO products (id, name, category, price_cents, rent_price_cents, security_deposit_cents, in_stock)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (r *ProductRepository) Create(ctx context.Context, tx db.DBTX, p *catalog.Product) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertProductSQL,
		p.ID(),
		p.Name(),
		p.Category().String(),
		p.PriceCents(),
		p.RentPriceCents(),
		p.SecurityDepositCents(),
		p.InStock(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert product", err, infra.ClassifyPgError(err))
	}
	return id, nil
}

const updateProductSQL = `
UPDATE products
SET name = $2, category = $3, price_cents = $4, rent_price_cents = $5,
    security_deposit_cents = $6, in_stock = $7, updated_at = now()
WHERE id = $1`

func (r *ProductRepository) Update(ctx context.Context, tx db.DBTX, p *catalog.Product) error {
	tag, err := tx.Exec(ctx, updateProductSQL,
		p.ID(),
		p.Name(),
		p.Category().String(),
		p.PriceCents(),
		p.RentPriceCents(),
		p.SecurityDepositCents(),
		p.InStock(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err, infra.ClassifyPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

const setProductStockSQL = `
UPDATE products SET in_stock = $2, updated_at = now() WHERE id = $1`

func (r *ProductRepository) SetInStock(ctx context.Context, tx db.DBTX, id uuid.UUID, inStock bool) error {
	tag, err := tx.Exec(ctx, setProductStockSQL, id, inStock)
	if err != nil {
		return infra.WrapRepoErr("failed to update product stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
