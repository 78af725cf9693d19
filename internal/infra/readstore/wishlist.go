package readstore

import (
	"context"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type WishlistReadStore struct {
	db db.DBTX
}

func NewWishlistReadStore(db db.DBTX) *WishlistReadStore {
	return &WishlistReadStore{db: db}
}

const findWishlistProductsSQL = `
SELECT p.id, p.name, p.category, p.price_cents, p.rent_price_cents,
       p.security_deposit_cents, p.in_stock, p.rating, p.review_count, p.created_at, p.updated_at
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.user_id = $1
ORDER BY w.position`

func (s *WishlistReadStore) FindProductsByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ProductListItem, error) {
	rows, err := s.db.Query(ctx, findWishlistProductsSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load wishlist products", err)
	}
	defer rows.Close()

	items := make([]*queries.ProductListItem, 0)
	for rows.Next() {
		view, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan wishlist product", err)
		}
		var item queries.ProductListItem
		if err := copier.Copy(&item, view); err != nil {
			return nil, infra.WrapRepoErr("failed to map wishlist product", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate wishlist products", err)
	}
	return items, nil
}
