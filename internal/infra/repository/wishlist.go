package repository

import (
	"context"
	"time"

	"airaa-jewels/internal/domain/wishlist"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"

	"github.com/google/uuid"
)

type WishlistRepository struct{}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{}
}

const findWishlistSQL = `
SELECT product_id, added_at
FROM wishlist_items
WHERE user_id = $1
ORDER BY position`

func (r *WishlistRepository) FindByUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*wishlist.Wishlist, error) {
	rows, err := tx.Query(ctx, findWishlistSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load wishlist", err)
	}
	defer rows.Close()

	var (
		productIDs []uuid.UUID
		latest     time.Time
	)
	for rows.Next() {
		var (
			productID uuid.UUID
			addedAt   time.Time
		)
		if err := rows.Scan(&productID, &addedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan wishlist item", err)
		}
		productIDs = append(productIDs, productID)
		if addedAt.After(latest) {
			latest = addedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate wishlist", err)
	}

	// An empty result is a valid, empty wishlist; no NotFound here.
	return wishlist.ReconstructWishlist(userID, productIDs, latest), nil
}

const deleteWishlistSQL = `DELETE FROM wishlist_items WHERE user_id = $1`

const insertWishlistItemSQL = `
INSERT INTO wishlist_items (user_id, product_id, position)
VALUES ($1, $2, $3)`

func (r *WishlistRepository) Save(ctx context.Context, tx db.DBTX, w *wishlist.Wishlist) error {
	if _, err := tx.Exec(ctx, deleteWishlistSQL, w.UserID()); err != nil {
		return infra.WrapRepoErr("failed to clear wishlist", err)
	}
	for i, productID := range w.ProductIDs() {
		if _, err := tx.Exec(ctx, insertWishlistItemSQL, w.UserID(), productID, i); err != nil {
			return infra.WrapRepoErr("failed to insert wishlist item", err, infra.ClassifyPgError(err))
		}
	}
	return nil
}
