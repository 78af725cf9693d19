package queries

import (
	"context"

	"github.com/google/uuid"
)

type WishlistQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ProductListItem, error)
}

type WishlistReadStore interface {
	// FindProductsByUser returns wishlisted products in insertion order.
	FindProductsByUser(ctx context.Context, userID uuid.UUID) ([]*ProductListItem, error)
}

type wishlistQueriesImpl struct {
	readStore WishlistReadStore
}

func NewWishlistQueries(readStore WishlistReadStore) WishlistQueries {
	return &wishlistQueriesImpl{readStore: readStore}
}

func (q *wishlistQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ProductListItem, error) {
	return q.readStore.FindProductsByUser(ctx, userID)
}
