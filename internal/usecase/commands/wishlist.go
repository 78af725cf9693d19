package commands

import (
	"context"

	"airaa-jewels/internal/domain/wishlist"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/usecase/shared"

	"github.com/google/uuid"
)

type WishlistCommands interface {
	// Toggle reports whether the product is on the list afterwards.
	Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewWishlistCommands(uow shared.UnitOfWork) WishlistCommands {
	return &wishlistCommandsImpl{uow: uow}
}

func (u *wishlistCommandsImpl) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var wishlisted bool
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ProductByID(ctx, productID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		w, err := u.loadList(ctx, tx, userID)
		if err != nil {
			return err
		}
		wishlisted = w.Toggle(productID)
		return u.saveList(ctx, tx, w)
	})
	return wishlisted, err
}

func (u *wishlistCommandsImpl) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		w, err := u.loadList(ctx, tx, userID)
		if err != nil {
			return err
		}
		// Removing a product that is not on the list is a no-op.
		w.Remove(productID)
		return u.saveList(ctx, tx, w)
	})
}

func (u *wishlistCommandsImpl) loadList(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*wishlist.Wishlist, error) {
	w, err := tx.Wishlists().FindByUser(ctx, tx.DB(), userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return wishlist.NewWishlist(userID), nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return w, nil
}

func (u *wishlistCommandsImpl) saveList(ctx context.Context, tx shared.Tx, w *wishlist.Wishlist) error {
	if err := tx.Wishlists().Save(ctx, tx.DB(), w); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
