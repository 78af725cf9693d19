package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist is a per-user product set with insertion order preserved.
// Adding a product already present and removing one that is absent are
// both silent no-ops.
type Wishlist struct {
	userID     uuid.UUID
	productIDs []uuid.UUID
	updatedAt  time.Time
}

func NewWishlist(userID uuid.UUID) *Wishlist {
	return &Wishlist{userID: userID}
}

func ReconstructWishlist(userID uuid.UUID, productIDs []uuid.UUID, updatedAt time.Time) *Wishlist {
	return &Wishlist{
		userID:     userID,
		productIDs: productIDs,
		updatedAt:  updatedAt,
	}
}

func (w *Wishlist) Add(productID uuid.UUID) {
	if w.Contains(productID) {
		return
	}
	w.productIDs = append(w.productIDs, productID)
}

func (w *Wishlist) Remove(productID uuid.UUID) {
	for i, id := range w.productIDs {
		if id == productID {
			w.productIDs = append(w.productIDs[:i], w.productIDs[i+1:]...)
			return
		}
	}
}

// Toggle adds the product when absent, removes it when present, and
// reports whether it is present afterwards.
func (w *Wishlist) Toggle(productID uuid.UUID) bool {
	if w.Contains(productID) {
		w.Remove(productID)
		return false
	}
	w.Add(productID)
	return true
}

func (w *Wishlist) Contains(productID uuid.UUID) bool {
	for _, id := range w.productIDs {
		if id == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) UserID() uuid.UUID       { return w.userID }
func (w *Wishlist) ProductIDs() []uuid.UUID { return w.productIDs }
func (w *Wishlist) Count() int              { return len(w.productIDs) }
func (w *Wishlist) UpdatedAt() time.Time    { return w.updatedAt }
