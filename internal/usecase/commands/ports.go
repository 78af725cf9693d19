package commands

import (
	"context"

	"airaa-jewels/internal/domain/cart"

	"github.com/google/uuid"
)

// PaymentRequest is the gateway bridge payload. Amounts are integer
// cents; the deposit never reaches the gateway, only the payable total.
type PaymentRequest struct {
	AmountCents   int64
	Currency      string
	ProductID     string
	Type          string
	CouponCode    *string
	DiscountCents int64
}

// PaymentIntent carries the provider's order reference plus the
// client-facing key the storefront renders the payment widget with.
type PaymentIntent struct {
	Reference   string
	AmountCents int64
	Currency    string
	Key         string
}

// PaymentGateway bridges to the external payment provider.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentIntent, error)
	Health(ctx context.Context) error
}

// GuestCartStore keeps session-scoped carts for visitors who have not
// logged in. Entries expire server-side; losing one only loses a cart.
type GuestCartStore interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// CartActor identifies whose cart a command operates on: a logged-in
// user (UserID set) or a guest session.
type CartActor struct {
	UserID    *uuid.UUID
	SessionID string
}

func UserActor(userID uuid.UUID) CartActor {
	return CartActor{UserID: &userID}
}

func GuestActor(sessionID string) CartActor {
	return CartActor{SessionID: sessionID}
}
