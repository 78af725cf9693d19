package shared

import (
	"context"
	"time"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/domain/catalog"
	"airaa-jewels/internal/domain/coupon"
	"airaa-jewels/internal/domain/order"
	"airaa-jewels/internal/domain/settings"
	"airaa-jewels/internal/domain/user"
	"airaa-jewels/internal/domain/wishlist"
	"airaa-jewels/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Carts() CartRepository
	Orders() OrderRepository
	Coupons() CouponRepository
	Products() ProductRepository
	Settings() SettingsRepository
	Wishlists() WishlistRepository
	Users() UserRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	Settings(ctx context.Context) (*SettingsSnapshot, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type CartRepository interface {
	FindByUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*cart.Cart, error)
	Save(ctx context.Context, tx db.DBTX, c *cart.Cart) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, o *order.Order) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
}

type CouponRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *coupon.Coupon) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, c *coupon.Coupon) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *catalog.Product) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, p *catalog.Product) error
	SetInStock(ctx context.Context, tx db.DBTX, id uuid.UUID, inStock bool) error
}

type SettingsRepository interface {
	Update(ctx context.Context, tx db.DBTX, s *settings.Settings) error
}

type WishlistRepository interface {
	FindByUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*wishlist.Wishlist, error)
	Save(ctx context.Context, tx db.DBTX, w *wishlist.Wishlist) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, orderID uuid.UUID) error
	ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}
