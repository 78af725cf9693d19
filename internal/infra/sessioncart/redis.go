package sessioncart

import (
	"context"
	"encoding/json"
	"time"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/usecase/commands"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	errCartEncode = errs.New("failed to encode guest cart")
	errCartDecode = errs.New("failed to decode guest cart")
	errCartStore  = errs.New("guest cart store unavailable")
)

const keyPrefix = "guest_cart:"

// RedisStore keeps guest carts in redis keyed by session ID. Entries
// expire after the configured TTL; an expired cart simply starts empty.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, cfg config.RedisConfig) commands.GuestCartStore {
	return &RedisStore{client: client, ttl: cfg.CartTTL}
}

type storedLine struct {
	ProductID            uuid.UUID `json:"product_id"`
	ProductName          string    `json:"product_name"`
	Mode                 string    `json:"mode"`
	Quantity             int       `json:"quantity"`
	UnitPriceCents       int64     `json:"unit_price_cents"`
	RentPriceCents       int64     `json:"rent_price_cents"`
	RentDays             int       `json:"rent_days"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
}

type storedCoupon struct {
	CouponID uuid.UUID `json:"coupon_id"`
	Code     string    `json:"code"`
}

type storedCart struct {
	ID        uuid.UUID     `json:"id"`
	Lines     []storedLine  `json:"lines"`
	Coupon    *storedCoupon `json:"coupon,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errs.Mark(err, errCartStore)
	}

	var stored storedCart
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, errs.Mark(err, errCartDecode)
	}

	lines := make([]cart.Line, 0, len(stored.Lines))
	for _, l := range stored.Lines {
		lines = append(lines, cart.ReconstructLine(
			l.ProductID,
			l.ProductName,
			cart.Mode(l.Mode),
			l.Quantity,
			l.UnitPriceCents,
			l.RentPriceCents,
			l.RentDays,
			l.SecurityDepositCents,
		))
	}

	var applied *cart.AppliedCoupon
	if stored.Coupon != nil {
		applied = &cart.AppliedCoupon{CouponID: stored.Coupon.CouponID, Code: stored.Coupon.Code}
	}

	return cart.ReconstructCart(stored.ID, uuid.Nil, lines, applied, stored.UpdatedAt), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	stored := storedCart{
		ID:        c.ID(),
		Lines:     make([]storedLine, 0, len(c.Lines())),
		UpdatedAt: c.UpdatedAt(),
	}
	for _, l := range c.Lines() {
		stored.Lines = append(stored.Lines, storedLine{
			ProductID:            l.ProductID(),
			ProductName:          l.ProductName(),
			Mode:                 l.Mode().String(),
			Quantity:             l.Quantity(),
			UnitPriceCents:       l.UnitPriceCents(),
			RentPriceCents:       l.RentPriceCents(),
			RentDays:             l.RentDays(),
			SecurityDepositCents: l.SecurityDepositCents(),
		})
	}
	if applied := c.Coupon(); applied != nil {
		stored.Coupon = &storedCoupon{CouponID: applied.CouponID, Code: applied.Code}
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return errs.Mark(err, errCartEncode)
	}

	if err := s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return errs.Mark(err, errCartStore)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return errs.Mark(err, errCartStore)
	}
	return nil
}
