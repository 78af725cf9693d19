package queries

import (
	"context"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/domain/coupon"
	"airaa-jewels/internal/domain/pricing"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCartUnavailable = errs.New("cart unavailable")

type CartQueries interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*CartView, error)
	// ViewOf prices an already loaded cart; used for guest carts too.
	ViewOf(ctx context.Context, c *cart.Cart) (*CartView, error)
}

type CartReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
}

type CouponReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CouponView, error)
	FindByCode(ctx context.Context, code string) (*CouponView, error)
	FindAll(ctx context.Context) ([]*CouponView, error)
}

type SettingsReadStore interface {
	Get(ctx context.Context) (*SettingsView, error)
}

type cartQueriesImpl struct {
	cartStore     CartReadStore
	couponStore   CouponReadStore
	settingsStore SettingsReadStore
	calculator    pricing.Calculator
}

func NewCartQueries(
	cartStore CartReadStore,
	couponStore CouponReadStore,
	settingsStore SettingsReadStore,
	calculator pricing.Calculator,
) CartQueries {
	return &cartQueriesImpl{
		cartStore:     cartStore,
		couponStore:   couponStore,
		settingsStore: settingsStore,
		calculator:    calculator,
	}
}

func (q *cartQueriesImpl) GetByUser(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	c, err := q.cartStore.FindByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c = cart.NewCart(userID)
		} else {
			return nil, errs.Mark(err, ErrCartUnavailable)
		}
	}
	return q.ViewOf(ctx, c)
}

func (q *cartQueriesImpl) ViewOf(ctx context.Context, c *cart.Cart) (*CartView, error) {
	settingsView, err := q.settingsStore.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCartUnavailable)
	}

	discount, couponCode, err := q.resolveDiscount(ctx, c)
	if err != nil {
		return nil, err
	}

	quote := q.calculator.Quote(c, pricing.Settings{
		TaxRatePercent:             settingsView.TaxRatePercent,
		FreeShippingThresholdCents: settingsView.FreeShippingThresholdCents,
		ShippingFeeCents:           settingsView.ShippingFeeCents,
	}, discount)

	lines := make([]CartLineView, 0, len(c.Lines()))
	for _, l := range c.Lines() {
		lines = append(lines, CartLineView{
			ProductID:            l.ProductID(),
			ProductName:          l.ProductName(),
			Mode:                 l.Mode().String(),
			Quantity:             l.Quantity(),
			UnitPriceCents:       l.UnitPriceCents(),
			RentPriceCents:       l.RentPriceCents(),
			RentDays:             l.RentDays(),
			SecurityDepositCents: l.SecurityDepositCents(),
			AmountCents:          l.AmountCents(),
		})
	}

	return &CartView{
		Lines:      lines,
		CouponCode: couponCode,
		Quote: QuoteView{
			SubtotalCents: quote.SubtotalCents,
			ShippingCents: quote.ShippingCents,
			TaxCents:      quote.TaxCents,
			DiscountCents: quote.DiscountCents,
			TotalCents:    quote.TotalCents,
			DepositCents:  quote.DepositCents,
			ItemCount:     quote.ItemCount,
		},
		UpdatedAt: c.UpdatedAt(),
	}, nil
}

// resolveDiscount drops the discount when the applied coupon was deleted
// from the admin side; the code stays visible on the cart.
func (q *cartQueriesImpl) resolveDiscount(ctx context.Context, c *cart.Cart) (*coupon.Discount, *string, error) {
	applied := c.Coupon()
	if applied == nil {
		return nil, nil, nil
	}

	view, err := q.couponStore.FindByID(ctx, applied.CouponID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			code := applied.Code
			return nil, &code, nil
		}
		return nil, nil, errs.Mark(err, ErrCartUnavailable)
	}

	discount, err := coupon.NewDiscount(view.AmountOffCents, view.PercentOff)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrCartUnavailable)
	}

	code := view.Code
	return &discount, &code, nil
}
