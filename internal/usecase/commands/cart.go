package commands

import (
	"context"
	"errors"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/domain/coupon"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/clock"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound         = errs.New("product not found")
	ErrProductOutOfStock       = errs.New("product out of stock")
	ErrProductNotForRent       = errs.New("product not available for rent")
	ErrCouponNotFound          = errs.New("coupon not found")
	ErrCouponNotActive         = errs.New("coupon not active")
	ErrCouponBelowMinimum      = errs.New("order amount below coupon minimum")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CartCommands interface {
	AddItem(ctx context.Context, actor CartActor, req reqdto.AddCartItemRequest) (*queries.CartView, error)
	UpdateItem(ctx context.Context, actor CartActor, productID uuid.UUID, req reqdto.UpdateCartItemRequest) (*queries.CartView, error)
	RemoveItem(ctx context.Context, actor CartActor, productID uuid.UUID, mode string) (*queries.CartView, error)
	Clear(ctx context.Context, actor CartActor) (*queries.CartView, error)
	ApplyCoupon(ctx context.Context, actor CartActor, code string) (*queries.CartView, error)
	RemoveCoupon(ctx context.Context, actor CartActor) (*queries.CartView, error)
}

type cartCommandsImpl struct {
	uow         shared.UnitOfWork
	guestCarts  GuestCartStore
	cartQueries queries.CartQueries
	clock       clock.Clock
}

func NewCartCommands(
	uow shared.UnitOfWork,
	guestCarts GuestCartStore,
	cartQueries queries.CartQueries,
	clk clock.Clock,
) CartCommands {
	return &cartCommandsImpl{
		uow:         uow,
		guestCarts:  guestCarts,
		cartQueries: cartQueries,
		clock:       clk,
	}
}

func (u *cartCommandsImpl) AddItem(ctx context.Context, actor CartActor, req reqdto.AddCartItemRequest) (*queries.CartView, error) {
	mode, err := cart.NewMode(req.Mode)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return u.mutate(ctx, actor, func(ctx context.Context, c *cart.Cart, reads shared.CommandReads) error {
		product, err := reads.ProductByID(ctx, req.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !product.InStock {
			return ErrProductOutOfStock
		}

		line, err := buildLine(product, mode, req.Quantity, req.RentDays)
		if err != nil {
			return err
		}
		c.AddLine(line)
		return nil
	})
}

func (u *cartCommandsImpl) UpdateItem(ctx context.Context, actor CartActor, productID uuid.UUID, req reqdto.UpdateCartItemRequest) (*queries.CartView, error) {
	mode, err := cart.NewMode(req.Mode)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return u.mutate(ctx, actor, func(ctx context.Context, c *cart.Cart, _ shared.CommandReads) error {
		c.UpdateQuantity(productID, mode, req.Quantity)
		return nil
	})
}

func (u *cartCommandsImpl) RemoveItem(ctx context.Context, actor CartActor, productID uuid.UUID, modeStr string) (*queries.CartView, error) {
	mode, err := cart.NewMode(modeStr)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return u.mutate(ctx, actor, func(ctx context.Context, c *cart.Cart, _ shared.CommandReads) error {
		c.RemoveLine(productID, mode)
		return nil
	})
}

func (u *cartCommandsImpl) Clear(ctx context.Context, actor CartActor) (*queries.CartView, error) {
	return u.mutate(ctx, actor, func(ctx context.Context, c *cart.Cart, _ shared.CommandReads) error {
		c.Clear()
		return nil
	})
}

func (u *cartCommandsImpl) ApplyCoupon(ctx context.Context, actor CartActor, code string) (*queries.CartView, error) {
	return u.mutate(ctx, actor, func(ctx context.Context, c *cart.Cart, reads shared.CommandReads) error {
		// Codes are matched case-sensitively as stored.
		snapshot, err := reads.CouponByCode(ctx, code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCouponNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity, err := coupon.NewCoupon(
			snapshot.ID,
			snapshot.Code,
			snapshot.AmountOffCents,
			snapshot.PercentOff,
			snapshot.MinOrderCents,
			snapshot.ValidFrom,
			snapshot.ValidTo,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := entity.ValidateUsage(u.clock.Now(), c.SubtotalCents()); err != nil {
			if errors.Is(err, coupon.ErrBelowMinimumOrder) {
				return ErrCouponBelowMinimum
			}
			return ErrCouponNotActive
		}

		c.ApplyCoupon(entity.ID(), entity.Code().String())
		return nil
	})
}

func (u *cartCommandsImpl) RemoveCoupon(ctx context.Context, actor CartActor) (*queries.CartView, error) {
	return u.mutate(ctx, actor, func(ctx context.Context, c *cart.Cart, _ shared.CommandReads) error {
		c.RemoveCoupon()
		return nil
	})
}

// mutate loads the actor's cart, applies fn, persists the result, then
// prices the mutated cart for the response.
func (u *cartCommandsImpl) mutate(
	ctx context.Context,
	actor CartActor,
	fn func(ctx context.Context, c *cart.Cart, reads shared.CommandReads) error,
) (*queries.CartView, error) {
	if actor.UserID == nil {
		return u.mutateGuest(ctx, actor.SessionID, fn)
	}

	var mutated *cart.Cart
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Carts().FindByUser(ctx, tx.DB(), *actor.UserID)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			c = cart.NewCart(*actor.UserID)
		}

		if err := fn(ctx, c, tx.Reads()); err != nil {
			return err
		}

		if err := tx.Carts().Save(ctx, tx.DB(), c); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		mutated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.cartQueries.ViewOf(ctx, mutated)
}

func (u *cartCommandsImpl) mutateGuest(
	ctx context.Context,
	sessionID string,
	fn func(ctx context.Context, c *cart.Cart, reads shared.CommandReads) error,
) (*queries.CartView, error) {
	c, err := u.guestCarts.Get(ctx, sessionID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if c == nil {
		c = cart.NewCart(uuid.Nil)
	}

	if err := fn(ctx, c, u.uow.CommandReads()); err != nil {
		return nil, err
	}

	if err := u.guestCarts.Save(ctx, sessionID, c); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.cartQueries.ViewOf(ctx, c)
}

func buildLine(product *shared.ProductSnapshot, mode cart.Mode, quantity, rentDays int) (cart.Line, error) {
	if mode == cart.ModeRent {
		if product.RentPriceCents == nil {
			return cart.Line{}, ErrProductNotForRent
		}
		line, err := cart.NewRentLine(product.ID, product.Name, *product.RentPriceCents, quantity, rentDays, product.SecurityDepositCents)
		if err != nil {
			return cart.Line{}, errs.Mark(err, ErrDomainValidation)
		}
		return line, nil
	}

	line, err := cart.NewBuyLine(product.ID, product.Name, product.PriceCents, quantity)
	if err != nil {
		return cart.Line{}, errs.Mark(err, ErrDomainValidation)
	}
	return line, nil
}
