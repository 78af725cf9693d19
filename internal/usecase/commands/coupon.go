package commands

import (
	"context"

	"airaa-jewels/internal/domain/coupon"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/pkg/patch"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDuplicateCouponCode = errs.New("coupon code already exists")

type CouponCommands interface {
	Create(ctx context.Context, req reqdto.CreateCouponRequest) (*queries.CouponView, error)
	// Update cannot change the code; carts reference coupons by code.
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateCouponRequest) (*queries.CouponView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponCommandsImpl struct {
	uow           shared.UnitOfWork
	couponQueries queries.CouponQueries
}

func NewCouponCommands(uow shared.UnitOfWork, couponQueries queries.CouponQueries) CouponCommands {
	return &couponCommandsImpl{uow: uow, couponQueries: couponQueries}
}

func (u *couponCommandsImpl) Create(ctx context.Context, req reqdto.CreateCouponRequest) (*queries.CouponView, error) {
	entity, err := coupon.NewCoupon(uuid.New(), req.Code, req.AmountOffCents, req.PercentOff, req.MinOrderCents, req.ValidFrom, req.ValidTo)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, createErr := tx.Coupons().Create(ctx, tx.DB(), entity)
		if createErr != nil {
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return ErrDuplicateCouponCode
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		id = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.couponQueries.GetByID(ctx, id)
}

func (u *couponCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateCouponRequest) (*queries.CouponView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := u.couponQueries.GetByID(ctx, id)
		if err != nil {
			return err
		}

		amountOff := existing.AmountOffCents
		percentOff := existing.PercentOff
		if req.AmountOffCents != nil || req.PercentOff != nil {
			amountOff = req.AmountOffCents
			percentOff = req.PercentOff
		}

		validFrom := existing.ValidFrom
		if req.ValidFrom != nil {
			validFrom = req.ValidFrom
		}
		validTo := existing.ValidTo
		if req.ValidTo != nil {
			validTo = req.ValidTo
		}

		entity, err := coupon.NewCoupon(
			existing.ID,
			existing.Code,
			amountOff,
			percentOff,
			patch.Coalesce(req.MinOrderCents, existing.MinOrderCents),
			validFrom,
			validTo,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Coupons().Update(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.couponQueries.GetByID(ctx, id)
}

// Delete removes the coupon row only. Carts that already applied it keep
// showing the code but stop receiving the discount, and orders keep their
// frozen discount amounts.
func (u *couponCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Coupons().Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return queries.ErrCouponNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
