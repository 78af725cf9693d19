package commands

import (
	"context"
	"time"

	"airaa-jewels/internal/domain/catalog"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/pkg/patch"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductCommands interface {
	Create(ctx context.Context, req reqdto.CreateProductRequest) (*queries.ProductView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateProductRequest) (*queries.ProductView, error)
	SetInStock(ctx context.Context, id uuid.UUID, inStock bool) error
}

type productCommandsImpl struct {
	uow            shared.UnitOfWork
	productQueries queries.ProductQueries
}

func NewProductCommands(uow shared.UnitOfWork, productQueries queries.ProductQueries) ProductCommands {
	return &productCommandsImpl{uow: uow, productQueries: productQueries}
}

func (u *productCommandsImpl) Create(ctx context.Context, req reqdto.CreateProductRequest) (*queries.ProductView, error) {
	category, err := catalog.NewCategory(req.Category)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	entity, err := catalog.NewProduct(req.Name, category, req.PriceCents, req.RentPriceCents, req.SecurityDepositCents, req.InStock)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, createErr := tx.Products().Create(ctx, tx.DB(), entity)
		if createErr != nil {
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		id = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.productQueries.GetByID(ctx, id)
}

func (u *productCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateProductRequest) (*queries.ProductView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().ProductByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		categoryStr := patch.Coalesce(req.Category, snapshot.Category)
		category, err := catalog.NewCategory(categoryStr)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		rentPrice := snapshot.RentPriceCents
		if req.RentPriceCents != nil {
			rentPrice = req.RentPriceCents
		}

		// Rating fields and timestamps are owned by the read side and
		// ignored by Update.
		entity := catalog.ReconstructProduct(
			snapshot.ID,
			patch.Coalesce(req.Name, snapshot.Name),
			category,
			patch.Coalesce(req.PriceCents, snapshot.PriceCents),
			rentPrice,
			patch.Coalesce(req.SecurityDepositCents, snapshot.SecurityDepositCents),
			patch.Coalesce(req.InStock, snapshot.InStock),
			0, 0,
			time.Time{}, time.Time{},
		)

		if err := tx.Products().Update(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.productQueries.GetByID(ctx, id)
}

func (u *productCommandsImpl) SetInStock(ctx context.Context, id uuid.UUID, inStock bool) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Products().SetInStock(ctx, tx.DB(), id, inStock); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
