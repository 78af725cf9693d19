package commands

import (
	"context"
	"errors"

	"airaa-jewels/internal/domain/order"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidOrderStatus = errs.New("invalid order status")

type OrderCommands interface {
	// UpdateStatus changes an order's status. An unknown order ID is a
	// no-op and returns a nil view.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req reqdto.UpdateOrderStatusRequest) (*queries.OrderView, error)
}

type orderCommandsImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
}

func NewOrderCommands(uow shared.UnitOfWork, orderQueries queries.OrderQueries) OrderCommands {
	return &orderCommandsImpl{uow: uow, orderQueries: orderQueries}
}

func (u *orderCommandsImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, req reqdto.UpdateOrderStatusRequest) (*queries.OrderView, error) {
	var missing bool
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				missing = true
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := entity.UpdateStatus(order.Status(req.Status), req.TrackingNumber); err != nil {
			if errors.Is(err, order.ErrInvalidStatus) {
				return ErrInvalidOrderStatus
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	return u.orderQueries.GetByIDSystem(ctx, orderID)
}
