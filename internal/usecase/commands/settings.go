package commands

import (
	"context"
	"time"

	"airaa-jewels/internal/domain/settings"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/internal/usecase/shared"
)

type SettingsCommands interface {
	Patch(ctx context.Context, req reqdto.PatchSettingsRequest) (*queries.SettingsView, error)
}

type settingsCommandsImpl struct {
	uow             shared.UnitOfWork
	settingsQueries queries.SettingsQueries
}

func NewSettingsCommands(uow shared.UnitOfWork, settingsQueries queries.SettingsQueries) SettingsCommands {
	return &settingsCommandsImpl{uow: uow, settingsQueries: settingsQueries}
}

// Patch merges the request into the single settings row. Changes apply
// to the next quote; existing carts are repriced on their next read.
func (u *settingsCommandsImpl) Patch(ctx context.Context, req reqdto.PatchSettingsRequest) (*queries.SettingsView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().Settings(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// updated_at is stamped by the database on write.
		entity := settings.ReconstructSettings(
			snapshot.TaxRatePercent,
			snapshot.FreeShippingThresholdCents,
			snapshot.ShippingFeeCents,
			snapshot.CodEnabled,
			time.Time{},
		)
		if err := entity.Patch(req.TaxRatePercent, req.FreeShippingThresholdCents, req.ShippingFeeCents, req.CodEnabled); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Settings().Update(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.settingsQueries.Get(ctx)
}
