package queries

import (
	"context"

	"airaa-jewels/internal/pkg/errs"
)

var ErrSettingsUnavailable = errs.New("store settings unavailable")

type SettingsQueries interface {
	Get(ctx context.Context) (*SettingsView, error)
}

type settingsQueriesImpl struct {
	readStore SettingsReadStore
}

func NewSettingsQueries(readStore SettingsReadStore) SettingsQueries {
	return &settingsQueriesImpl{readStore: readStore}
}

func (q *settingsQueriesImpl) Get(ctx context.Context) (*SettingsView, error) {
	view, err := q.readStore.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrSettingsUnavailable)
	}
	return view, nil
}
