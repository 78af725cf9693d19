package queries

import (
	"context"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderAccess   = errs.New("order access denied")
)

type OrderFilter struct {
	Kind   *string
	Status *string
	Limit  int
	After  *Cursor
}

type OrderQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*OrderView, error)
	// GetByIDSystem bypasses the ownership check for read-after-write paths.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, kind *string) ([]*OrderListItem, error)
	ListAll(ctx context.Context, filter OrderFilter) ([]*OrderListItem, *Cursor, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUser(ctx context.Context, userID uuid.UUID, kind *string) ([]*OrderListItem, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*OrderView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && actorRole != "admin" {
		return nil, ErrOrderAccess
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, kind *string) ([]*OrderListItem, error) {
	return q.readStore.FindByUser(ctx, userID, kind)
}

func (q *orderQueriesImpl) ListAll(ctx context.Context, filter OrderFilter) ([]*OrderListItem, *Cursor, error) {
	filter.Limit = ValidateLimit(filter.Limit)

	items, err := q.readStore.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(items) == filter.Limit {
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}
