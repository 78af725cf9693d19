package queries

import (
	"context"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.New("product not found")

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortRating    ProductSort = "rating"
)

func (s ProductSort) IsValid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	default:
		return false
	}
}

type ProductFilter struct {
	Category *string
	Search   *string
	Sort     ProductSort
	Limit    int
	After    *Cursor
}

type ProductQueries interface {
	List(ctx context.Context, filter ProductFilter) ([]*ProductListItem, *Cursor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	Search(ctx context.Context, filter ProductFilter) ([]*ProductListItem, error)
}

type productQueriesImpl struct {
	readStore ProductReadStore
}

func NewProductQueries(readStore ProductReadStore) ProductQueries {
	return &productQueriesImpl{readStore: readStore}
}

func (q *productQueriesImpl) List(ctx context.Context, filter ProductFilter) ([]*ProductListItem, *Cursor, error) {
	filter.Limit = ValidateLimit(filter.Limit)
	if !filter.Sort.IsValid() {
		filter.Sort = SortNewest
	}

	items, err := q.readStore.Search(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	// Keyset pagination follows creation order; other sorts return a
	// single page and no continuation cursor.
	var next *Cursor
	if filter.Sort == SortNewest && len(items) == filter.Limit {
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	product, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
