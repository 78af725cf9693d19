package readstore

import (
	"context"
	"fmt"
	"strings"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"
	"airaa-jewels/internal/pkg/pgconv"
	"airaa-jewels/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(db db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: db}
}

const productColumns = `id, name, category, price_cents, rent_price_cents,
       security_deposit_cents, in_stock, rating, review_count, created_at, updated_at`

const findProductByIDSQL = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1`

func (s *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row := s.db.QueryRow(ctx, findProductByIDSQL, id)
	view, err := scanProductView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return view, nil
}

func (s *ProductReadStore) Search(ctx context.Context, filter queries.ProductFilter) ([]*queries.ProductListItem, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + productColumns + " FROM products")

	var (
		conds []string
		args  []any
	)
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Sort == queries.SortNewest && filter.After != nil && filter.After.After != "" {
		afterTime, afterID, err := queries.DecodeAfterCursor(filter.After.After)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid pagination cursor", err, infra.KindNotFound)
		}
		args = append(args, afterTime)
		tsArg := len(args)
		args = append(args, afterID)
		conds = append(conds, fmt.Sprintf("(created_at, id) < ($%d, $%d)", tsArg, len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	switch filter.Sort {
	case queries.SortPriceAsc:
		sb.WriteString(" ORDER BY price_cents ASC, id ASC")
	case queries.SortPriceDesc:
		sb.WriteString(" ORDER BY price_cents DESC, id ASC")
	case queries.SortRating:
		sb.WriteString(" ORDER BY rating DESC, review_count DESC, id ASC")
	default:
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	}

	args = append(args, filter.Limit)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search products", err)
	}
	defer rows.Close()

	items := make([]*queries.ProductListItem, 0, filter.Limit)
	for rows.Next() {
		view, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		var item queries.ProductListItem
		if err := copier.Copy(&item, view); err != nil {
			return nil, infra.WrapRepoErr("failed to map product view", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductView(row rowScanner) (*queries.ProductView, error) {
	var v queries.ProductView
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Category,
		&v.PriceCents,
		&v.RentPriceCents,
		&v.SecurityDepositCents,
		&v.InStock,
		&v.Rating,
		&v.ReviewCount,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
