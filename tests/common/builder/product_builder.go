//go:build unit || e2e

package builder

import (
	"time"

	"airaa-jewels/internal/domain/catalog"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductBuilder struct {
	ID                   uuid.UUID
	Name                 string
	Category             string
	PriceCents           int64
	RentPriceCents       *int64
	SecurityDepositCents int64
	InStock              bool
	Rating               float64
	ReviewCount          int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func NewProductBuilder() *ProductBuilder {
	now := time.Now()
	return &ProductBuilder{
		ID:         uuid.New(),
		Name:       "Gold Necklace",
		Category:   "necklaces",
		PriceCents: 250000,
		InStock:    true,
		Rating:     4.5,
		ReviewCount: 12,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

// Build methods
func (p *ProductBuilder) BuildDomain() (*catalog.Product, error) {
	category, err := catalog.NewCategory(p.Category)
	if err != nil {
		return nil, err
	}
	return catalog.NewProduct(p.Name, category, p.PriceCents, p.RentPriceCents, p.SecurityDepositCents, p.InStock)
}

func (p *ProductBuilder) BuildView() *queries.ProductView {
	return &queries.ProductView{
		ID:                   p.ID,
		Name:                 p.Name,
		Category:             p.Category,
		PriceCents:           p.PriceCents,
		RentPriceCents:       p.RentPriceCents,
		SecurityDepositCents: p.SecurityDepositCents,
		InStock:              p.InStock,
		Rating:               p.Rating,
		ReviewCount:          p.ReviewCount,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (p *ProductBuilder) BuildListItem() *queries.ProductListItem {
	return &queries.ProductListItem{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		PriceCents:     p.PriceCents,
		RentPriceCents: p.RentPriceCents,
		InStock:        p.InStock,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		CreatedAt:      p.CreatedAt,
	}
}

func (p *ProductBuilder) BuildCreateRequestDTO() reqdto.CreateProductRequest {
	return reqdto.CreateProductRequest{
		Name:                 p.Name,
		Category:             p.Category,
		PriceCents:           p.PriceCents,
		RentPriceCents:       p.RentPriceCents,
		SecurityDepositCents: p.SecurityDepositCents,
		InStock:              p.InStock,
	}
}

// Fluent builder methods
func (p *ProductBuilder) WithID(id uuid.UUID) *ProductBuilder {
	p.ID = id
	return p
}

func (p *ProductBuilder) WithName(name string) *ProductBuilder {
	p.Name = name
	return p
}

func (p *ProductBuilder) WithCategory(category string) *ProductBuilder {
	p.Category = category
	return p
}

func (p *ProductBuilder) WithPriceCents(price int64) *ProductBuilder {
	p.PriceCents = price
	return p
}

func (p *ProductBuilder) AsRentable(rentPriceCents, depositCents int64) *ProductBuilder {
	p.RentPriceCents = &rentPriceCents
	p.SecurityDepositCents = depositCents
	return p
}

func (p *ProductBuilder) AsOutOfStock() *ProductBuilder {
	p.InStock = false
	return p
}
