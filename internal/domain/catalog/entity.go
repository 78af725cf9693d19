package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrNegativeDeposit = errors.New("security deposit cannot be negative")
	ErrEmptyName       = errors.New("product name cannot be empty")
)

// Product is catalog reference data. Cart and order lines hold snapshots of
// its pricing fields, never a live reference, so later price edits do not
// affect items already added.
type Product struct {
	id                   uuid.UUID
	name                 string
	category             Category
	priceCents           int64
	rentPriceCents       *int64 // per day; nil when the piece is sale-only
	securityDepositCents int64
	inStock              bool
	rating               float64
	reviewCount          int
	createdAt            time.Time
	updatedAt            time.Time
}

func NewProduct(
	name string,
	category Category,
	priceCents int64,
	rentPriceCents *int64,
	securityDepositCents int64,
	inStock bool,
) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if rentPriceCents != nil && *rentPriceCents < 0 {
		return nil, ErrNegativePrice
	}
	if securityDepositCents < 0 {
		return nil, ErrNegativeDeposit
	}

	return &Product{
		id:                   uuid.New(),
		name:                 name,
		category:             category,
		priceCents:           priceCents,
		rentPriceCents:       rentPriceCents,
		securityDepositCents: securityDepositCents,
		inStock:              inStock,
	}, nil
}

func ReconstructProduct(
	id uuid.UUID,
	name string,
	category Category,
	priceCents int64,
	rentPriceCents *int64,
	securityDepositCents int64,
	inStock bool,
	rating float64,
	reviewCount int,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:                   id,
		name:                 name,
		category:             category,
		priceCents:           priceCents,
		rentPriceCents:       rentPriceCents,
		securityDepositCents: securityDepositCents,
		inStock:              inStock,
		rating:               rating,
		reviewCount:          reviewCount,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func (p *Product) IsRentable() bool {
	return p.rentPriceCents != nil
}

func (p *Product) ID() uuid.UUID               { return p.id }
func (p *Product) Name() string                { return p.name }
func (p *Product) Category() Category          { return p.category }
func (p *Product) PriceCents() int64           { return p.priceCents }
func (p *Product) RentPriceCents() *int64      { return p.rentPriceCents }
func (p *Product) SecurityDepositCents() int64 { return p.securityDepositCents }
func (p *Product) InStock() bool               { return p.inStock }
func (p *Product) Rating() float64             { return p.rating }
func (p *Product) ReviewCount() int            { return p.reviewCount }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
