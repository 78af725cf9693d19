package cart

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidRentDays = errors.New("rent days must be at least 1")
	ErrNotRentable     = errors.New("product has no rent price")
)

// Line is a snapshot of the product at the moment it was added.
// Catalog price edits never reach lines already in a cart.
type Line struct {
	productID            uuid.UUID
	productName          string
	mode                 Mode
	quantity             int
	unitPriceCents       int64  // buy price per unit
	rentPriceCents       int64  // per day, rent lines only
	rentDays             int    // rent lines only, >= 1
	securityDepositCents int64  // rent lines only
}

func NewBuyLine(productID uuid.UUID, productName string, unitPriceCents int64, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{
		productID:      productID,
		productName:    productName,
		mode:           ModeBuy,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
	}, nil
}

// NewRentLine defaults rentDays to 1 when the caller passes 0 (unset);
// negative values are rejected outright.
func NewRentLine(productID uuid.UUID, productName string, rentPriceCents int64, quantity, rentDays int, securityDepositCents int64) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	if rentDays < 0 {
		return Line{}, ErrInvalidRentDays
	}
	if rentDays == 0 {
		rentDays = 1
	}
	return Line{
		productID:            productID,
		productName:          productName,
		mode:                 ModeRent,
		quantity:             quantity,
		rentPriceCents:       rentPriceCents,
		rentDays:             rentDays,
		securityDepositCents: securityDepositCents,
	}, nil
}

func ReconstructLine(
	productID uuid.UUID,
	productName string,
	mode Mode,
	quantity int,
	unitPriceCents, rentPriceCents int64,
	rentDays int,
	securityDepositCents int64,
) Line {
	return Line{
		productID:            productID,
		productName:          productName,
		mode:                 mode,
		quantity:             quantity,
		unitPriceCents:       unitPriceCents,
		rentPriceCents:       rentPriceCents,
		rentDays:             rentDays,
		securityDepositCents: securityDepositCents,
	}
}

// AmountCents is the line's contribution to the cart subtotal:
// price×qty for buys, rentPrice×qty×days for rents. The security
// deposit is excluded; it is refundable and not revenue.
func (l Line) AmountCents() int64 {
	if l.mode == ModeRent {
		return l.rentPriceCents * int64(l.quantity) * int64(l.rentDays)
	}
	return l.unitPriceCents * int64(l.quantity)
}

func (l Line) DepositCents() int64 {
	if l.mode != ModeRent {
		return 0
	}
	return l.securityDepositCents * int64(l.quantity)
}

func (l Line) ProductID() uuid.UUID          { return l.productID }
func (l Line) ProductName() string           { return l.productName }
func (l Line) Mode() Mode                    { return l.mode }
func (l Line) Quantity() int                 { return l.quantity }
func (l Line) UnitPriceCents() int64         { return l.unitPriceCents }
func (l Line) RentPriceCents() int64         { return l.rentPriceCents }
func (l Line) RentDays() int                 { return l.rentDays }
func (l Line) SecurityDepositCents() int64   { return l.securityDepositCents }
