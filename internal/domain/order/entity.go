package order

import (
	"errors"
	"time"

	"airaa-jewels/internal/domain/cart"

	"github.com/google/uuid"
)

var (
	ErrNoLines             = errors.New("order must have at least one line")
	ErrEmptyAddress        = errors.New("shipping address cannot be empty")
	ErrMixedModes          = errors.New("order lines must all match the order kind")
	ErrInvalidPaymentState = errors.New("invalid payment method")
)

// OrderLine is frozen at checkout; price and quantity never change after
// the order exists.
type OrderLine struct {
	ProductID            uuid.UUID
	ProductName          string
	Quantity             int
	UnitPriceCents       int64
	RentPriceCents       int64
	RentDays             int
	SecurityDepositCents int64
}

// Order covers both purchases and rentals, distinguished by kind.
// Records are append-only: status and tracking mutate, nothing is deleted.
type Order struct {
	id             uuid.UUID
	userID         uuid.UUID
	kind           Kind
	status         Status
	lines          []OrderLine
	subtotalCents  int64
	shippingCents  int64
	taxCents       int64
	discountCents  int64
	totalCents     int64
	depositCents   int64
	couponCode     *string
	shippingAddr   string
	paymentMethod  PaymentMethod
	paymentRef     *string
	trackingNumber *string
	createdAt      time.Time
	updatedAt      time.Time
}

type Totals struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	DiscountCents int64
	TotalCents    int64
	DepositCents  int64
}

func NewOrder(
	userID uuid.UUID,
	kind Kind,
	lines []OrderLine,
	totals Totals,
	couponCode *string,
	shippingAddr string,
	paymentMethod PaymentMethod,
	paymentRef *string,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if shippingAddr == "" {
		return nil, ErrEmptyAddress
	}
	if !paymentMethod.IsValid() {
		return nil, ErrInvalidPaymentState
	}

	return &Order{
		id:            uuid.New(),
		userID:        userID,
		kind:          kind,
		status:        InitialStatus(kind),
		lines:         lines,
		subtotalCents: totals.SubtotalCents,
		shippingCents: totals.ShippingCents,
		taxCents:      totals.TaxCents,
		discountCents: totals.DiscountCents,
		totalCents:    totals.TotalCents,
		depositCents:  totals.DepositCents,
		couponCode:    couponCode,
		shippingAddr:  shippingAddr,
		paymentMethod: paymentMethod,
		paymentRef:    paymentRef,
	}, nil
}

// LinesFromCart snapshots the cart lines matching mode into order lines.
func LinesFromCart(lines []cart.Line, mode cart.Mode) []OrderLine {
	var out []OrderLine
	for _, l := range lines {
		if l.Mode() != mode {
			continue
		}
		out = append(out, OrderLine{
			ProductID:            l.ProductID(),
			ProductName:          l.ProductName(),
			Quantity:             l.Quantity(),
			UnitPriceCents:       l.UnitPriceCents(),
			RentPriceCents:       l.RentPriceCents(),
			RentDays:             l.RentDays(),
			SecurityDepositCents: l.SecurityDepositCents(),
		})
	}
	return out
}

// UpdateStatus replaces the status (and tracking number, when given).
// Only membership in the kind's status set is checked; any status can
// follow any other.
func (o *Order) UpdateStatus(status Status, trackingNumber *string) error {
	if !status.ValidFor(o.kind) {
		return ErrInvalidStatus
	}
	o.status = status
	if trackingNumber != nil {
		o.trackingNumber = trackingNumber
	}
	return nil
}

func ReconstructOrder(
	id, userID uuid.UUID,
	kind Kind,
	status Status,
	lines []OrderLine,
	totals Totals,
	couponCode *string,
	shippingAddr string,
	paymentMethod PaymentMethod,
	paymentRef *string,
	trackingNumber *string,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:             id,
		userID:         userID,
		kind:           kind,
		status:         status,
		lines:          lines,
		subtotalCents:  totals.SubtotalCents,
		shippingCents:  totals.ShippingCents,
		taxCents:       totals.TaxCents,
		discountCents:  totals.DiscountCents,
		totalCents:     totals.TotalCents,
		depositCents:   totals.DepositCents,
		couponCode:     couponCode,
		shippingAddr:   shippingAddr,
		paymentMethod:  paymentMethod,
		paymentRef:     paymentRef,
		trackingNumber: trackingNumber,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) Kind() Kind                   { return o.kind }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Lines() []OrderLine           { return o.lines }
func (o *Order) SubtotalCents() int64         { return o.subtotalCents }
func (o *Order) ShippingCents() int64         { return o.shippingCents }
func (o *Order) TaxCents() int64              { return o.taxCents }
func (o *Order) DiscountCents() int64         { return o.discountCents }
func (o *Order) TotalCents() int64            { return o.totalCents }
func (o *Order) DepositCents() int64          { return o.depositCents }
func (o *Order) CouponCode() *string          { return o.couponCode }
func (o *Order) ShippingAddress() string      { return o.shippingAddr }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentRef() *string          { return o.paymentRef }
func (o *Order) TrackingNumber() *string      { return o.trackingNumber }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
