package order

import "errors"

var (
	ErrInvalidKind   = errors.New("invalid order kind")
	ErrInvalidStatus = errors.New("invalid status for order kind")
)

type Kind string

const (
	KindPurchase Kind = "purchase"
	KindRental   Kind = "rental"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	return k == KindPurchase || k == KindRental
}

func NewKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.IsValid() {
		return "", ErrInvalidKind
	}
	return kind, nil
}

type Status string

const (
	// Purchase statuses
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"

	// Rental statuses
	StatusRented   Status = "rented"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
)

func (s Status) String() string {
	return string(s)
}

// ValidFor reports whether the status belongs to the kind's set. Any
// valid status may follow any other; there is no transition table.
func (s Status) ValidFor(kind Kind) bool {
	switch kind {
	case KindPurchase:
		switch s {
		case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
			return true
		}
	case KindRental:
		switch s {
		case StatusRented, StatusReturned, StatusOverdue:
			return true
		}
	}
	return false
}

func InitialStatus(kind Kind) Status {
	if kind == KindRental {
		return StatusRented
	}
	return StatusProcessing
}

type PaymentMethod string

const (
	PaymentGateway        PaymentMethod = "gateway"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentGateway || m == PaymentCashOnDelivery
}
