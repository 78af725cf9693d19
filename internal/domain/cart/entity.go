package cart

import (
	"time"

	"github.com/google/uuid"
)

// AppliedCoupon is the coupon snapshot carried by the cart. At most one
// coupon is applied at a time; applying another replaces it.
type AppliedCoupon struct {
	CouponID uuid.UUID
	Code     string
}

// Cart is the per-user aggregate. Every mutation is persisted by the
// caller; the aggregate itself only guards the line invariants.
type Cart struct {
	id        uuid.UUID
	userID    uuid.UUID
	lines     []Line
	coupon    *AppliedCoupon
	updatedAt time.Time
}

func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		id:     uuid.New(),
		userID: userID,
	}
}

func ReconstructCart(id, userID uuid.UUID, lines []Line, coupon *AppliedCoupon, updatedAt time.Time) *Cart {
	return &Cart{
		id:        id,
		userID:    userID,
		lines:     lines,
		coupon:    coupon,
		updatedAt: updatedAt,
	}
}

// AddLine merges into an existing line with the same (productID, mode)
// by summing quantities; otherwise the line is appended. The existing
// line's price snapshot wins on merge.
func (c *Cart) AddLine(line Line) {
	for i := range c.lines {
		if c.lines[i].productID == line.productID && c.lines[i].mode == line.mode {
			c.lines[i].quantity += line.quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// RemoveLine deletes the matching entry. Removing a line that does not
// exist is a silent no-op.
func (c *Cart) RemoveLine(productID uuid.UUID, mode Mode) {
	for i := range c.lines {
		if c.lines[i].productID == productID && c.lines[i].mode == mode {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity leaves the cart unchanged for quantities below 1 and
// for lines that do not exist; no error is surfaced either way.
func (c *Cart) UpdateQuantity(productID uuid.UUID, mode Mode, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].productID == productID && c.lines[i].mode == mode {
			c.lines[i].quantity = quantity
			return
		}
	}
}

// Clear empties the lines and drops any applied coupon. Invoked after a
// confirmed checkout.
func (c *Cart) Clear() {
	c.lines = nil
	c.coupon = nil
}

// ApplyCoupon replaces any previously applied coupon; no stacking.
func (c *Cart) ApplyCoupon(couponID uuid.UUID, code string) {
	c.coupon = &AppliedCoupon{CouponID: couponID, Code: code}
}

func (c *Cart) RemoveCoupon() {
	c.coupon = nil
}

func (c *Cart) SubtotalCents() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.AmountCents()
	}
	return total
}

func (c *Cart) DepositTotalCents() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.DepositCents()
	}
	return total
}

func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.lines {
		count += l.quantity
	}
	return count
}

func (c *Cart) HasBuyLines() bool {
	for _, l := range c.lines {
		if l.mode == ModeBuy {
			return true
		}
	}
	return false
}

func (c *Cart) HasRentLines() bool {
	for _, l := range c.lines {
		if l.mode == ModeRent {
			return true
		}
	}
	return false
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) ID() uuid.UUID          { return c.id }
func (c *Cart) UserID() uuid.UUID      { return c.userID }
func (c *Cart) Lines() []Line          { return c.lines }
func (c *Cart) Coupon() *AppliedCoupon { return c.coupon }
func (c *Cart) UpdatedAt() time.Time   { return c.updatedAt }
