//go:build unit || e2e

package builder

import (
	"time"

	"airaa-jewels/internal/domain/coupon"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID             uuid.UUID
	Code           string
	AmountOffCents *int64
	PercentOff     *float64
	MinOrderCents  int64
	ValidFrom      *time.Time
	ValidTo        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Now()
	amountOff := int64(35000)
	return &CouponBuilder{
		ID:             uuid.New(),
		Code:           "WELCOME350",
		AmountOffCents: &amountOff,
		MinOrderCents:  100000,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (c *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(c)
	return c
}

// Build methods
func (c *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(c.ID, c.Code, c.AmountOffCents, c.PercentOff, c.MinOrderCents, c.ValidFrom, c.ValidTo)
}

func (c *CouponBuilder) BuildView() *queries.CouponView {
	return &queries.CouponView{
		ID:             c.ID,
		Code:           c.Code,
		AmountOffCents: c.AmountOffCents,
		PercentOff:     c.PercentOff,
		MinOrderCents:  c.MinOrderCents,
		ValidFrom:      c.ValidFrom,
		ValidTo:        c.ValidTo,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (c *CouponBuilder) BuildCreateRequestDTO() reqdto.CreateCouponRequest {
	return reqdto.CreateCouponRequest{
		Code:           c.Code,
		AmountOffCents: c.AmountOffCents,
		PercentOff:     c.PercentOff,
		MinOrderCents:  c.MinOrderCents,
		ValidFrom:      c.ValidFrom,
		ValidTo:        c.ValidTo,
	}
}

// Fluent builder methods
func (c *CouponBuilder) WithCode(code string) *CouponBuilder {
	c.Code = code
	return c
}

func (c *CouponBuilder) AsPercentage(percentOff float64) *CouponBuilder {
	c.AmountOffCents = nil
	c.PercentOff = &percentOff
	return c
}

func (c *CouponBuilder) WithMinOrderCents(min int64) *CouponBuilder {
	c.MinOrderCents = min
	return c
}

func (c *CouponBuilder) AsExpired() *CouponBuilder {
	from := time.Now().Add(-48 * time.Hour)
	to := time.Now().Add(-24 * time.Hour)
	c.ValidFrom = &from
	c.ValidTo = &to
	return c
}
