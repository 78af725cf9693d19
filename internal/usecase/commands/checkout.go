package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/domain/coupon"
	"airaa-jewels/internal/domain/order"
	"airaa-jewels/internal/domain/pricing"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/clock"
	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty              = errs.New("cart is empty")
	ErrPaymentUnavailable     = errs.New("payment gateway unavailable")
	ErrPaymentDeclined        = errs.New("payment declined by gateway")
	ErrPaymentNotConfirmed    = errs.New("payment not confirmed")
	ErrCodDisabled            = errs.New("cash on delivery is disabled")
	ErrCheckoutNotStarted     = errs.New("checkout was not started")
	ErrDuplicateCheckout      = errs.New("duplicate checkout request")
	ErrIdempotencyInProgress  = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
)

type BeginCheckoutResult struct {
	Quote         queries.QuoteView
	PaymentMethod string
	// Payment is nil for cash on delivery and for replayed requests.
	Payment    *PaymentIntent
	IsReplayed bool
	// Order is only set on replay of an already completed checkout.
	Order *queries.OrderView
}

type ConfirmCheckoutResult struct {
	Orders     []*queries.OrderView
	IsReplayed bool
}

type CheckoutCommands interface {
	Begin(ctx context.Context, userID uuid.UUID, req reqdto.BeginCheckoutRequest, idempotencyKey uuid.UUID) (*BeginCheckoutResult, error)
	Confirm(ctx context.Context, userID uuid.UUID, req reqdto.ConfirmCheckoutRequest, idempotencyKey uuid.UUID) (*ConfirmCheckoutResult, error)
}

type checkoutCommandsImpl struct {
	uow          shared.UnitOfWork
	gateway      PaymentGateway
	orderQueries queries.OrderQueries
	calculator   pricing.Calculator
	clock        clock.Clock
	checkoutCfg  config.CheckoutConfig
	paymentCfg   config.PaymentConfig
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	orderQueries queries.OrderQueries,
	calculator pricing.Calculator,
	clk clock.Clock,
	checkoutCfg config.CheckoutConfig,
	paymentCfg config.PaymentConfig,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:          uow,
		gateway:      gateway,
		orderQueries: orderQueries,
		calculator:   calculator,
		clock:        clk,
		checkoutCfg:  checkoutCfg,
		paymentCfg:   paymentCfg,
	}
}

// Begin registers the idempotency key, prices the cart and, for gateway
// payments, opens a payment intent with the provider. No order exists
// until Confirm.
func (u *checkoutCommandsImpl) Begin(
	ctx context.Context,
	userID uuid.UUID,
	req reqdto.BeginCheckoutRequest,
	idempotencyKey uuid.UUID,
) (*BeginCheckoutResult, error) {
	requestHash := hashRequest(req)
	expiresAt := u.clock.Now().Add(u.checkoutCfg.IdempotencyTTL)

	record, err := u.registerIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if record != nil && record.Status == "completed" {
		return u.replayBegin(ctx, record)
	}

	c, pricedQuote, couponCode, err := u.priceCurrentCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &BeginCheckoutResult{
		Quote:         toQuoteView(pricedQuote),
		PaymentMethod: req.PaymentMethod,
	}

	switch order.PaymentMethod(req.PaymentMethod) {
	case order.PaymentCashOnDelivery:
		settingsSnap, err := u.uow.CommandReads().Settings(ctx)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !settingsSnap.CodEnabled {
			return nil, ErrCodDisabled
		}

	case order.PaymentGateway:
		intent, err := u.openPaymentIntent(ctx, c, pricedQuote, couponCode)
		if err != nil {
			return nil, err
		}
		result.Payment = intent
	}

	return result, nil
}

// Confirm creates the orders and clears the cart in one transaction. A
// mixed cart yields one purchase order and one rental record.
func (u *checkoutCommandsImpl) Confirm(
	ctx context.Context,
	userID uuid.UUID,
	req reqdto.ConfirmCheckoutRequest,
	idempotencyKey uuid.UUID,
) (*ConfirmCheckoutResult, error) {
	record, err := u.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCheckoutNotStarted
		}
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if record.Status == "completed" {
		return u.replayConfirm(ctx, record)
	}

	method := order.PaymentMethod(req.PaymentMethod)
	if method == order.PaymentGateway && req.PaymentRef == nil {
		return nil, ErrPaymentNotConfirmed
	}

	var orderIDs []uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Carts().FindByUser(ctx, tx.DB(), userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCartEmpty
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if c.IsEmpty() {
			return ErrCartEmpty
		}

		settingsSnap, err := tx.Reads().Settings(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if method == order.PaymentCashOnDelivery && !settingsSnap.CodEnabled {
			return ErrCodDisabled
		}

		discount, couponCode, err := u.discountFor(ctx, tx.Reads(), c)
		if err != nil {
			return err
		}
		pricedQuote := u.calculator.Quote(c, pricingSettings(settingsSnap), discount)

		orderIDs, err = u.createOrders(ctx, tx, c, pricedQuote, couponCode, req, method)
		if err != nil {
			return err
		}

		resultHash := hashOrderIDs(orderIDs)
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, resultHash, orderIDs[0]); err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}

		c.Clear()
		if err := tx.Carts().Save(ctx, tx.DB(), c); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the complete order views
	views := make([]*queries.OrderView, 0, len(orderIDs))
	for _, id := range orderIDs {
		view, err := u.orderQueries.GetByIDSystem(ctx, id)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		views = append(views, view)
	}

	return &ConfirmCheckoutResult{Orders: views}, nil
}

func (u *checkoutCommandsImpl) createOrders(
	ctx context.Context,
	tx shared.Tx,
	c *cart.Cart,
	pricedQuote pricing.Quote,
	couponCode *string,
	req reqdto.ConfirmCheckoutRequest,
	method order.PaymentMethod,
) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	// The full quote (shipping, tax, discount) rides on the purchase
	// order; the rental record carries only its own lines and deposit.
	if c.HasBuyLines() {
		totals := order.Totals{
			SubtotalCents: pricedQuote.SubtotalCents,
			ShippingCents: pricedQuote.ShippingCents,
			TaxCents:      pricedQuote.TaxCents,
			DiscountCents: pricedQuote.DiscountCents,
			TotalCents:    pricedQuote.TotalCents,
		}
		id, err := u.createOrder(ctx, tx, c, order.KindPurchase, cart.ModeBuy, totals, couponCode, req, method)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if c.HasRentLines() {
		totals := order.Totals{DepositCents: pricedQuote.DepositCents}
		if !c.HasBuyLines() {
			totals = order.Totals{
				SubtotalCents: pricedQuote.SubtotalCents,
				ShippingCents: pricedQuote.ShippingCents,
				TaxCents:      pricedQuote.TaxCents,
				DiscountCents: pricedQuote.DiscountCents,
				TotalCents:    pricedQuote.TotalCents,
				DepositCents:  pricedQuote.DepositCents,
			}
		}
		id, err := u.createOrder(ctx, tx, c, order.KindRental, cart.ModeRent, totals, couponCode, req, method)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, ErrCartEmpty
	}
	return ids, nil
}

func (u *checkoutCommandsImpl) createOrder(
	ctx context.Context,
	tx shared.Tx,
	c *cart.Cart,
	kind order.Kind,
	mode cart.Mode,
	totals order.Totals,
	couponCode *string,
	req reqdto.ConfirmCheckoutRequest,
	method order.PaymentMethod,
) (uuid.UUID, error) {
	entity, err := order.NewOrder(
		c.UserID(),
		kind,
		order.LinesFromCart(c.Lines(), mode),
		totals,
		couponCode,
		req.ShippingAddress,
		method,
		req.PaymentRef,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := tx.Orders().Create(ctx, tx.DB(), entity)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return id, nil
}

func (u *checkoutCommandsImpl) registerIdempotency(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*shared.IdempotencyRecord, error) {
	reads := u.uow.CommandReads()

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if insErr := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, "POST /checkout", requestHash, expiresAt); insErr != nil {
			return errs.Mark(insErr, ErrIdempotencyCheckFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record, err := reads.IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch record.Status {
	case "completed":
		return record, nil
	case "processing":
		if record.RequestHash != requestHash {
			return nil, ErrDuplicateCheckout
		}
		// Same request retrying Begin is fine; Confirm completes it.
		return nil, nil
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (u *checkoutCommandsImpl) replayBegin(ctx context.Context, record *shared.IdempotencyRecord) (*BeginCheckoutResult, error) {
	if record.ResultOrderID == nil {
		return nil, errs.New("completed checkout missing result order ID")
	}
	view, err := u.orderQueries.GetByIDSystem(ctx, *record.ResultOrderID)
	if err != nil {
		return nil, err
	}
	return &BeginCheckoutResult{
		PaymentMethod: view.PaymentMethod,
		IsReplayed:    true,
		Order:         view,
	}, nil
}

func (u *checkoutCommandsImpl) replayConfirm(ctx context.Context, record *shared.IdempotencyRecord) (*ConfirmCheckoutResult, error) {
	if record.ResultOrderID == nil {
		return nil, errs.New("completed checkout missing result order ID")
	}
	view, err := u.orderQueries.GetByIDSystem(ctx, *record.ResultOrderID)
	if err != nil {
		return nil, err
	}
	return &ConfirmCheckoutResult{
		Orders:     []*queries.OrderView{view},
		IsReplayed: true,
	}, nil
}

func (u *checkoutCommandsImpl) priceCurrentCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, pricing.Quote, *string, error) {
	var (
		c           *cart.Cart
		pricedQuote pricing.Quote
		couponCode  *string
	)

	reads := u.uow.CommandReads()
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Carts().FindByUser(ctx, tx.DB(), userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCartEmpty
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		c = found
		return nil
	})
	if err != nil {
		return nil, pricing.Quote{}, nil, err
	}
	if c.IsEmpty() {
		return nil, pricing.Quote{}, nil, ErrCartEmpty
	}

	settingsSnap, err := reads.Settings(ctx)
	if err != nil {
		return nil, pricing.Quote{}, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	discount, couponCode, err := u.discountFor(ctx, reads, c)
	if err != nil {
		return nil, pricing.Quote{}, nil, err
	}

	pricedQuote = u.calculator.Quote(c, pricingSettings(settingsSnap), discount)
	return c, pricedQuote, couponCode, nil
}

// discountFor resolves the cart's applied coupon. A coupon deleted since
// it was applied contributes no discount.
func (u *checkoutCommandsImpl) discountFor(ctx context.Context, reads shared.CommandReads, c *cart.Cart) (*coupon.Discount, *string, error) {
	applied := c.Coupon()
	if applied == nil {
		return nil, nil, nil
	}

	snapshot, err := reads.CouponByCode(ctx, applied.Code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	discount, err := coupon.NewDiscount(snapshot.AmountOffCents, snapshot.PercentOff)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDomainValidation)
	}

	code := snapshot.Code
	return &discount, &code, nil
}

func (u *checkoutCommandsImpl) openPaymentIntent(
	ctx context.Context,
	c *cart.Cart,
	pricedQuote pricing.Quote,
	couponCode *string,
) (*PaymentIntent, error) {
	lines := c.Lines()
	payType := "buy"
	if !c.HasBuyLines() {
		payType = "rent"
	}

	intent, err := u.gateway.CreatePayment(ctx, PaymentRequest{
		AmountCents:   pricedQuote.TotalCents,
		Currency:      u.paymentCfg.Currency,
		ProductID:     lines[0].ProductID().String(),
		Type:          payType,
		CouponCode:    couponCode,
		DiscountCents: pricedQuote.DiscountCents,
	})
	if err != nil {
		if errors.Is(err, ErrPaymentDeclined) {
			return nil, err
		}
		return nil, errs.Mark(err, ErrPaymentUnavailable)
	}
	return intent, nil
}

func pricingSettings(s *shared.SettingsSnapshot) pricing.Settings {
	return pricing.Settings{
		TaxRatePercent:             s.TaxRatePercent,
		FreeShippingThresholdCents: s.FreeShippingThresholdCents,
		ShippingFeeCents:           s.ShippingFeeCents,
	}
}

func toQuoteView(q pricing.Quote) queries.QuoteView {
	return queries.QuoteView{
		SubtotalCents: q.SubtotalCents,
		ShippingCents: q.ShippingCents,
		TaxCents:      q.TaxCents,
		DiscountCents: q.DiscountCents,
		TotalCents:    q.TotalCents,
		DepositCents:  q.DepositCents,
		ItemCount:     q.ItemCount,
	}
}

func hashRequest(req any) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func hashOrderIDs(ids []uuid.UUID) string {
	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id.String()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
