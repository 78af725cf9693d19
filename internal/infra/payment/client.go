package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"airaa-jewels/internal/pkg/config"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/usecase/commands"
)

var (
	errRequestBuild  = errs.New("failed to build payment request")
	errResponseParse = errs.New("failed to parse payment response")
)

// Client bridges to the external payment-order-creation service over
// HTTP with basic auth. Transient failures are retried with capped
// exponential backoff; 4xx declines are not retried.
type Client struct {
	http       *http.Client
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
	maxRetries int
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		currency:   cfg.Currency,
		maxRetries: cfg.MaxRetries,
	}
}

var _ commands.PaymentGateway = (*Client)(nil)

type createOrderRequest struct {
	Amount     int64   `json:"amount"`
	Currency   string  `json:"currency"`
	ProductID  string  `json:"productId"`
	Type       string  `json:"type"`
	CouponCode *string `json:"couponCode,omitempty"`
	Discount   int64   `json:"discount"`
}

type createOrderResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	// Key is the client-facing key the storefront needs to render
	// the payment widget.
	Key   string `json:"key"`
	Error string `json:"error,omitempty"`
}

func (c *Client) CreatePayment(ctx context.Context, req commands.PaymentRequest) (*commands.PaymentIntent, error) {
	currency := req.Currency
	if currency == "" {
		currency = c.currency
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:     req.AmountCents,
		Currency:   currency,
		ProductID:  req.ProductID,
		Type:       req.Type,
		CouponCode: req.CouponCode,
		Discount:   req.DiscountCents,
	})
	if err != nil {
		return nil, errs.Mark(err, errRequestBuild)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		intent, retryable, err := c.doCreate(ctx, body)
		if err == nil {
			return intent, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) doCreate(ctx context.Context, body []byte) (*commands.PaymentIntent, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, false, errs.Mark(err, errRequestBuild)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, true, errs.Wrap(err, "payment gateway request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, errs.Wrap(err, "failed to read payment response")
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var decoded createOrderResponse
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, false, errs.Mark(err, errResponseParse)
		}
		return &commands.PaymentIntent{
			Reference:   decoded.OrderID,
			AmountCents: decoded.Amount,
			Currency:    decoded.Currency,
			Key:         decoded.Key,
		}, false, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var decoded createOrderResponse
		_ = json.Unmarshal(raw, &decoded)
		msg := fmt.Sprintf("payment gateway rejected request: status %d", resp.StatusCode)
		if decoded.Error != "" {
			msg = fmt.Sprintf("%s: %s", msg, decoded.Error)
		}
		return nil, false, errs.Mark(errs.New(msg), commands.ErrPaymentDeclined)
	default:
		return nil, true, errs.New(fmt.Sprintf("payment gateway error: status %d", resp.StatusCode))
	}
}

func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return errs.Mark(err, errRequestBuild)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errs.Wrap(err, "payment gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.New(fmt.Sprintf("payment gateway unhealthy: status %d", resp.StatusCode))
	}
	return nil
}

func backoff(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt-1)) * 200 * time.Millisecond
	if d > 2*time.Second {
		d = 2 * time.Second
	}
	return d
}
