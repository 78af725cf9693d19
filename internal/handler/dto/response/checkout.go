package response

import "airaa-jewels/internal/usecase/queries"

type PaymentIntentResponse struct {
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Key         string `json:"key"`
}

type BeginCheckoutResponse struct {
	Quote         *queries.QuoteView     `json:"quote,omitempty"`
	PaymentMethod string                 `json:"payment_method"`
	Payment       *PaymentIntentResponse `json:"payment,omitempty"`
	Replayed      bool                   `json:"replayed"`
	// Order is only present when replaying an already completed checkout.
	Order *queries.OrderView `json:"order,omitempty"`
}

type ConfirmCheckoutResponse struct {
	Orders   []*queries.OrderView `json:"orders"`
	Replayed bool                 `json:"replayed"`
}
