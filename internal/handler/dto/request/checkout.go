package request

type BeginCheckoutRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required,oneof=gateway cod"`
	ShippingAddress string `json:"shipping_address" binding:"required,max=500"`
}

type ConfirmCheckoutRequest struct {
	PaymentMethod   string  `json:"payment_method" binding:"required,oneof=gateway cod"`
	ShippingAddress string  `json:"shipping_address" binding:"required,max=500"`
	PaymentRef      *string `json:"payment_ref,omitempty"`
}
