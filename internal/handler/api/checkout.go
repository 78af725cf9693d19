package api

import (
	"errors"
	"net/http"

	reqdto "airaa-jewels/internal/handler/dto/request"
	resdto "airaa-jewels/internal/handler/dto/response"
	"airaa-jewels/internal/handler/middleware"
	"airaa-jewels/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
	gateway          commands.PaymentGateway
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands, gateway commands.PaymentGateway) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutCommands: checkoutCommands,
		gateway:          gateway,
	}
}

// @Summary Begin checkout
// @Description Prices the cart and, for gateway payments, opens a payment intent. No order exists until confirm.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key spanning begin and confirm"
// @Param request body reqdto.BeginCheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.BeginCheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /checkout/begin [post]
func (h *CheckoutHandler) Begin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.BeginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutCommands.Begin(c.Request.Context(), userID, req, idempotencyKey)
	if err != nil {
		h.abortCheckoutError(c, err)
		return
	}

	resp := resdto.BeginCheckoutResponse{
		PaymentMethod: result.PaymentMethod,
		Replayed:      result.IsReplayed,
		Order:         result.Order,
	}
	if !result.IsReplayed {
		quote := result.Quote
		resp.Quote = &quote
	}
	if result.Payment != nil {
		resp.Payment = &resdto.PaymentIntentResponse{
			Reference:   result.Payment.Reference,
			AmountCents: result.Payment.AmountCents,
			Currency:    result.Payment.Currency,
			Key:         result.Payment.Key,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Confirm checkout
// @Description Creates the order records and clears the cart. A mixed cart yields one purchase order and one rental record.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key used at begin"
// @Param request body reqdto.ConfirmCheckoutRequest true "Confirmation request"
// @Success 201 {object} resdto.ConfirmCheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout/confirm [post]
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutCommands.Confirm(c.Request.Context(), userID, req, idempotencyKey)
	if err != nil {
		h.abortCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.ConfirmCheckoutResponse{
		Orders:   result.Orders,
		Replayed: result.IsReplayed,
	})
}

// @Summary Payment gateway health
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /checkout/payment/health [get]
func (h *CheckoutHandler) PaymentHealth(c *gin.Context) {
	if err := h.gateway.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h *CheckoutHandler) abortCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCartEmpty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Cart is empty",
		})
	case errors.Is(err, commands.ErrCodDisabled):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Cash on delivery is disabled",
		})
	case errors.Is(err, commands.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment was declined",
		})
	case errors.Is(err, commands.ErrPaymentUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payment gateway is unavailable",
		})
	case errors.Is(err, commands.ErrPaymentNotConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment reference is required for gateway payments",
		})
	case errors.Is(err, commands.ErrCheckoutNotStarted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Checkout was not started for this idempotency key",
		})
	case errors.Is(err, commands.ErrDuplicateCheckout):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Duplicate checkout request with different parameters",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("Idempotency-Key")
	if raw == "" {
		return uuid.Nil, errors.New("Idempotency-Key header is required")
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("Idempotency-Key must be a valid UUID")
	}
	return key, nil
}
