// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/checkout"
)

// CheckoutHandler handles the checkout wizard endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		config:          cfg,
	}
}

// GetState handles GET /checkout
func (h *CheckoutHandler) GetState(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	state, err := h.checkoutService.GetState(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout state retrieved successfully",
		"data":    state,
	})
}

// SubmitCart handles POST /checkout/cart
func (h *CheckoutHandler) SubmitCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	state, err := h.checkoutService.SubmitCart(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart confirmed",
		"data":    state,
	})
}

// SubmitAddress handles POST /checkout/address
func (h *CheckoutHandler) SubmitAddress(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req checkout.SubmitAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.checkoutService.SubmitAddress(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery details saved",
		"data":    state,
	})
}

// SubmitPayment handles POST /checkout/payment
func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req checkout.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.checkoutService.SubmitPayment(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method saved",
		"data":    state,
	})
}

// SubmitCustomer handles POST /checkout/customer and places the order
func (h *CheckoutHandler) SubmitCustomer(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req checkout.SubmitCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkoutService.SubmitCustomer(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// The order exists even when the payment session failed; the
	// response carries both so the frontend can show the order and
	// offer a retry.
	status := http.StatusCreated
	message := "Order placed successfully"
	if result.PaymentErr != nil {
		status = http.StatusBadGateway
		message = result.PaymentErr.Message
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    result,
	})
}

// Back handles POST /checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	state, err := h.checkoutService.Back(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Moved to previous step",
		"data":    state,
	})
}

// renderError maps checkout errors to HTTP responses
func (h *CheckoutHandler) renderError(c *gin.Context, err error) {
	var checkoutErr *checkout.Error
	if errors.As(err, &checkoutErr) {
		status := http.StatusInternalServerError
		switch checkoutErr.Code {
		case checkout.ErrCodeValidation:
			status = http.StatusUnprocessableEntity
		case checkout.ErrCodeNetwork:
			status = http.StatusServiceUnavailable
		case checkout.ErrCodePaymentSession:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error": checkoutErr.Message,
			"code":  checkoutErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Failed to process checkout request",
	})
}
