package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triphaven/internal/service"
)

// PaymentHandler handles HTTP requests for payment intents.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentIntentRequest is the HTTP request body for creating an intent.
type CreatePaymentIntentRequest struct {
	Price *float64 `json:"price"`
}

// CreatePaymentIntentResponse carries the client secret of a new intent.
type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent handles POST /create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: true, Message: "invalid request body"})
		return
	}

	if req.Price == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: true, Message: "price is required"})
		return
	}

	secret, err := h.paymentService.CreatePaymentIntent(c.Request.Context(), *req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CreatePaymentIntentResponse{ClientSecret: secret})
}
