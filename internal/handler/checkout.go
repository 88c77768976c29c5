package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
	"triphaven/internal/service"
)

// CheckoutHandler handles HTTP requests that record payments.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CheckoutResponse is the HTTP response for a recorded payment. The first two
// fields keep the shape older clients read.
type CheckoutResponse struct {
	InsertedResult  repository.InsertResult `json:"Insertedresult"`
	DeleteResult    repository.DeleteResult `json:"deleteResult"`
	PaymentID       string                  `json:"paymentId"`
	RequestedCount  int                     `json:"requestedCount"`
	DeletedCount    int64                   `json:"deletedCount"`
	FullyReconciled bool                    `json:"fullyReconciled"`
}

// RecordPayment handles POST /payments
func (h *CheckoutHandler) RecordPayment(c *gin.Context) {
	var payment domain.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: true, Message: "invalid request body"})
		return
	}

	result, err := h.checkoutService.RecordPayment(c.Request.Context(), payment)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CheckoutResponse{
		InsertedResult:  result.Inserted,
		DeleteResult:    result.Deleted,
		PaymentID:       result.PaymentID,
		RequestedCount:  result.RequestedCount,
		DeletedCount:    result.Deleted.DeletedCount,
		FullyReconciled: result.FullyReconciled,
	})
}
