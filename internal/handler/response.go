package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"triphaven/internal/repository"
	"triphaven/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	PaymentID string `json:"paymentId,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	resp := ErrorResponse{Error: true, Message: publicMessage(err)}

	var recErr *service.ReconciliationError
	if errors.As(err, &recErr) {
		resp.PaymentID = recErr.PaymentID
	}

	c.JSON(mapErrorToHTTPStatus(err), resp)
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingParameter),
		errors.Is(err, service.ErrInvalidIdentifier),
		errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest

	// Storage, gateway and anything unexpected
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns a client-safe description of err. Storage and
// gateway details stay in the logs.
func publicMessage(err error) string {
	var recErr *service.ReconciliationError
	switch {
	case errors.As(err, &recErr):
		return "payment recorded but cart cleanup failed"
	case errors.Is(err, service.ErrMissingParameter),
		errors.Is(err, service.ErrInvalidIdentifier),
		errors.Is(err, service.ErrInvalidAmount):
		return err.Error()
	case errors.Is(err, service.ErrGateway):
		return "payment gateway error"
	case errors.Is(err, repository.ErrStorageUnavailable):
		return "storage unavailable"
	default:
		return "internal server error"
	}
}
