package service

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is returned when a required query or body field is absent.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrInvalidIdentifier is returned when a record identifier is malformed.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrGateway is returned when the payment provider call fails.
	ErrGateway = errors.New("payment gateway error")
)

// ReconciliationError is returned when a payment was stored but clearing the
// cart items it settles failed. The payment record is not rolled back.
type ReconciliationError struct {
	PaymentID string
	Err       error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("payment %s recorded but cart cleanup failed: %v", e.PaymentID, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
