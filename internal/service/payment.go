package service

import (
	"context"
	"fmt"
	"math"
)

// PaymentGateway is the interface for the external payment provider.
type PaymentGateway interface {
	// CreatePaymentIntent registers an intent for amount (smallest currency
	// unit) and returns the client secret used to confirm it.
	CreatePaymentIntent(ctx context.Context, amount int64) (string, error)
}

// PaymentService creates payment intents with the gateway.
type PaymentService struct {
	gateway PaymentGateway
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(gateway PaymentGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreatePaymentIntent floors price and asks the gateway for an intent.
// Gateway failures are not retried.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	// Conversion of out-of-range floats to int64 is implementation-defined.
	if math.IsNaN(price) || math.IsInf(price, 0) || price >= math.MaxInt64 {
		return "", ErrInvalidAmount
	}

	amount := int64(math.Floor(price))
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	secret, err := s.gateway.CreatePaymentIntent(ctx, amount)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGateway, err)
	}
	return secret, nil
}
