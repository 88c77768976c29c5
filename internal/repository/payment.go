package repository

import (
	"context"

	"triphaven/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment and assigns its ID.
	Create(ctx context.Context, payment domain.Payment) (InsertResult, error)
}
