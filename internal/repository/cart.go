package repository

import (
	"context"

	"triphaven/internal/domain"
)

// CartRepository defines the persistence operations for cart items.
type CartRepository interface {
	// Create persists a new cart item and assigns its ID.
	Create(ctx context.Context, item domain.CartItem) (InsertResult, error)

	// GetByOwner retrieves every cart item whose owner email equals email.
	GetByOwner(ctx context.Context, email string) ([]domain.CartItem, error)

	// Delete removes the cart item with the given ID. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) (DeleteResult, error)

	// DeleteMany removes every cart item whose ID is in ids.
	DeleteMany(ctx context.Context, ids []string) (DeleteResult, error)
}
