package service

import (
	"context"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// CartService manages per-user cart items.
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// ListCartItems returns the cart items owned by email.
func (s *CartService) ListCartItems(ctx context.Context, email string) ([]domain.CartItem, error) {
	if email == "" {
		return nil, ErrMissingParameter
	}
	return s.cartRepo.GetByOwner(ctx, email)
}

// AddCartItem stores item under a new ID. A caller-supplied _id is ignored.
func (s *CartService) AddCartItem(ctx context.Context, item domain.CartItem) (repository.InsertResult, error) {
	if len(domain.Document(item).WithoutID()) == 0 {
		return repository.InsertResult{}, ErrMissingParameter
	}
	return s.cartRepo.Create(ctx, item)
}

// RemoveCartItem deletes the cart item with the given ID. Removing an
// unknown item yields a zero count, not an error.
func (s *CartService) RemoveCartItem(ctx context.Context, id string) (repository.DeleteResult, error) {
	id, ok := domain.ParseID(id)
	if !ok {
		return repository.DeleteResult{}, ErrInvalidIdentifier
	}
	return s.cartRepo.Delete(ctx, id)
}
