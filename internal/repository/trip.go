package repository

import (
	"context"

	"triphaven/internal/domain"
)

// TripRepository defines the read operations for the trip catalog.
type TripRepository interface {
	// GetAll retrieves every trip.
	GetAll(ctx context.Context) ([]domain.Trip, error)

	// GetByID retrieves a trip by ID.
	// Returns ErrNotFound if no trip has that ID.
	GetByID(ctx context.Context, id string) (domain.Trip, error)
}
