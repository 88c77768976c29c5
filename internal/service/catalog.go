package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// TripCache is a read-through cache for catalog lookups.
// Get methods return a nil result on a cache miss.
type TripCache interface {
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	SetTrip(ctx context.Context, trip domain.Trip) error
	GetTrips(ctx context.Context) ([]domain.Trip, error)
	SetTrips(ctx context.Context, trips []domain.Trip) error
}

// CatalogService serves the read-only trip catalog.
type CatalogService struct {
	tripRepo repository.TripRepository
	cache    TripCache
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(tripRepo repository.TripRepository, cache TripCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		tripRepo: tripRepo,
		cache:    cache,
		logger:   logger,
	}
}

// ListTrips returns every trip in the catalog.
func (s *CatalogService) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	if s.cache != nil {
		trips, err := s.cache.GetTrips(ctx)
		if err != nil {
			s.logger.Warn("trip list cache read failed", zap.Error(err))
		} else if trips != nil {
			return trips, nil
		}
	}

	trips, err := s.tripRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetTrips(ctx, trips); err != nil {
			s.logger.Warn("trip list cache write failed", zap.Error(err))
		}
	}
	return trips, nil
}

// GetTrip returns the trip with the given ID, or nil if none exists.
func (s *CatalogService) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	id, ok := domain.ParseID(id)
	if !ok {
		return nil, ErrInvalidIdentifier
	}

	if s.cache != nil {
		trip, err := s.cache.GetTrip(ctx, id)
		if err != nil {
			s.logger.Warn("trip cache read failed", zap.String("trip_id", id), zap.Error(err))
		} else if trip != nil {
			return trip, nil
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetTrip(ctx, trip); err != nil {
			s.logger.Warn("trip cache write failed", zap.String("trip_id", id), zap.Error(err))
		}
	}
	return trip, nil
}
