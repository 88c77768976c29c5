package postgres

import (
	"context"
	"database/sql"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// GetAll retrieves every trip.
func (r *TripRepository) GetAll(ctx context.Context) ([]domain.Trip, error) {
	docs, err := queryDocuments(ctx, r.q, `SELECT id, doc FROM trips`)
	if err != nil {
		return nil, translateError("find trips", err)
	}

	trips := make([]domain.Trip, 0, len(docs))
	for _, doc := range docs {
		trips = append(trips, domain.Trip(doc))
	}
	return trips, nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	doc, err := scanDocument(r.q.QueryRowContext(ctx, `SELECT id, doc FROM trips WHERE id = $1`, id))
	if err != nil {
		return nil, translateError("find trip", err)
	}
	return domain.Trip(doc), nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
