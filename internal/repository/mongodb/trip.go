package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// TripRepository is a MongoDB implementation of repository.TripRepository.
type TripRepository struct {
	collection *mongo.Collection
}

// NewTripRepository creates a trip repository over the given collection.
func NewTripRepository(collection *mongo.Collection) *TripRepository {
	return &TripRepository{collection: collection}
}

// GetAll retrieves every trip.
func (r *TripRepository) GetAll(ctx context.Context) ([]domain.Trip, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, translateError("find trips", err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, translateError("decode trips", err)
	}

	trips := make([]domain.Trip, 0, len(raw))
	for _, m := range raw {
		trips = append(trips, domain.Trip(toDocument(m)))
	}
	return trips, nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var m bson.M
	if err := r.collection.FindOne(ctx, bson.M{domain.IDField: oid}).Decode(&m); err != nil {
		return nil, translateError("find trip", err)
	}
	return domain.Trip(toDocument(m)), nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
