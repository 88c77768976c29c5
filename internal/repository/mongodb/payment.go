package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// PaymentRepository is a MongoDB implementation of repository.PaymentRepository.
type PaymentRepository struct {
	collection *mongo.Collection
}

// NewPaymentRepository creates a payment repository over the given collection.
func NewPaymentRepository(collection *mongo.Collection) *PaymentRepository {
	return &PaymentRepository{collection: collection}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (repository.InsertResult, error) {
	record, oid := newRecord(domain.Document(payment))

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return repository.InsertResult{}, translateError("insert payment", err)
	}

	return repository.InsertResult{InsertedID: oid.Hex(), Acknowledged: true}, nil
}

// Ensure PaymentRepository implements repository.PaymentRepository.
var _ repository.PaymentRepository = (*PaymentRepository)(nil)
