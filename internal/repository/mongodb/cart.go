package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// CartRepository is a MongoDB implementation of repository.CartRepository.
type CartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a cart repository over the given collection.
func NewCartRepository(collection *mongo.Collection) *CartRepository {
	return &CartRepository{collection: collection}
}

// Create persists a new cart item.
func (r *CartRepository) Create(ctx context.Context, item domain.CartItem) (repository.InsertResult, error) {
	record, oid := newRecord(domain.Document(item))

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return repository.InsertResult{}, translateError("insert cart item", err)
	}

	return repository.InsertResult{InsertedID: oid.Hex(), Acknowledged: true}, nil
}

// GetByOwner retrieves the cart items owned by email.
func (r *CartRepository) GetByOwner(ctx context.Context, email string) ([]domain.CartItem, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{domain.CartOwnerField: email},
		bson.M{domain.CartOwnerAliasField: email},
	}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, translateError("find cart items", err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, translateError("decode cart items", err)
	}

	items := make([]domain.CartItem, 0, len(raw))
	for _, m := range raw {
		items = append(items, domain.CartItem(toDocument(m)))
	}
	return items, nil
}

// Delete removes a single cart item.
func (r *CartRepository) Delete(ctx context.Context, id string) (repository.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.DeleteResult{Acknowledged: true}, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{domain.IDField: oid})
	if err != nil {
		return repository.DeleteResult{}, translateError("delete cart item", err)
	}
	return repository.DeleteResult{DeletedCount: res.DeletedCount, Acknowledged: true}, nil
}

// DeleteMany removes every cart item whose ID is in ids.
func (r *CartRepository) DeleteMany(ctx context.Context, ids []string) (repository.DeleteResult, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return repository.DeleteResult{Acknowledged: true}, nil
	}

	res, err := r.collection.DeleteMany(ctx, bson.M{domain.IDField: bson.M{"$in": oids}})
	if err != nil {
		return repository.DeleteResult{}, translateError("delete cart items", err)
	}
	return repository.DeleteResult{DeletedCount: res.DeletedCount, Acknowledged: true}, nil
}

// Ensure CartRepository implements repository.CartRepository.
var _ repository.CartRepository = (*CartRepository)(nil)
