package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// CartRepository is a PostgreSQL implementation of repository.CartRepository.
type CartRepository struct {
	q Querier
}

// NewCartRepository creates a new PostgreSQL cart repository.
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{q: db}
}

// NewCartRepositoryWithTx creates a cart repository using a transaction.
func NewCartRepositoryWithTx(tx *sql.Tx) *CartRepository {
	return &CartRepository{q: tx}
}

// Create persists a new cart item.
func (r *CartRepository) Create(ctx context.Context, item domain.CartItem) (repository.InsertResult, error) {
	res, err := insertDocument(ctx, r.q, "carts", domain.Document(item))
	if err != nil {
		return repository.InsertResult{}, translateError("insert cart item", err)
	}
	return res, nil
}

// GetByOwner retrieves the cart items owned by email.
func (r *CartRepository) GetByOwner(ctx context.Context, email string) ([]domain.CartItem, error) {
	query := `
		SELECT id, doc FROM carts
		WHERE doc->>'email' = $1 OR doc->>'ownerEmail' = $1
	`

	docs, err := queryDocuments(ctx, r.q, query, email)
	if err != nil {
		return nil, translateError("find cart items", err)
	}

	items := make([]domain.CartItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, domain.CartItem(doc))
	}
	return items, nil
}

// Delete removes a single cart item.
func (r *CartRepository) Delete(ctx context.Context, id string) (repository.DeleteResult, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return repository.DeleteResult{}, translateError("delete cart item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repository.DeleteResult{}, translateError("delete cart item", err)
	}
	return repository.DeleteResult{DeletedCount: rowsAffected, Acknowledged: true}, nil
}

// DeleteMany removes every cart item whose ID is in ids.
func (r *CartRepository) DeleteMany(ctx context.Context, ids []string) (repository.DeleteResult, error) {
	if len(ids) == 0 {
		return repository.DeleteResult{Acknowledged: true}, nil
	}

	result, err := r.q.ExecContext(ctx, `DELETE FROM carts WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return repository.DeleteResult{}, translateError("delete cart items", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repository.DeleteResult{}, translateError("delete cart items", err)
	}
	return repository.DeleteResult{DeletedCount: rowsAffected, Acknowledged: true}, nil
}

// Ensure CartRepository implements repository.CartRepository.
var _ repository.CartRepository = (*CartRepository)(nil)
