package postgres

import (
	"context"
	"database/sql"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (repository.InsertResult, error) {
	res, err := insertDocument(ctx, r.q, "payments", domain.Document(payment))
	if err != nil {
		return repository.InsertResult{}, translateError("insert payment", err)
	}
	return res, nil
}

// Ensure PaymentRepository implements repository.PaymentRepository.
var _ repository.PaymentRepository = (*PaymentRepository)(nil)
