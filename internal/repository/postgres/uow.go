package postgres

import (
	"context"
	"database/sql"

	"triphaven/internal/repository"
)

// UnitOfWork runs checkout writes inside a single SQL transaction.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a new PostgreSQL unit of work.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithinTransaction runs fn with repositories bound to one transaction.
func (u *UnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return translateError("begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = fn(ctx, repository.TxRepositories{
		Carts:    NewCartRepositoryWithTx(tx),
		Payments: NewPaymentRepositoryWithTx(tx),
	})
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return translateError("commit transaction", err)
	}
	return nil
}

// Ensure UnitOfWork implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*UnitOfWork)(nil)
