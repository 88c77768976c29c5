package repository

import "context"

// TxRepositories are the repositories bound to one transaction.
type TxRepositories struct {
	Carts    CartRepository
	Payments PaymentRepository
}

// UnitOfWork runs a function inside a single storage transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
