package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"triphaven/internal/repository"
)

// UnitOfWork runs checkout writes inside a MongoDB multi-document
// transaction. The deployment must be a replica set or sharded cluster.
type UnitOfWork struct {
	client   *mongo.Client
	carts    *mongo.Collection
	payments *mongo.Collection
}

// NewUnitOfWork creates a transactional unit of work over the cart and payment collections.
func NewUnitOfWork(client *mongo.Client, carts, payments *mongo.Collection) *UnitOfWork {
	return &UnitOfWork{client: client, carts: carts, payments: payments}
}

// WithinTransaction runs fn in a session transaction. The driver retries
// transient transaction errors.
func (u *UnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	session, err := u.client.StartSession()
	if err != nil {
		return translateError("start session", err)
	}
	defer session.EndSession(ctx)

	repos := repository.TxRepositories{
		Carts:    NewCartRepository(u.carts),
		Payments: NewPaymentRepository(u.payments),
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, repos)
	})
	if isTransactionsUnsupported(err) {
		return fmt.Errorf("%w: %w", repository.ErrTransactionsUnsupported, err)
	}
	return err
}

// illegalOperation is returned by a standalone server asked to open a transaction.
const illegalOperation = 20

func isTransactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == illegalOperation
}

// Ensure UnitOfWork implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*UnitOfWork)(nil)
