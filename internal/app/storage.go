package app

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"triphaven/internal/config"
	"triphaven/internal/repository"
	"triphaven/internal/repository/mongodb"
	"triphaven/internal/repository/postgres"
)

// Storage is the storage gateway shared by every request handler.
type Storage struct {
	Trips    repository.TripRepository
	Carts    repository.CartRepository
	Payments repository.PaymentRepository
	// UnitOfWork is nil when the backend cannot run checkout atomically.
	UnitOfWork repository.UnitOfWork

	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewStorage connects the configured backend once for the process lifetime.
func NewStorage(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMongo:
		client, err := NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}

		db := client.Database(cfg.Mongo.Database)
		trips := db.Collection(cfg.Mongo.TripCollection)
		carts := db.Collection(cfg.Mongo.CartCollection)
		payments := db.Collection(cfg.Mongo.PaymentCollection)

		s := &Storage{
			Trips:    mongodb.NewTripRepository(trips),
			Carts:    mongodb.NewCartRepository(carts),
			Payments: mongodb.NewPaymentRepository(payments),
			close:    client.Disconnect,
		}
		if cfg.Mongo.Transactions {
			s.UnitOfWork = mongodb.NewUnitOfWork(client, carts, payments)
		}
		return s, nil

	case config.StoragePostgres:
		db, err := NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return nil, err
		}

		return &Storage{
			Trips:      postgres.NewTripRepository(db),
			Carts:      postgres.NewCartRepository(db),
			Payments:   postgres.NewPaymentRepository(db),
			UnitOfWork: postgres.NewUnitOfWork(db),
			close: func(context.Context) error {
				return db.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
