package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"triphaven/internal/repository"
)

// translateError maps driver errors onto the repository error taxonomy.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%s: %w: %w", op, repository.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, repository.ErrStorageFailure, err)
}
