package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStorageUnavailable is returned when the backing store cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageFailure is returned when the backing store rejects an operation.
	ErrStorageFailure = errors.New("storage failure")

	// ErrTransactionsUnsupported is returned by a UnitOfWork that cannot open
	// multi-document transactions.
	ErrTransactionsUnsupported = errors.New("transactions not supported")
)
