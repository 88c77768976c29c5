package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// EventPublisher publishes checkout events.
type EventPublisher interface {
	PublishPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error
}

// CheckoutService records payments and clears the cart items they settle.
type CheckoutService struct {
	paymentRepo repository.PaymentRepository
	cartRepo    repository.CartRepository
	uow         repository.UnitOfWork
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. When uow is non-nil the
// payment insert and cart cleanup commit atomically; publisher may be nil.
func NewCheckoutService(
	paymentRepo repository.PaymentRepository,
	cartRepo repository.CartRepository,
	uow repository.UnitOfWork,
	publisher EventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		paymentRepo: paymentRepo,
		cartRepo:    cartRepo,
		uow:         uow,
		publisher:   publisher,
		logger:      logger,
	}
}

// CheckoutResult reports both halves of a checkout.
type CheckoutResult struct {
	PaymentID       string
	Inserted        repository.InsertResult
	Deleted         repository.DeleteResult
	RequestedCount  int
	FullyReconciled bool
}

// RecordPayment stores payment and deletes every cart item listed in its
// cartItemIds. The insert always happens first. Unknown and duplicate ids
// are ignored, so a low delete count is reported rather than treated as an
// error.
func (s *CheckoutService) RecordPayment(ctx context.Context, payment domain.Payment) (*CheckoutResult, error) {
	ids, err := payment.CartItemIDs()
	if err != nil {
		if errors.Is(err, domain.ErrCartItemIDsMissing) {
			return nil, fmt.Errorf("%w: %w", ErrMissingParameter, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}
	unique := domain.UniqueIDs(ids)

	var result *CheckoutResult
	if s.uow != nil {
		err = s.uow.WithinTransaction(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
			r, err := reconcile(ctx, repos.Payments, repos.Carts, payment, unique)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
		if err != nil {
			var recErr *ReconciliationError
			if errors.As(err, &recErr) {
				// Rolled back: the payment was never committed.
				return nil, recErr.Err
			}
			return nil, err
		}
	} else {
		result, err = reconcile(ctx, s.paymentRepo, s.cartRepo, payment, unique)
		if err != nil {
			return nil, err
		}
	}

	if !result.FullyReconciled {
		s.logger.Warn("payment recorded with partial cart cleanup",
			zap.String("payment_id", result.PaymentID),
			zap.Int("requested", result.RequestedCount),
			zap.Int64("deleted", result.Deleted.DeletedCount),
		)
	}

	s.publish(ctx, result, unique)
	return result, nil
}

// reconcile inserts the payment and then deletes the settled cart items.
func reconcile(
	ctx context.Context,
	payments repository.PaymentRepository,
	carts repository.CartRepository,
	payment domain.Payment,
	ids []string,
) (*CheckoutResult, error) {
	inserted, err := payments.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	deleted, err := carts.DeleteMany(ctx, ids)
	if err != nil {
		return nil, &ReconciliationError{PaymentID: inserted.InsertedID, Err: err}
	}

	return &CheckoutResult{
		PaymentID:       inserted.InsertedID,
		Inserted:        inserted,
		Deleted:         deleted,
		RequestedCount:  len(ids),
		FullyReconciled: deleted.DeletedCount == int64(len(ids)),
	}, nil
}

func (s *CheckoutService) publish(ctx context.Context, result *CheckoutResult, ids []string) {
	if s.publisher == nil {
		return
	}

	event := domain.PaymentRecordedEvent{
		PaymentID:       result.PaymentID,
		CartItemIDs:     ids,
		DeletedCount:    result.Deleted.DeletedCount,
		FullyReconciled: result.FullyReconciled,
		Timestamp:       time.Now().UTC(),
	}
	if err := s.publisher.PublishPaymentRecorded(ctx, event); err != nil {
		s.logger.Error("failed to publish payment recorded event",
			zap.String("payment_id", result.PaymentID),
			zap.Error(err),
		)
	}
}
