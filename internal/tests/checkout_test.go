package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
	"triphaven/internal/service"
)

type checkoutFixture struct {
	carts     *MockCartRepository
	payments  *MockPaymentRepository
	publisher *MockPublisher
	svc       *service.CheckoutService
}

func newCheckoutFixture(transactional bool) *checkoutFixture {
	f := &checkoutFixture{
		carts:     NewMockCartRepository(),
		payments:  NewMockPaymentRepository(),
		publisher: &MockPublisher{},
	}
	var uow repository.UnitOfWork
	if transactional {
		uow = &MockUnitOfWork{Carts: f.carts, Payments: f.payments}
	}
	f.svc = service.NewCheckoutService(f.payments, f.carts, uow, f.publisher, zap.NewNop())
	return f
}

func (f *checkoutFixture) addCartItem(t *testing.T) string {
	t.Helper()
	res, err := f.carts.Create(context.Background(), domain.CartItem{"email": "a@x.io"})
	require.NoError(t, err)
	return res.InsertedID
}

func TestCheckout_ClearsSettledItems(t *testing.T) {
	f := newCheckoutFixture(false)
	a := f.addCartItem(t)
	b := f.addCartItem(t)
	keep := f.addCartItem(t)

	result, err := f.svc.RecordPayment(context.Background(), domain.Payment{
		"amount":      250,
		"cartItemIds": []any{a, b},
	})
	require.NoError(t, err)

	assert.True(t, domain.IsValidID(result.PaymentID))
	assert.True(t, result.Inserted.Acknowledged)
	assert.Equal(t, int64(2), result.Deleted.DeletedCount)
	assert.True(t, result.FullyReconciled)
	assert.Equal(t, 1, f.payments.Count())
	assert.False(t, f.carts.Has(a))
	assert.False(t, f.carts.Has(b))
	assert.True(t, f.carts.Has(keep))

	require.Len(t, f.publisher.Events, 1)
	assert.Equal(t, result.PaymentID, f.publisher.Events[0].PaymentID)
	assert.Equal(t, []string{a, b}, f.publisher.Events[0].CartItemIDs)
}

func TestCheckout_UnmatchedIDsIgnored(t *testing.T) {
	f := newCheckoutFixture(false)
	a := f.addCartItem(t)

	result, err := f.svc.RecordPayment(context.Background(), domain.Payment{
		"cartItemIds": []any{a, domain.NewID()},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Deleted.DeletedCount)
	assert.Equal(t, 2, result.RequestedCount)
	assert.False(t, result.FullyReconciled)
	assert.Equal(t, 1, f.payments.Count())
}

func TestCheckout_DuplicateIDsCollapse(t *testing.T) {
	f := newCheckoutFixture(false)
	a := f.addCartItem(t)

	result, err := f.svc.RecordPayment(context.Background(), domain.Payment{
		"cartItemIds": []string{a, a},
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Deleted.DeletedCount, int64(1))
	assert.Equal(t, 1, result.RequestedCount)
	assert.True(t, result.FullyReconciled)
}

func TestCheckout_MixedCaseIDsSettleAndCollapse(t *testing.T) {
	f := newCheckoutFixture(false)
	a := f.addCartItem(t)
	b := f.addCartItem(t)

	result, err := f.svc.RecordPayment(context.Background(), domain.Payment{
		"cartItemIds": []any{strings.ToUpper(a), a, strings.ToUpper(b)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RequestedCount)
	assert.Equal(t, int64(2), result.Deleted.DeletedCount)
	assert.True(t, result.FullyReconciled)
	assert.False(t, f.carts.Has(a))
	assert.False(t, f.carts.Has(b))
	assert.Equal(t, []string{a, b}, f.publisher.Events[0].CartItemIDs)
}

func TestCheckout_EmptyIDList(t *testing.T) {
	f := newCheckoutFixture(false)

	result, err := f.svc.RecordPayment(context.Background(), domain.Payment{"cartItemIds": []any{}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Deleted.DeletedCount)
	assert.True(t, result.FullyReconciled)
	assert.Equal(t, 1, f.payments.Count())
}

func TestCheckout_ValidatesBeforeWriting(t *testing.T) {
	testCases := []struct {
		name    string
		payment domain.Payment
		want    error
	}{
		{"missing ids", domain.Payment{"amount": 10}, service.ErrMissingParameter},
		{"null ids", domain.Payment{"cartItemIds": nil}, service.ErrMissingParameter},
		{"not a list", domain.Payment{"cartItemIds": "abc"}, service.ErrInvalidIdentifier},
		{"malformed id", domain.Payment{"cartItemIds": []any{domain.NewID(), "nope"}}, service.ErrInvalidIdentifier},
		{"non-string id", domain.Payment{"cartItemIds": []any{42}}, service.ErrInvalidIdentifier},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(false)

			_, err := f.svc.RecordPayment(context.Background(), tc.payment)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, int32(0), f.payments.CreateCallCount)
			assert.Equal(t, int32(0), f.carts.DeleteManyCallCount)
		})
	}
}

func TestCheckout_InsertFailureSkipsDelete(t *testing.T) {
	f := newCheckoutFixture(false)
	a := f.addCartItem(t)
	f.payments.CreateError = repository.ErrStorageFailure

	_, err := f.svc.RecordPayment(context.Background(), domain.Payment{"cartItemIds": []any{a}})
	assert.ErrorIs(t, err, repository.ErrStorageFailure)
	assert.Equal(t, int32(0), f.carts.DeleteManyCallCount)
	assert.True(t, f.carts.Has(a))
}

func TestCheckout_PartialFailureReportsPaymentID(t *testing.T) {
	f := newCheckoutFixture(false)
	a := f.addCartItem(t)
	f.carts.DeleteManyError = repository.ErrStorageUnavailable

	_, err := f.svc.RecordPayment(context.Background(), domain.Payment{"cartItemIds": []any{a}})
	require.Error(t, err)

	var recErr *service.ReconciliationError
	require.True(t, errors.As(err, &recErr))
	assert.True(t, domain.IsValidID(recErr.PaymentID))
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)

	// The payment stays recorded.
	_, getErr := f.payments.Get(recErr.PaymentID)
	assert.NoError(t, getErr)
	assert.Empty(t, f.publisher.Events)
}

func TestCheckout_TransactionalRollsBackPayment(t *testing.T) {
	f := newCheckoutFixture(true)
	a := f.addCartItem(t)
	f.carts.DeleteManyError = repository.ErrStorageFailure

	_, err := f.svc.RecordPayment(context.Background(), domain.Payment{"cartItemIds": []any{a}})
	assert.ErrorIs(t, err, repository.ErrStorageFailure)

	var recErr *service.ReconciliationError
	assert.False(t, errors.As(err, &recErr))
	assert.Equal(t, 0, f.payments.Count())
	assert.True(t, f.carts.Has(a))
}

func TestCheckout_TransactionalSuccess(t *testing.T) {
	f := newCheckoutFixture(true)
	a := f.addCartItem(t)

	result, err := f.svc.RecordPayment(context.Background(), domain.Payment{"cartItemIds": []any{a}})
	require.NoError(t, err)
	assert.True(t, result.FullyReconciled)
	assert.Equal(t, 1, f.payments.Count())
	assert.False(t, f.carts.Has(a))
}

func TestCheckout_PublishFailureIsNotReturned(t *testing.T) {
	f := newCheckoutFixture(false)
	f.publisher.FailError = errors.New("broker down")
	a := f.addCartItem(t)

	_, err := f.svc.RecordPayment(context.Background(), domain.Payment{"cartItemIds": []any{a}})
	assert.NoError(t, err)
}
