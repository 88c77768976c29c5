package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"triphaven/internal/domain"
	"triphaven/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]domain.Trip

	// Counters for verification
	GetAllCallCount  int32
	GetByIDCallCount int32

	// Error injection
	GetAllError  error
	GetByIDError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]domain.Trip),
	}
}

// AddTrip seeds a trip and returns its ID.
func (m *MockTripRepository) AddTrip(trip domain.Trip) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := domain.Document(trip).ID()
	if id == "" {
		id = domain.NewID()
		trip[domain.IDField] = id
	}
	m.trips[id] = trip
	return id
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]domain.Trip, error) {
	atomic.AddInt32(&m.GetAllCallCount, 1)
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		result = append(result, t)
	}
	return result, nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return trip, nil
}

// ──────────────────────────────────────────────
// MOCK CART REPOSITORY
// ──────────────────────────────────────────────

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mu    sync.RWMutex
	items map[string]domain.CartItem

	// Counters for verification
	CreateCallCount     int32
	GetByOwnerCallCount int32
	DeleteCallCount     int32
	DeleteManyCallCount int32

	// Error injection
	CreateError     error
	GetByOwnerError error
	DeleteError     error
	DeleteManyError error
}

// NewMockCartRepository creates a new mock cart repository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]domain.CartItem),
	}
}

func (m *MockCartRepository) Create(ctx context.Context, item domain.CartItem) (repository.InsertResult, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return repository.InsertResult{}, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := domain.CartItem(domain.Document(item).WithoutID())
	id := domain.NewID()
	stored[domain.IDField] = id
	m.items[id] = stored
	return repository.InsertResult{InsertedID: id, Acknowledged: true}, nil
}

func (m *MockCartRepository) GetByOwner(ctx context.Context, email string) ([]domain.CartItem, error) {
	atomic.AddInt32(&m.GetByOwnerCallCount, 1)
	if m.GetByOwnerError != nil {
		return nil, m.GetByOwnerError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.CartItem, 0)
	for _, item := range m.items {
		if item[domain.CartOwnerField] == email || item[domain.CartOwnerAliasField] == email {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockCartRepository) Delete(ctx context.Context, id string) (repository.DeleteResult, error) {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return repository.DeleteResult{}, m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.items, id)
	return repository.DeleteResult{DeletedCount: 1, Acknowledged: true}, nil
}

func (m *MockCartRepository) DeleteMany(ctx context.Context, ids []string) (repository.DeleteResult, error) {
	atomic.AddInt32(&m.DeleteManyCallCount, 1)
	if m.DeleteManyError != nil {
		return repository.DeleteResult{}, m.DeleteManyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := m.items[id]; ok {
			delete(m.items, id)
			deleted++
		}
	}
	return repository.DeleteResult{DeletedCount: deleted, Acknowledged: true}, nil
}

// Has reports whether a cart item is stored (for test assertions).
func (m *MockCartRepository) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[id]
	return ok
}

// CallCount returns the total number of storage calls.
func (m *MockCartRepository) CallCount() int32 {
	return atomic.LoadInt32(&m.CreateCallCount) +
		atomic.LoadInt32(&m.GetByOwnerCallCount) +
		atomic.LoadInt32(&m.DeleteCallCount) +
		atomic.LoadInt32(&m.DeleteManyCallCount)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]domain.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment domain.Payment) (repository.InsertResult, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return repository.InsertResult{}, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := domain.Payment(domain.Document(payment).WithoutID())
	id := domain.NewID()
	stored[domain.IDField] = id
	m.payments[id] = stored
	return repository.InsertResult{InsertedID: id, Acknowledged: true}, nil
}

// Get returns a stored payment (for test assertions).
func (m *MockPaymentRepository) Get(id string) (domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

// Count returns the number of stored payments.
func (m *MockPaymentRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// Remove drops a payment; used by the unit of work to simulate rollback.
func (m *MockPaymentRepository) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payments, id)
}

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockUnitOfWork runs fn against the given repositories and undoes payment
// inserts when fn fails. Cart deletes are only undone if DeleteMany never ran.
type MockUnitOfWork struct {
	Carts    *MockCartRepository
	Payments *MockPaymentRepository

	CallCount int32
}

func (u *MockUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	atomic.AddInt32(&u.CallCount, 1)
	tracked := &trackingPaymentRepository{MockPaymentRepository: u.Payments}
	err := fn(ctx, repository.TxRepositories{Carts: u.Carts, Payments: tracked})
	if err != nil {
		for _, id := range tracked.inserted {
			u.Payments.Remove(id)
		}
	}
	return err
}

type trackingPaymentRepository struct {
	*MockPaymentRepository
	inserted []string
}

func (r *trackingPaymentRepository) Create(ctx context.Context, payment domain.Payment) (repository.InsertResult, error) {
	res, err := r.MockPaymentRepository.Create(ctx, payment)
	if err == nil {
		r.inserted = append(r.inserted, res.InsertedID)
	}
	return res, err
}

// ──────────────────────────────────────────────
// MOCK TRIP CACHE
// ──────────────────────────────────────────────

// MockTripCache is an in-memory TripCache.
type MockTripCache struct {
	mu    sync.Mutex
	trips map[string]domain.Trip
	all   []domain.Trip

	GetError error
}

// NewMockTripCache creates a new mock trip cache.
func NewMockTripCache() *MockTripCache {
	return &MockTripCache{trips: make(map[string]domain.Trip)}
}

func (c *MockTripCache) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	if c.GetError != nil {
		return nil, c.GetError
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trips[id], nil
}

func (c *MockTripCache) SetTrip(ctx context.Context, trip domain.Trip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trips[domain.Document(trip).ID()] = trip
	return nil
}

func (c *MockTripCache) GetTrips(ctx context.Context) ([]domain.Trip, error) {
	if c.GetError != nil {
		return nil, c.GetError
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.all, nil
}

func (c *MockTripCache) SetTrips(ctx context.Context, trips []domain.Trip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = trips
	return nil
}

// Cached reports whether a trip is cached (for test assertions).
func (c *MockTripCache) Cached(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.trips[id]
	return ok
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a mock payment provider.
type MockGateway struct {
	mu sync.Mutex

	// Control behavior
	FailError error
	Secret    string

	// Recorded calls
	Amounts   []int64
	CallCount int32
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{Secret: "pi_test_secret_123"}
}

func (m *MockGateway) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	atomic.AddInt32(&m.CallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Amounts = append(m.Amounts, amount)
	if m.FailError != nil {
		return "", m.FailError
	}
	return m.Secret, nil
}

// ──────────────────────────────────────────────
// MOCK EVENT PUBLISHER
// ──────────────────────────────────────────────

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	Events []domain.PaymentRecordedEvent

	FailError error
}

func (p *MockPublisher) PublishPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailError != nil {
		return p.FailError
	}
	p.Events = append(p.Events, event)
	return nil
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var ErrMockTimeout = errors.New("mock: operation timeout")
