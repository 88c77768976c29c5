package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"triphaven/internal/domain"
)

// DefaultTripCacheTTL is used when no TTL is configured.
const DefaultTripCacheTTL = 60 * time.Second

// Key prefixes
const (
	tripCachePrefix = "cache:trip:"
	tripListKey     = "cache:trips:all"
)

// CacheStore caches catalog trips in Redis.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheStore creates a new CacheStore. A non-positive ttl uses DefaultTripCacheTTL.
func NewCacheStore(client *redis.Client, ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultTripCacheTTL
	}
	return &CacheStore{client: client, ttl: ttl}
}

// GetTrip retrieves a trip from cache. Returns nil on a cache miss.
func (s *CacheStore) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	data, err := s.client.Get(ctx, tripCachePrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var trip domain.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// SetTrip stores a trip in cache.
func (s *CacheStore) SetTrip(ctx context.Context, trip domain.Trip) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tripCachePrefix+trip.ID(), data, s.ttl).Err()
}

// GetTrips retrieves the full trip list from cache. Returns nil on a cache miss.
func (s *CacheStore) GetTrips(ctx context.Context) ([]domain.Trip, error) {
	data, err := s.client.Get(ctx, tripListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	trips := []domain.Trip{}
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// SetTrips stores the full trip list and each trip individually using a pipeline.
func (s *CacheStore) SetTrips(ctx context.Context, trips []domain.Trip) error {
	if trips == nil {
		trips = []domain.Trip{}
	}

	pipe := s.client.Pipeline()

	data, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	pipe.Set(ctx, tripListKey, data, s.ttl)

	for _, trip := range trips {
		item, err := json.Marshal(trip)
		if err != nil {
			continue // Skip invalid entries
		}
		pipe.Set(ctx, tripCachePrefix+trip.ID(), item, s.ttl)
	}

	_, err = pipe.Exec(ctx)
	return err
}
