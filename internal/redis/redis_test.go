package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"triphaven/internal/domain"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestCacheStore_TripRoundTrip(t *testing.T) {
	client := startRedis(t)
	cache := NewCacheStore(client, time.Minute)
	ctx := context.Background()
	id := domain.NewID()

	miss, err := cache.GetTrip(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.SetTrip(ctx, domain.Trip{"_id": id, "title": "Ratargul"}))

	hit, err := cache.GetTrip(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ratargul", hit["title"])

	ttl, err := client.TTL(ctx, tripCachePrefix+id).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestCacheStore_TripList(t *testing.T) {
	client := startRedis(t)
	cache := NewCacheStore(client, 0)
	ctx := context.Background()

	miss, err := cache.GetTrips(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)

	// An empty catalog is cached as an empty list, not a miss.
	require.NoError(t, cache.SetTrips(ctx, nil))
	empty, err := cache.GetTrips(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a, b := domain.NewID(), domain.NewID()
	require.NoError(t, cache.SetTrips(ctx, []domain.Trip{{"_id": a}, {"_id": b}}))

	trips, err := cache.GetTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, 2)

	single, err := cache.GetTrip(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, b, single.ID())
}

func TestLockStore_AcquireRelease(t *testing.T) {
	client := startRedis(t)
	locks := NewLockStore(client)
	ctx := context.Background()

	ok, err := locks.AcquireRequestLock(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locks.AcquireRequestLock(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	require.NoError(t, locks.ReleaseRequestLock(ctx, "key-1"))

	ok, err = locks.AcquireRequestLock(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
