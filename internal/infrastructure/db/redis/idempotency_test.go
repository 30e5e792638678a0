package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, ttl), mr
}

func TestIdempotencyStore_RememberAndLookup(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	_, ok, err := store.Lookup(ctx, "orders", "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Remember(ctx, "orders", "abc", 42))

	id, ok, err := store.Lookup(ctx, "orders", "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	_, ok, err = store.Lookup(ctx, "clients", "abc")
	require.NoError(t, err)
	assert.False(t, ok, "scopes must not collide")
}

func TestIdempotencyStore_FirstWriterWins(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "orders", "abc", 1))
	require.NoError(t, store.Remember(ctx, "orders", "abc", 2))

	id, _, err := store.Lookup(ctx, "orders", "abc")
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)
}

func TestIdempotencyStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "orders", "abc", 7))
	assert.Equal(t, time.Minute, mr.TTL("idem:orders:abc"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Lookup(ctx, "orders", "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdempotencyStore_CorruptValue(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	require.NoError(t, mr.Set("idem:orders:bad", "not-a-number"))

	_, _, err := store.Lookup(context.Background(), "orders", "bad")
	assert.Error(t, err)
}

func TestIdempotencyStore_Unavailable(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	mr.Close()

	_, _, err := store.Lookup(context.Background(), "orders", "abc")
	assert.Error(t, err)
}

func TestConnectAndPing(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, Pinger{Client: client}.Ping(context.Background()))
}
