package vault

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedis(rdb, "gopress")
}

func TestRedisRoundTrip(t *testing.T) {
	v := newTestRedis(t)
	ctx := context.Background()

	_, err := v.Get(ctx, "access_token")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, v.Set(ctx, "access_token", "abc"))
	got, err := v.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, v.Delete(ctx, "access_token", "refresh_token"))
	_, err = v.Get(ctx, "access_token")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisKeysAreNamespaced(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	v := NewRedis(rdb, "gopress")
	require.NoError(t, v.Set(ctx, "access_token", "abc"))

	stored, err := rdb.Get(ctx, "gopress:access_token").Result()
	require.NoError(t, err)
	assert.Equal(t, "abc", stored)

	// Two prefixes on one server stay isolated.
	other := NewRedis(rdb, "other")
	_, err = other.Get(ctx, "access_token")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	v := NewRedis(rdb, "gopress")
	_, err = v.Get(context.Background(), "access_token")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, v.Set(context.Background(), "access_token", "abc"), ErrUnavailable)
}
