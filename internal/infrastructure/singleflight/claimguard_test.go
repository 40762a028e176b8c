package singleflight

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestClaimGuard_AcquireRelease(t *testing.T) {
	guard := NewClaimGuard(setupTestRedis(t))
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, 1, "01012345678", 15000)
	require.NoError(t, err)
	assert.True(t, ok)

	// identical claim is refused while in flight
	ok, err = guard.Acquire(ctx, 1, "01012345678", 15000)
	require.NoError(t, err)
	assert.False(t, ok)

	// a different amount is a different claim
	ok, err = guard.Acquire(ctx, 1, "01012345678", 20000)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, guard.Release(ctx, 1, "01012345678", 15000))

	ok, err = guard.Acquire(ctx, 1, "01012345678", 15000)
	require.NoError(t, err)
	assert.True(t, ok)
}
