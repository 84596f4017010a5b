package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/batuta-io/batuta/internal/adapters/redis"
)

func newTestLocker(t *testing.T) (*redisstore.Locker, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.NewLocker(client, "batuta:"), mr
}

func TestLocker_LockUnlock(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "sess-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("batuta:lock:sess-1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("batuta:lock:sess-1"))
}

func TestLocker_Contention(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "sess-1", 5*time.Second)
	require.NoError(t, err)

	// Second acquisition blocks until its context expires.
	shortCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(shortCtx, "sess-1", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// After release, acquisition succeeds.
	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "sess-1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_UnlockOnlyOwnToken(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "sess-1", 5*time.Second)
	require.NoError(t, err)

	// Simulate the lock expiring and another holder taking it.
	mr.Del("batuta:lock:sess-1")
	require.NoError(t, mr.Set("batuta:lock:sess-1", "other-token"))

	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("batuta:lock:sess-1"), "foreign lock must survive a stale unlock")
}
