package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, ttl, zap.NewNop())
	l.retry = 5 * time.Millisecond
	return l, mr
}

func TestRedisLocker_BlocksUntilRelease(t *testing.T) {
	l, mr := newRedisLocker(t, time.Minute)
	key := BookingKey("emp-1", "2026-10-19")

	release, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))

	acquired := make(chan func(), 1)
	go func() {
		r, err := l.Acquire(context.Background(), key)
		if err == nil {
			acquired <- r
		}
	}()

	assert.Never(t, func() bool { return len(acquired) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	release()

	var second func()
	require.Eventually(t, func() bool {
		select {
		case second = <-acquired:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	second()
	assert.False(t, mr.Exists(key))
}

func TestRedisLocker_ContextEnds(t *testing.T) {
	l, _ := newRedisLocker(t, time.Minute)
	key := BookingKey("emp-1", "2026-10-19")

	release, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	r, err := l.Acquire(ctx, key)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestRedisLocker_StaleReleaseKeepsNewHolder(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second)
	key := BookingKey("emp-1", "2026-10-19")

	stale, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)
	first, err := mr.Get(key)
	require.NoError(t, err)

	// the first holder outlives its TTL
	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key))

	current, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)
	second, err := mr.Get(key)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	stale()

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	current()
	assert.False(t, mr.Exists(key))
}

func TestRedisLocker_IndependentKeys(t *testing.T) {
	l, _ := newRedisLocker(t, time.Minute)

	r1, err := l.Acquire(context.Background(), BookingKey("a", "2026-10-19"))
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	r2, err := l.Acquire(ctx, BookingKey("b", "2026-10-19"))
	require.NoError(t, err)
	r2()
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	addr := mr.Addr()
	client, err := NewRedisClient(context.Background(), "redis://"+addr)
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	_, err = NewRedisClient(context.Background(), "not-a-url")
	assert.Error(t, err)

	mr.Close()
	_, err = NewRedisClient(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}
