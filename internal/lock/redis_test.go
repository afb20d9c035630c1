package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, ttl, 2*time.Millisecond), mr
}

func TestRedis_SerializesSameKey(t *testing.T) {
	l, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()

	var inside, maxInside, done int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "amenity:1")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			atomic.AddInt32(&done, 1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, int32(10), done)
	assert.False(t, mr.Exists("sanagustin:lock:amenity:1"), "released keys are deleted")
}

func TestRedis_DifferentKeysIndependent(t *testing.T) {
	l, _ := newTestRedis(t, time.Minute)

	unlockA, err := l.Lock(context.Background(), "amenity:1")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, "amenity:2")
	require.NoError(t, err)
	unlockB()
}

func TestRedis_ContextCancelledWhileWaiting(t *testing.T) {
	l, mr := newTestRedis(t, time.Minute)

	unlock, err := l.Lock(context.Background(), "visitor_spot:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "visitor_spot:1")
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.False(t, mr.Exists("sanagustin:lock:visitor_spot:1"))
}

func TestRedis_UnlockAfterRequestCancelled(t *testing.T) {
	l, mr := newTestRedis(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	unlock, err := l.Lock(ctx, "amenity:3")
	require.NoError(t, err)
	cancel()

	unlock()
	assert.False(t, mr.Exists("sanagustin:lock:amenity:3"), "a cancelled holder still frees its key")

	ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock, err = l.Lock(ctx, "amenity:3")
	require.NoError(t, err)
	unlock()
}

func TestRedis_ExpiredHolderDoesNotReleaseNewHolder(t *testing.T) {
	l, mr := newTestRedis(t, time.Second)
	ctx := context.Background()
	key := "sanagustin:lock:amenity:4"

	unlockFirst, err := l.Lock(ctx, "amenity:4")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key), "the first lock expired")

	unlockSecond, err := l.Lock(ctx, "amenity:4")
	require.NoError(t, err)
	token, err := mr.Get(key)
	require.NoError(t, err)

	unlockFirst()
	got, err := mr.Get(key)
	require.NoError(t, err, "the expired holder must not delete the new lock")
	assert.Equal(t, token, got)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(waitCtx, "amenity:4")
	assert.ErrorIs(t, err, ErrNotAcquired, "the key is still held by the second holder")

	unlockSecond()
	assert.False(t, mr.Exists(key))
}

func TestRedis_LockSetsTTL(t *testing.T) {
	l, mr := newTestRedis(t, 20*time.Second)

	unlock, err := l.Lock(context.Background(), "parking_slot:visitor-pool")
	require.NoError(t, err)
	defer unlock()

	assert.Equal(t, 20*time.Second, mr.TTL("sanagustin:lock:parking_slot:visitor-pool"))
}
