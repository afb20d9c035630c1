package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every server instance pointing at the same
// Redis. Locks expire after TTL so a crashed holder cannot wedge a resource.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

// NewRedis creates a Redis-backed locker. ttl must exceed the longest time a
// caller holds a lock, or a second holder may enter after expiry; retry is the
// polling interval while waiting.
func NewRedis(client redis.UniversalClient, ttl, retry time.Duration) *Redis {
	return &Redis{
		client: client,
		prefix: "sanagustin:lock:",
		ttl:    ttl,
		retry:  retry,
	}
}

// Lock acquires key with SET NX PX, polling until ctx is done.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	fullKey := r.prefix + key

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				// Release with a fresh context so a cancelled request still frees the key.
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := releaseScript.Run(releaseCtx, r.client, []string{fullKey}, token).Err(); err != nil {
					slog.Warn("Failed to release lock", "key", key, "error", err)
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}
