package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// DefaultRedisTTL replaces a non-positive TTL, since SET NX without expiry
// would let a crashed holder block a pair forever.
const DefaultRedisTTL = 30 * time.Second

// RedisLock is a cross-instance lock built on SET NX PX. The TTL bounds how
// long a crashed holder can block a pair; it must exceed the hub timeout,
// which config validation enforces.
type RedisLock struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

type RedisOption func(*RedisLock)

// WithRetryInterval sets the polling interval while the lock is held elsewhere.
func WithRetryInterval(d time.Duration) RedisOption {
	return func(l *RedisLock) {
		if d > 0 {
			l.retry = d
		}
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(l *RedisLock) {
		l.prefix = prefix
	}
}

// NewRedis builds a RedisLock. client is usually a *redis.Client.
func NewRedis(client redis.Cmdable, ttl time.Duration, opts ...RedisOption) *RedisLock {
	l := &RedisLock{
		client: client,
		prefix: "pushgraph:lock:subscribe:",
		ttl:    ttl,
		retry:  50 * time.Millisecond,
	}
	if l.ttl <= 0 {
		l.ttl = DefaultRedisTTL
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock polls until the key is acquired or ctx is done. Release only deletes
// the key while it still carries this holder's token.
func (l *RedisLock) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()
	for {
		acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("acquire subscribe lock: %w", err)
		}
		if acquired {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
