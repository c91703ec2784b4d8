// Package redis provides Redis-backed adapters.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/khshaikh19/sortviz/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// refreshScript moves the expiry only if the key still holds our token.
// A non-positive ttl makes the lease permanent, like SET without PX.
const refreshScript = `
if redis.call("get", KEYS[1]) ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
redis.call("persist", KEYS[1])
return 1
`

// Locker implements ports.RunLocker using Redis SET NX PX, so controllers in
// different processes driving the same array agree on a single live run.
type Locker struct {
	client *backend.Client
	prefix string
}

var _ ports.RunLocker = (*Locker)(nil)

// NewLocker creates a new Redis locker. Keys are stored as prefix+"lock:"+key.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// TryLock makes a single SET NX attempt.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.Lease, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error acquiring lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrLockHeld
	}
	return &redisLease{client: l.client, key: lockKey, token: token}, nil
}

type redisLease struct {
	client *backend.Client
	key    string
	token  string
}

func (r *redisLease) Refresh(ctx context.Context, ttl time.Duration) error {
	n, err := r.client.Eval(ctx, refreshScript, []string{r.key}, r.token, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("redis error refreshing lock: %w", err)
	}
	if n == 0 {
		return domain.ErrLockLost
	}
	return nil
}

func (r *redisLease) Unlock(ctx context.Context) error {
	if err := r.client.Eval(ctx, releaseScript, []string{r.key}, r.token).Err(); err != nil {
		return fmt.Errorf("redis error releasing lock: %w", err)
	}
	return nil
}
