package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/khshaikh19/sortviz/pkg/adapters/memory"
	redisAdapter "github.com/khshaikh19/sortviz/pkg/adapters/redis"
	"github.com/khshaikh19/sortviz/pkg/ports"
	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sortviz:"

// setupLocker picks the run lock backend. Without a Redis address the lock is
// process-local. The returned close func is never nil.
func setupLocker(ctx context.Context, addr string, logger *slog.Logger) (ports.RunLocker, func() error, error) {
	if addr == "" {
		return memory.NewLocker(), func() error { return nil }, nil
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}
	logger.Debug("using redis run lock", "addr", addr)
	return redisAdapter.NewLocker(client, redisKeyPrefix), client.Close, nil
}
