package ports

import (
	"context"
	"testing"
	"time"

	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLockerContract runs a suite of tests to verify that a RunLocker
// implementation adheres to the interface contract.
func RunLockerContract(t *testing.T, locker RunLocker) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405.000000")

	t.Run("Acquire and Release", func(t *testing.T) {
		lease, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.NotNil(t, lease)
		require.NoError(t, lease.Unlock(ctx))

		again, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err, "lock must be free after release")
		require.NoError(t, again.Unlock(ctx))
	})

	t.Run("Contention", func(t *testing.T) {
		lease, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		defer func() { _ = lease.Unlock(ctx) }()

		_, err = locker.TryLock(ctx, key, time.Minute)
		assert.ErrorIs(t, err, domain.ErrLockHeld)

		other, err := locker.TryLock(ctx, key+"-other", time.Minute)
		require.NoError(t, err, "distinct keys do not contend")
		require.NoError(t, other.Unlock(ctx))
	})

	t.Run("Stale Unlock Keeps New Owner", func(t *testing.T) {
		first, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.NoError(t, first.Unlock(ctx))

		second, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		defer func() { _ = second.Unlock(ctx) }()

		require.NoError(t, first.Unlock(ctx), "double unlock is harmless")
		_, err = locker.TryLock(ctx, key, time.Minute)
		assert.ErrorIs(t, err, domain.ErrLockHeld, "a stale unlock must not free the current owner")
	})

	t.Run("Refresh Keeps Lock", func(t *testing.T) {
		lease, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		defer func() { _ = lease.Unlock(ctx) }()

		require.NoError(t, lease.Refresh(ctx, time.Minute))
		_, err = locker.TryLock(ctx, key, time.Minute)
		assert.ErrorIs(t, err, domain.ErrLockHeld)
	})

	t.Run("Refresh After Release Is Lost", func(t *testing.T) {
		first, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.NoError(t, first.Unlock(ctx))
		assert.ErrorIs(t, first.Refresh(ctx, time.Minute), domain.ErrLockLost)

		second, err := locker.TryLock(ctx, key, time.Minute)
		require.NoError(t, err)
		defer func() { _ = second.Unlock(ctx) }()

		assert.ErrorIs(t, first.Refresh(ctx, time.Minute), domain.ErrLockLost,
			"a stale lease must not extend the current owner")
	})
}
