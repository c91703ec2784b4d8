package ports

import (
	"context"
	"time"
)

// Lease is a run lock held by its owner until released or expired.
type Lease interface {
	// Refresh extends the lease to ttl from now.
	// It returns domain.ErrLockLost if the lease is no longer ours.
	Refresh(ctx context.Context, ttl time.Duration) error
	// Unlock releases the lease. Calling it more than once is harmless.
	Unlock(ctx context.Context) error
}

// RunLocker guards the rule that at most one run is live for a given array.
// The controller already enforces this for its own runs; a RunLocker extends
// the guarantee to every controller sharing the same locker.
type RunLocker interface {
	// TryLock acquires the lock for key without waiting.
	// It returns domain.ErrLockHeld if another owner holds the lock.
	// The lease expires after ttl unless refreshed or released.
	TryLock(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}
