// Package memory provides process-local adapters.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/khshaikh19/sortviz/pkg/ports"
)

type lease struct {
	token   string
	expires time.Time
}

// Locker implements ports.RunLocker within a single process.
type Locker struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

var _ ports.RunLocker = (*Locker)(nil)

// NewLocker creates an empty in-memory locker.
func NewLocker() *Locker {
	return &Locker{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

// TryLock acquires key unless a live lease exists.
// A non-positive ttl never expires.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.Lease, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if cur, ok := l.leases[key]; ok && (cur.expires.IsZero() || now.Before(cur.expires)) {
		return nil, domain.ErrLockHeld
	}

	token := uuid.NewString()
	l.leases[key] = lease{token: token, expires: expiry(now, ttl)}
	return &memoryLease{locker: l, key: key, token: token}, nil
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

type memoryLease struct {
	locker *Locker
	key    string
	token  string
}

// Refresh succeeds while the key still carries our token, even past expiry,
// since nobody else has taken it yet.
func (m *memoryLease) Refresh(ctx context.Context, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := m.locker
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.leases[m.key]
	if !ok || cur.token != m.token {
		return domain.ErrLockLost
	}
	cur.expires = expiry(l.now(), ttl)
	l.leases[m.key] = cur
	return nil
}

func (m *memoryLease) Unlock(context.Context) error {
	l := m.locker
	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.leases[m.key]; ok && cur.token == m.token {
		delete(l.leases, m.key)
	}
	return nil
}
