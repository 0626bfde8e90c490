package settlement

import (
	"context"
	"errors"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
)

// Locker serializes work on one aggregate id
type Locker interface {
	// Lock blocks until key is held and returns the release function
	Lock(ctx context.Context, key string) (func(), error)
}

// KeyedMutex is an in-process Locker with one mutex per key
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock acquires the mutex for key
func (k *KeyedMutex) Lock(_ context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}, nil
}

// held reports how many callers hold or wait for key
func (k *KeyedMutex) held(key string) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	if entry, ok := k.locks[key]; ok {
		return entry.refs
	}
	return 0
}

// LeaseLocker adds a database lease on top of the in-process mutex so that
// several executor processes can share one store. A held lease is renewed
// every third of its TTL until released.
type LeaseLocker struct {
	local        *KeyedMutex
	repo         persistence.SettlementLockRepository
	owner        string
	ttl          time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// heldLease tracks the renewal of one acquired lease
type heldLease struct {
	mu      sync.Mutex
	stopped bool
	timer   coreport.Timer
}

// NewLeaseLocker creates a LeaseLocker that takes leases as owner
func NewLeaseLocker(
	repo persistence.SettlementLockRepository,
	owner string,
	ttl time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *LeaseLocker {
	return &LeaseLocker{
		local:        NewKeyedMutex(),
		repo:         repo,
		owner:        owner,
		ttl:          ttl,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Lock takes the local mutex, then the lease. A lease held elsewhere
// returns ErrAggregateLocked, which the executor retries.
func (l *LeaseLocker) Lock(ctx context.Context, key string) (func(), error) {
	release, err := l.local.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := l.repo.AcquireLock(ctx, key, l.owner, l.ttl); err != nil {
		release()
		return nil, err
	}

	lease := &heldLease{}
	l.scheduleRenewal(key, lease)

	return func() {
		lease.stop()
		if err := l.repo.ReleaseLock(context.Background(), key, l.owner); err != nil {
			l.logger.Warn("Failed to release settlement lease", map[string]any{
				"aggregate_id": key,
				"owner":        l.owner,
				"error":        err.Error(),
			})
		}
		release()
	}, nil
}

func (l *LeaseLocker) scheduleRenewal(key string, lease *heldLease) {
	every := l.ttl / 3
	if every <= 0 {
		return
	}

	lease.mu.Lock()
	defer lease.mu.Unlock()
	if lease.stopped {
		return
	}
	lease.timer = l.timeProvider.AfterFunc(coreport.Duration(every), func() {
		l.renew(key, lease)
	})
}

// renew extends the lease. It holds lease.mu so a release waits for an
// in-flight renewal instead of racing it.
func (l *LeaseLocker) renew(key string, lease *heldLease) {
	lease.mu.Lock()
	if lease.stopped {
		lease.mu.Unlock()
		return
	}
	ctx, cancel := l.timeProvider.WithTimeout(context.Background(), coreport.Duration(l.ttl/3))
	err := l.repo.AcquireLock(ctx, key, l.owner, l.ttl)
	cancel()
	lease.mu.Unlock()

	switch {
	case err == nil:
		l.logger.Debug("Settlement lease renewed", map[string]any{
			"aggregate_id": key,
			"owner":        l.owner,
		})
	case errors.Is(err, errs.ErrAggregateLocked):
		// another owner took over after the lease expired
		l.logger.Error("Settlement lease lost", map[string]any{
			"aggregate_id": key,
			"owner":        l.owner,
			"error":        err.Error(),
		})
		return
	default:
		l.logger.Warn("Failed to renew settlement lease", map[string]any{
			"aggregate_id": key,
			"owner":        l.owner,
			"error":        err.Error(),
		})
	}
	l.scheduleRenewal(key, lease)
}

func (h *heldLease) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	if h.timer != nil {
		h.timer.Stop()
	}
}

// Sweep removes leases that expired without being released, for example
// after a worker process died mid-job
func (l *LeaseLocker) Sweep(ctx context.Context) (int64, error) {
	removed, err := l.repo.CleanupExpiredLocks(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		l.logger.Info("Expired settlement leases removed", map[string]any{
			"removed": removed,
		})
	}
	return removed, nil
}
