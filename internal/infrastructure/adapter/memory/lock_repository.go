package memory

import (
	"context"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// SettlementLockRepository keeps aggregate leases in a Store
type SettlementLockRepository struct {
	store *Store
}

// AcquireLock takes the lease on key for owner
func (r *SettlementLockRepository) AcquireLock(_ context.Context, key, owner string, duration time.Duration) error {
	if err := r.store.injected(); err != nil {
		return err
	}
	now := r.store.timeProvider.Now()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if current, ok := r.store.locks[key]; ok && current.owner != owner && now.Before(current.expiresAt) {
		return fmt.Errorf("%w: %s held by %s", errs.ErrAggregateLocked, key, current.owner)
	}
	r.store.locks[key] = lease{owner: owner, expiresAt: now.Add(duration)}
	return nil
}

// ReleaseLock drops the lease if owner still holds it
func (r *SettlementLockRepository) ReleaseLock(_ context.Context, key, owner string) error {
	if err := r.store.injected(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if current, ok := r.store.locks[key]; ok && current.owner == owner {
		delete(r.store.locks, key)
	}
	return nil
}

// CleanupExpiredLocks removes leases past their expiry
func (r *SettlementLockRepository) CleanupExpiredLocks(_ context.Context) (int64, error) {
	if err := r.store.injected(); err != nil {
		return 0, err
	}
	now := r.store.timeProvider.Now()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed int64
	for key, current := range r.store.locks {
		if !now.Before(current.expiresAt) {
			delete(r.store.locks, key)
			removed++
		}
	}
	return removed, nil
}
