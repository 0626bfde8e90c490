package persistence

import (
	"context"
	"time"
)

// SettlementLockRepository provides leases on aggregate ids so that
// settlement workers in different processes do not interleave
type SettlementLockRepository interface {
	// AcquireLock takes the lease on key for owner. It succeeds when the key
	// is free, expired, or already held by owner.
	//
	// Possible errors:
	// - ErrAggregateLocked: If another owner holds an unexpired lease
	// - ErrDatabaseConnection: If database connection fails
	AcquireLock(ctx context.Context, key, owner string, duration time.Duration) error

	// ReleaseLock drops the lease if owner still holds it
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ReleaseLock(ctx context.Context, key, owner string) error

	// CleanupExpiredLocks removes leases past their expiry
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	CleanupExpiredLocks(ctx context.Context) (int64, error)
}
