package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SettlementLockRepository implements aggregate leases using GORM
type SettlementLockRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.SettlementLockRepository = (*SettlementLockRepository)(nil)

// NewSettlementLockRepository creates a new SettlementLockRepository instance
func NewSettlementLockRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *SettlementLockRepository {
	return &SettlementLockRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// AcquireLock takes the lease on key for owner. A single upsert either
// inserts the lease, takes over an expired one or renews the owner's own.
func (r *SettlementLockRepository) AcquireLock(ctx context.Context, key, owner string, duration time.Duration) error {
	now := r.timeProvider.Now()
	expiresAt := now.Add(duration)

	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO settlement_locks (lock_key, owner, locked_at, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (lock_key) DO UPDATE
		SET owner = EXCLUDED.owner,
		    locked_at = EXCLUDED.locked_at,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = EXCLUDED.updated_at
		WHERE settlement_locks.expires_at <= ? OR settlement_locks.owner = ?`,
		key, owner, now, expiresAt, now, now,
		now, owner,
	)

	if result.Error != nil {
		if isContextError(result.Error) {
			r.logger.Warn("Context timeout acquiring lock", map[string]any{
				"lock_key": key,
				"error":    result.Error.Error(),
			})
			return fmt.Errorf("%w: lock acquisition timeout: %s", errs.ErrAggregateLocked, result.Error.Error())
		}
		r.logger.Error("Database error acquiring lock", map[string]any{
			"lock_key": key,
			"error":    result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}

	// the conflict clause skipped the row: someone else holds a live lease
	if result.RowsAffected == 0 {
		r.logger.Debug("Aggregate is locked", map[string]any{
			"lock_key": key,
			"owner":    owner,
		})
		return fmt.Errorf("%w: %s", errs.ErrAggregateLocked, key)
	}

	r.logger.Debug("Lock acquired", map[string]any{
		"lock_key":   key,
		"owner":      owner,
		"expires_at": expiresAt,
	})
	return nil
}

// isContextError checks if an error is related to context timeout or cancellation
func isContextError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled")
}

// ReleaseLock drops the lease if owner still holds it
func (r *SettlementLockRepository) ReleaseLock(ctx context.Context, key, owner string) error {
	result := r.db.WithContext(ctx).
		Where("lock_key = ? AND owner = ?", key, owner).
		Delete(&model.SettlementLock{})

	// the lease expires on its own
	if result.Error != nil && isContextError(result.Error) {
		r.logger.Warn("Context timeout when releasing lock, lock will expire automatically", map[string]any{
			"lock_key": key,
			"error":    result.Error.Error(),
		})
		return nil
	}

	if result.Error != nil {
		r.logger.Error("Failed to release lock", map[string]any{
			"lock_key": key,
			"error":    result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Debug("Lock released", map[string]any{
			"lock_key": key,
			"owner":    owner,
		})
	}
	return nil
}

// CleanupExpiredLocks removes all expired leases
func (r *SettlementLockRepository) CleanupExpiredLocks(ctx context.Context) (int64, error) {
	now := r.timeProvider.Now()

	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.SettlementLock{})
	if result.Error != nil {
		r.logger.Error("Failed to clean up expired locks", map[string]any{
			"error": result.Error.Error(),
		})
		return 0, r.errorClassifier.ToDomain(result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Expired locks removed", map[string]any{
			"locks_removed": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}
