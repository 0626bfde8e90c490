package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// TransactionRepository keeps Transaction snapshots in a Store
type TransactionRepository struct {
	store *Store
	unit  *unit
}

func lookupTransaction(staged, committed *tables, id string) (entity.TransactionSnapshot, bool) {
	if staged != nil {
		if snap, ok := staged.transactions[id]; ok {
			return snap, true
		}
	}
	snap, ok := committed.transactions[id]
	return snap, ok
}

// Create saves a new transaction
func (r *TransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	snap := transaction.Snapshot()
	err := r.store.write(r.unit, func(target, committed *tables) error {
		if _, exists := lookupTransaction(target, committed, snap.ID); exists {
			return fmt.Errorf("%w: transaction %s", errs.ErrDuplicateTransaction, snap.ID)
		}
		target.transactions[snap.ID] = snap
		return nil
	})
	if err != nil {
		return err
	}

	r.store.logger.Debug("Transaction stored", map[string]any{
		"transaction_id": snap.ID,
		"status":         snap.Status,
		"version":        snap.Version,
	})
	return nil
}

// Load retrieves a transaction by ID
func (r *TransactionRepository) Load(_ context.Context, transactionID string) (*entity.Transaction, error) {
	var snap entity.TransactionSnapshot
	err := r.store.view(r.unit, func(staged, committed *tables) error {
		var ok bool
		if snap, ok = lookupTransaction(staged, committed, transactionID); !ok {
			return fmt.Errorf("%w: %s", errs.ErrTransactionNotFound, transactionID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity.RestoreTransaction(snap), nil
}

// Save replaces the stored transaction if its version still equals expectedVersion
func (r *TransactionRepository) Save(_ context.Context, transaction *entity.Transaction, expectedVersion int64) error {
	snap := transaction.Snapshot()
	return r.store.write(r.unit, func(target, committed *tables) error {
		current, ok := lookupTransaction(target, committed, snap.ID)
		if !ok {
			return fmt.Errorf("%w: %s", errs.ErrTransactionNotFound, snap.ID)
		}
		if current.Version != expectedVersion {
			return errs.NewConcurrentModificationError(entity.AggregateTransaction, snap.ID, expectedVersion, current.Version)
		}
		target.transactions[snap.ID] = snap
		return nil
	})
}

// ListLinked returns refunds and reversals of originalTransactionID, oldest first
func (r *TransactionRepository) ListLinked(_ context.Context, originalTransactionID string) ([]*entity.Transaction, error) {
	var linked []entity.TransactionSnapshot
	err := r.store.view(r.unit, func(staged, committed *tables) error {
		seen := make(map[string]bool)
		for _, source := range []*tables{staged, committed} {
			if source == nil {
				continue
			}
			for id, snap := range source.transactions {
				if seen[id] || snap.OriginalTransactionID != originalTransactionID {
					continue
				}
				seen[id] = true
				linked = append(linked, snap)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(linked, func(a, b entity.TransactionSnapshot) int {
		return cmp.Or(a.InitiatedAt.Compare(b.InitiatedAt), cmp.Compare(a.ID, b.ID))
	})
	result := make([]*entity.Transaction, 0, len(linked))
	for _, snap := range linked {
		result = append(result, entity.RestoreTransaction(snap))
	}
	return result, nil
}
