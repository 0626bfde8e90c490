package memory

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// AccountRepository keeps ledger accounts in a Store
type AccountRepository struct {
	store *Store
	unit  *unit
}

func lookupAccount(staged, committed *tables, id string) (accountRecord, bool) {
	if staged != nil {
		if rec, ok := staged.accounts[id]; ok {
			return rec, true
		}
	}
	rec, ok := committed.accounts[id]
	return rec, ok
}

// Get retrieves an account by ID
func (r *AccountRepository) Get(_ context.Context, accountID string) (*entity.Account, error) {
	var rec accountRecord
	err := r.store.view(r.unit, func(staged, committed *tables) error {
		var ok bool
		if rec, ok = lookupAccount(staged, committed, accountID); !ok {
			return fmt.Errorf("%w: %s", errs.ErrAccountNotFound, accountID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity.RestoreAccount(accountID, rec.balance, rec.version, rec.createdAt, rec.updatedAt), nil
}

// Create opens a new account
func (r *AccountRepository) Create(_ context.Context, account *entity.Account) error {
	return r.store.write(r.unit, func(target, committed *tables) error {
		if _, exists := lookupAccount(target, committed, account.ID); exists {
			return fmt.Errorf("%w: account %s already exists", errs.ErrConstraintViolation, account.ID)
		}
		target.accounts[account.ID] = accountRecord{
			balance:   account.Balance(),
			version:   account.Version(),
			createdAt: account.CreatedAt,
			updatedAt: account.UpdatedAt,
		}
		return nil
	})
}

// Save persists the balance if the stored version equals expectedVersion
func (r *AccountRepository) Save(_ context.Context, account *entity.Account, expectedVersion int64) error {
	return r.store.write(r.unit, func(target, committed *tables) error {
		current, ok := lookupAccount(target, committed, account.ID)
		if !ok {
			return fmt.Errorf("%w: %s", errs.ErrAccountNotFound, account.ID)
		}
		if current.version != expectedVersion {
			return errs.NewConcurrentModificationError("account", account.ID, expectedVersion, current.version)
		}
		target.accounts[account.ID] = accountRecord{
			balance:   account.Balance(),
			version:   account.Version(),
			createdAt: current.createdAt,
			updatedAt: account.UpdatedAt,
		}
		return nil
	})
}
