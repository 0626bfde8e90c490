package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// Account is a ledger account whose balance moves only through legs
type Account struct {
	ID        string    // Unique identifier for the account
	balance   Money     // Current balance (private, changed by ApplyLeg)
	version   int64     // Optimistic concurrency version
	CreatedAt time.Time // When the account was opened
	UpdatedAt time.Time // When a leg was last applied
}

// NewAccount opens an account with the given balance
func NewAccount(id string, opening Money, timeProvider coreport.TimeProvider) (*Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: account id is required", errs.ErrInvalidRequest)
	}
	now := timeProvider.Now()
	return &Account{ID: id, balance: opening, CreatedAt: now, UpdatedAt: now}, nil
}

// RestoreAccount rebuilds an account from persisted state
func RestoreAccount(id string, balance Money, version int64, createdAt, updatedAt time.Time) *Account {
	return &Account{ID: id, balance: balance, version: version, CreatedAt: createdAt, UpdatedAt: updatedAt}
}

// Balance returns the current balance
func (a *Account) Balance() Money {
	return a.balance
}

// Currency returns the account currency
func (a *Account) Currency() Currency {
	return a.balance.Currency()
}

// Version returns the optimistic concurrency version
func (a *Account) Version() int64 {
	return a.version
}

// ApplyLeg moves the balance to the leg's BalanceAfter. The leg must have
// been built from the balance the account holds now.
func (a *Account) ApplyLeg(leg TransactionLeg, timeProvider coreport.TimeProvider) error {
	if leg.AccountID != a.ID {
		return fmt.Errorf("%w: leg for account %s applied to %s", errs.ErrInvalidLeg, leg.AccountID, a.ID)
	}
	if err := leg.Validate(); err != nil {
		return err
	}
	if !leg.BalanceBefore.Equal(a.balance) {
		return fmt.Errorf("%w: account %s balance is %s, leg expected %s",
			errs.ErrConcurrentModification, a.ID, a.balance, leg.BalanceBefore)
	}

	a.balance = leg.BalanceAfter
	a.version++
	a.UpdatedAt = timeProvider.Now()
	return nil
}
