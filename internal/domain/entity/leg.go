package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/google/uuid"
)

// LegType is the side of a double-entry movement
type LegType string

// Leg types
const (
	LegDebit  LegType = "debit"
	LegCredit LegType = "credit"
)

// Opposite returns the other side of the entry
func (t LegType) Opposite() LegType {
	if t == LegDebit {
		return LegCredit
	}
	return LegDebit
}

// TransactionLeg is one debit or credit movement against an account.
// Legs are values: once appended to a Transaction they are never edited.
type TransactionLeg struct {
	ID            string
	AccountID     string
	Type          LegType
	Amount        Money
	BalanceBefore Money
	BalanceAfter  Money
	Description   string
}

// NewTransactionLeg builds a leg and derives BalanceAfter from BalanceBefore
func NewTransactionLeg(accountID string, legType LegType, amount, balanceBefore Money, description string) (TransactionLeg, error) {
	if strings.TrimSpace(accountID) == "" {
		return TransactionLeg{}, fmt.Errorf("%w: account id is required", errs.ErrInvalidLeg)
	}
	if !amount.IsPositive() {
		return TransactionLeg{}, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidLeg)
	}

	var after Money
	var err error
	switch legType {
	case LegDebit:
		after, err = balanceBefore.Subtract(amount)
	case LegCredit:
		after, err = balanceBefore.Add(amount)
	default:
		return TransactionLeg{}, fmt.Errorf("%w: unknown leg type %q", errs.ErrInvalidLeg, legType)
	}
	if err != nil {
		return TransactionLeg{}, err
	}

	return TransactionLeg{
		ID:            uuid.NewString(),
		AccountID:     accountID,
		Type:          legType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  after,
		Description:   description,
	}, nil
}

// Validate checks balance_after = balance_before ± amount for the leg type
func (l TransactionLeg) Validate() error {
	if l.ID == "" || strings.TrimSpace(l.AccountID) == "" {
		return fmt.Errorf("%w: leg id and account id are required", errs.ErrInvalidLeg)
	}
	if !l.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", errs.ErrInvalidLeg)
	}

	var expected Money
	var err error
	switch l.Type {
	case LegDebit:
		expected, err = l.BalanceBefore.Subtract(l.Amount)
	case LegCredit:
		expected, err = l.BalanceBefore.Add(l.Amount)
	default:
		return fmt.Errorf("%w: unknown leg type %q", errs.ErrInvalidLeg, l.Type)
	}
	if err != nil {
		return err
	}
	if !expected.Equal(l.BalanceAfter) {
		return fmt.Errorf("%w: balance after %s does not match %s %s on %s",
			errs.ErrInvalidLeg, l.BalanceAfter, l.Type, l.Amount, l.BalanceBefore)
	}
	return nil
}

// Mirror returns the compensating leg for the same account and amount,
// starting from the account's current balance.
func (l TransactionLeg) Mirror(balanceBefore Money, description string) (TransactionLeg, error) {
	return NewTransactionLeg(l.AccountID, l.Type.Opposite(), l.Amount, balanceBefore, description)
}
