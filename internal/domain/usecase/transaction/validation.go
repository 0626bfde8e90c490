package transaction

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// TransactionValidator provides validation for ledger requests before any
// aggregate is built
type TransactionValidator struct{}

// NewTransactionValidator creates a new TransactionValidator
func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{}
}

// ValidateCreate validates the parameters of a new transaction
func (v *TransactionValidator) ValidateCreate(p entity.NewTransactionParams) error {
	// Validate initiator
	if strings.TrimSpace(p.InitiatedBy) == "" {
		return errs.NewValidationError(string(p.Channel), "initiated_by", "", errs.ErrInvalidRequest)
	}

	// Validate amount
	if !p.Amount.IsPositive() {
		return errs.NewValidationError(string(p.Channel), "amount", p.Amount.String(), errs.ErrInvalidAmount)
	}

	// Validate accounts
	if err := v.validateAccounts(p.FromAccountID, p.ToAccountID); err != nil {
		return errs.NewValidationError(string(p.Channel), "account", p.FromAccountID+"->"+p.ToAccountID, err)
	}

	// Refunds and reversals are only created by the ledger itself
	if p.Type == entity.TypeRefund || p.Type == entity.TypeReversal {
		return errs.NewValidationError(string(p.Channel), "type", string(p.Type), errs.ErrInvalidRequest)
	}

	if p.Priority < 0 {
		return errs.NewValidationError(string(p.Channel), "priority", fmt.Sprint(p.Priority), errs.ErrInvalidRequest)
	}
	return nil
}

// ValidatePostings checks caller supplied postings against the transaction
func (v *TransactionValidator) ValidatePostings(tx *entity.Transaction, postings []Posting) error {
	for i, posting := range postings {
		field := fmt.Sprintf("postings[%d]", i)
		if strings.TrimSpace(posting.AccountID) == "" {
			return errs.NewValidationError(string(tx.Channel()), field, "", errs.ErrInvalidLeg)
		}
		if posting.Type != entity.LegDebit && posting.Type != entity.LegCredit {
			return errs.NewValidationError(string(tx.Channel()), field, string(posting.Type), errs.ErrInvalidLeg)
		}
		if !posting.Amount.IsPositive() {
			return errs.NewValidationError(string(tx.Channel()), field, posting.Amount.String(), errs.ErrInvalidAmount)
		}
		if posting.Amount.Currency() != tx.Amount().Currency() {
			return errs.NewValidationError(string(tx.Channel()), field, posting.Amount.String(), errs.ErrCurrencyMismatch)
		}
	}
	return nil
}

// validateAccounts checks that both sides are present and distinct
func (v *TransactionValidator) validateAccounts(from, to string) error {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: both accounts are required", errs.ErrInvalidAccount)
	}
	if from == to {
		return fmt.Errorf("%w: source and destination are the same account", errs.ErrInvalidAccount)
	}
	return nil
}
