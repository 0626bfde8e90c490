package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// AccountRepository stores ledger accounts
type AccountRepository interface {
	// Get retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Get(ctx context.Context, accountID string) (*entity.Account, error)

	// Create opens a new account
	//
	// Possible errors:
	// - ErrConstraintViolation: If an account with the same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, account *entity.Account) error

	// Save persists the balance if the stored version equals expectedVersion
	//
	// Possible errors:
	// - ErrConcurrentModification: If the stored version moved on
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Save(ctx context.Context, account *entity.Account, expectedVersion int64) error
}
