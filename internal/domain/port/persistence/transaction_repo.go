package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// TransactionRepository stores Transaction aggregates
type TransactionRepository interface {
	// Create saves a new transaction together with its legs
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a transaction with the same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Load retrieves a transaction by ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Load(ctx context.Context, transactionID string) (*entity.Transaction, error)

	// Save persists the transaction only if the stored version still equals
	// expectedVersion, the version the caller loaded
	//
	// Possible errors:
	// - ErrConcurrentModification: If the stored version moved on
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Save(ctx context.Context, transaction *entity.Transaction, expectedVersion int64) error

	// ListLinked returns refunds and reversals that reference the original transaction
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListLinked(ctx context.Context, originalTransactionID string) ([]*entity.Transaction, error)
}
