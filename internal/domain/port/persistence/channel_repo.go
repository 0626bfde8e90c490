package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// RTGSTransferRepository stores RTGS envelopes
type RTGSTransferRepository interface {
	// Create saves a new transfer
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If the customer already used the idempotency key
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transfer *entity.RTGSTransfer) error

	// Load retrieves a transfer by ID
	//
	// Possible errors:
	// - ErrTransferNotFound: If the transfer doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Load(ctx context.Context, transferID string) (*entity.RTGSTransfer, error)

	// Save persists the transfer if the stored version equals expectedVersion
	//
	// Possible errors:
	// - ErrConcurrentModification: If the stored version moved on
	// - ErrTransferNotFound: If the transfer doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Save(ctx context.Context, transfer *entity.RTGSTransfer, expectedVersion int64) error

	// FindByIdempotencyKey returns the transfer a customer created with key
	//
	// Possible errors:
	// - ErrTransferNotFound: If no transfer used the key
	// - ErrDatabaseConnection: If database connection fails
	FindByIdempotencyKey(ctx context.Context, customerID, key string) (*entity.RTGSTransfer, error)

	// SumDailyAmount totals the customer's transfers created on day (UTC)
	// that have not failed or been returned
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	SumDailyAmount(ctx context.Context, customerID string, day time.Time, currency entity.Currency) (entity.Money, error)
}

// UPIPaymentRepository stores UPI envelopes
type UPIPaymentRepository interface {
	// Create saves a new payment
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, payment *entity.UPIPayment) error

	// Load retrieves a payment by ID
	//
	// Possible errors:
	// - ErrPaymentNotFound: If the payment doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Load(ctx context.Context, paymentID string) (*entity.UPIPayment, error)

	// Save persists the payment if the stored version equals expectedVersion
	//
	// Possible errors:
	// - ErrConcurrentModification: If the stored version moved on
	// - ErrPaymentNotFound: If the payment doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Save(ctx context.Context, payment *entity.UPIPayment, expectedVersion int64) error
}
