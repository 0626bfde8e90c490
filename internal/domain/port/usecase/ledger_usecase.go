package usecase

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/settlement"
)

// TransactionReader exposes ledger transactions to the operations API
type TransactionReader interface {
	// Get loads a transaction by id
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has that id
	Get(ctx context.Context, transactionID string) (*entity.Transaction, error)

	// ListLinked returns the refunds and reversals of a transaction, oldest first
	ListLinked(ctx context.Context, transactionID string) ([]*entity.Transaction, error)
}

// RTGSReader exposes RTGS transfers
type RTGSReader interface {
	// Possible errors:
	// - ErrTransferNotFound: If no transfer has that id
	Get(ctx context.Context, transferID string) (*entity.RTGSTransfer, error)
}

// UPIReader exposes UPI payments
type UPIReader interface {
	// Possible errors:
	// - ErrPaymentNotFound: If no payment has that id
	Get(ctx context.Context, paymentID string) (*entity.UPIPayment, error)
}

// JobMonitor inspects and cancels settlement jobs
type JobMonitor interface {
	Info(id settlement.JobID) (settlement.JobInfo, error)

	// Cancel removes a job that has not started yet
	Cancel(id settlement.JobID) (bool, error)

	QueueLength() int
}

// HealthChecker reports whether the storage backend answers
type HealthChecker interface {
	Ping(ctx context.Context) error
}
