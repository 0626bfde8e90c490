package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetRTGSRepository returns an RTGS repository bound to the current transaction
	GetRTGSRepository(ctx context.Context) RTGSTransferRepository

	// GetUPIRepository returns a UPI repository bound to the current transaction
	GetUPIRepository(ctx context.Context) UPIPaymentRepository
}

// WithinTransaction runs fn in a unit of work, committing when fn returns
// nil and rolling back otherwise
func WithinTransaction(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(txCtx)
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}
	if err := uow.Commit(txCtx); err != nil {
		return err
	}
	committed = true
	return nil
}
