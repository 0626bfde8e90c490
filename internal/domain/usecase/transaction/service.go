package transaction

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/event"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
)

// Service orchestrates the Transaction aggregate: every operation loads
// the aggregate, applies one versioned mutation and saves it under the
// version it was loaded at. Version conflicts are returned, never retried.
type Service struct {
	uow          persistence.UnitOfWork
	publisher    event.Publisher
	validator    *TransactionValidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.TransactionReader = (*Service)(nil)

// NewService creates a new ledger service
func NewService(
	uow persistence.UnitOfWork,
	publisher event.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		publisher:    publisher,
		validator:    NewTransactionValidator(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create validates the request and stores a new pending transaction
func (s *Service) Create(ctx context.Context, p entity.NewTransactionParams) (*entity.Transaction, error) {
	if err := s.validator.ValidateCreate(p); err != nil {
		s.logger.Warn("Rejected transaction request", errs.LogFieldsOf(err))
		return nil, err
	}

	tx, err := entity.NewTransaction(p, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		return s.Register(ctx, tx)
	})
	if err != nil {
		s.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": tx.ID(),
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction created", map[string]any{
		"transaction_id":   tx.ID(),
		"reference_number": tx.ReferenceNumber(),
		"type":             tx.Type(),
		"amount":           tx.Amount().String(),
	})
	return tx, nil
}

// Register stores a transaction built by a channel inside the caller's unit
// of work. Both accounts must exist in the transaction currency.
func (s *Service) Register(ctx context.Context, tx *entity.Transaction) error {
	accounts := s.uow.GetAccountRepository(ctx)
	for _, id := range []string{tx.FromAccountID(), tx.ToAccountID()} {
		account, err := accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if account.Currency() != tx.Amount().Currency() {
			return errs.NewValidationError(string(tx.Channel()), "currency", string(account.Currency()), errs.ErrCurrencyMismatch)
		}
	}
	return s.uow.GetTransactionRepository(ctx).Create(ctx, tx)
}

// Get loads a transaction by id
func (s *Service) Get(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	return s.uow.GetTransactionRepository(ctx).Load(ctx, transactionID)
}

// ListLinked returns the refunds and reversals of a transaction
func (s *Service) ListLinked(ctx context.Context, transactionID string) ([]*entity.Transaction, error) {
	return s.uow.GetTransactionRepository(ctx).ListLinked(ctx, transactionID)
}

// Authorize records the approver of a pending transaction
func (s *Service) Authorize(ctx context.Context, transactionID string, expectedVersion int64, approver string) (*entity.Transaction, error) {
	return s.mutate(ctx, transactionID, "authorize", func(_ context.Context, tx *entity.Transaction) error {
		return tx.Authorize(expectedVersion, approver)
	})
}

// BeginProcessing moves a pending transaction to processing
func (s *Service) BeginProcessing(ctx context.Context, transactionID string, expectedVersion int64) (*entity.Transaction, error) {
	return s.mutate(ctx, transactionID, "begin_processing", func(_ context.Context, tx *entity.Transaction) error {
		return tx.BeginProcessing(expectedVersion, s.timeProvider)
	})
}

// Fail moves a non-terminal transaction to failed
func (s *Service) Fail(ctx context.Context, transactionID string, expectedVersion int64, reason string) (*entity.Transaction, error) {
	return s.mutate(ctx, transactionID, "fail", func(_ context.Context, tx *entity.Transaction) error {
		return tx.Fail(expectedVersion, reason, s.timeProvider)
	})
}

// Cancel moves a pending transaction to cancelled
func (s *Service) Cancel(ctx context.Context, transactionID string, expectedVersion int64, reason string) (*entity.Transaction, error) {
	return s.mutate(ctx, transactionID, "cancel", func(_ context.Context, tx *entity.Transaction) error {
		return tx.Cancel(expectedVersion, reason, s.timeProvider)
	})
}

// Settle posts the legs of a processing transaction and completes it. With
// no postings the full amount moves from the source to the destination.
func (s *Service) Settle(ctx context.Context, transactionID string, expectedVersion int64, postings []Posting) (*entity.Transaction, error) {
	return s.mutate(ctx, transactionID, "settle", func(ctx context.Context, tx *entity.Transaction) error {
		if tx.Version() != expectedVersion {
			return errs.NewConcurrentModificationError(entity.AggregateTransaction, tx.ID(), expectedVersion, tx.Version())
		}
		return s.Post(ctx, tx, postings)
	})
}

// Post builds legs from current balances, completes tx and moves the
// account balances. It runs inside the caller's unit of work and leaves
// saving tx to the caller.
func (s *Service) Post(ctx context.Context, tx *entity.Transaction, postings []Posting) error {
	if tx.Status() != entity.StatusProcessing {
		return errs.NewTransitionError(entity.AggregateTransaction, tx.ID(), string(tx.Status()), "complete", tx.Status().IsTerminal())
	}
	if len(postings) == 0 {
		postings = defaultPostings(tx)
	}
	if err := s.validator.ValidatePostings(tx, postings); err != nil {
		return err
	}

	accounts := newAccountSet(s.uow.GetAccountRepository(ctx), s.timeProvider)
	for _, posting := range postings {
		if err := accounts.post(ctx, tx, posting); err != nil {
			return err
		}
	}
	if err := tx.Complete(tx.Version(), s.timeProvider); err != nil {
		return err
	}
	return accounts.save(ctx)
}

// Reverse compensates a completed transaction with a settled reversal and
// marks the original reversed. It returns the reversal. A transaction with
// completed refunds cannot be reversed.
func (s *Service) Reverse(ctx context.Context, transactionID string, expectedVersion int64, initiatedBy string) (*entity.Transaction, error) {
	var reversal *entity.Transaction
	original, err := s.mutate(ctx, transactionID, "reverse", func(ctx context.Context, tx *entity.Transaction) error {
		if err := s.checkReversible(ctx, tx); err != nil {
			return err
		}
		accounts := newAccountSet(s.uow.GetAccountRepository(ctx), s.timeProvider)
		var err error
		reversal, err = tx.Reverse(expectedVersion, initiatedBy, accounts.balanceOf(ctx), s.timeProvider)
		if err != nil {
			return err
		}
		return s.settleLinked(ctx, accounts, reversal)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, reversal.PullEvents())
	s.logger.Info("Transaction reversed", map[string]any{
		"transaction_id": original.ID(),
		"reversal_id":    reversal.ID(),
	})
	return reversal, nil
}

// Refund settles a partial or full refund of a completed transaction.
// Refunds never add up to more than the original amount.
func (s *Service) Refund(ctx context.Context, transactionID string, amount entity.Money, initiatedBy string) (*entity.Transaction, error) {
	var refund *entity.Transaction
	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		repo := s.uow.GetTransactionRepository(ctx)
		original, err := repo.Load(ctx, transactionID)
		if err != nil {
			return err
		}
		if err := s.checkRefundable(ctx, repo, original, amount); err != nil {
			return err
		}

		accounts := newAccountSet(s.uow.GetAccountRepository(ctx), s.timeProvider)
		refund, err = entity.NewRefund(original, amount, initiatedBy, accounts.balanceOf(ctx), s.timeProvider)
		if err != nil {
			return err
		}
		return s.settleLinked(ctx, accounts, refund)
	})
	if err != nil {
		s.logger.Warn("Refund rejected", map[string]any{
			"transaction_id": transactionID,
			"amount":         amount.String(),
			"error":          err.Error(),
		})
		return nil, err
	}

	s.publish(ctx, refund.PullEvents())
	s.logger.Info("Transaction refunded", map[string]any{
		"transaction_id": transactionID,
		"refund_id":      refund.ID(),
		"amount":         amount.String(),
	})
	return refund, nil
}

// checkRefundable rejects a refund that would push the refunded total past the original amount
func (s *Service) checkRefundable(ctx context.Context, repo persistence.TransactionRepository, original *entity.Transaction, amount entity.Money) error {
	linked, err := repo.ListLinked(ctx, original.ID())
	if err != nil {
		return err
	}

	total := amount
	for _, tx := range linked {
		if tx.Type() != entity.TypeRefund || tx.Status() != entity.StatusCompleted {
			continue
		}
		if total, err = total.Add(tx.Amount()); err != nil {
			return err
		}
	}
	cmp, err := total.Compare(original.Amount())
	if err != nil {
		return err
	}
	if cmp > 0 {
		return fmt.Errorf("%w: refunds would total %s of %s", errs.ErrRefundExceedsAmount, total, original.Amount())
	}
	return nil
}

// checkReversible rejects reversing a transaction that already paid out a refund
func (s *Service) checkReversible(ctx context.Context, tx *entity.Transaction) error {
	linked, err := s.uow.GetTransactionRepository(ctx).ListLinked(ctx, tx.ID())
	if err != nil {
		return err
	}
	for _, l := range linked {
		if l.Type() == entity.TypeRefund && l.Status() == entity.StatusCompleted {
			return fmt.Errorf("%w: %s refunded by %s", errs.ErrAlreadyRefunded, tx.ID(), l.ID())
		}
	}
	return nil
}

// settleLinked completes a ledger-built refund or reversal whose legs
// already exist, applies them and stores it
func (s *Service) settleLinked(ctx context.Context, accounts *accountSet, tx *entity.Transaction) error {
	if err := tx.BeginProcessing(tx.Version(), s.timeProvider); err != nil {
		return err
	}
	if err := tx.Complete(tx.Version(), s.timeProvider); err != nil {
		return err
	}
	if err := accounts.apply(ctx, tx.Legs()); err != nil {
		return err
	}
	if err := accounts.save(ctx); err != nil {
		return err
	}
	return s.uow.GetTransactionRepository(ctx).Create(ctx, tx)
}

// mutate runs fn against a freshly loaded transaction in one unit of work,
// saves it under the loaded version and publishes its status changes. fn
// receives the unit's context and must use it for every repository call.
func (s *Service) mutate(ctx context.Context, transactionID, operation string, fn func(ctx context.Context, tx *entity.Transaction) error) (*entity.Transaction, error) {
	var tx *entity.Transaction
	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		repo := s.uow.GetTransactionRepository(ctx)
		loaded, err := repo.Load(ctx, transactionID)
		if err != nil {
			return err
		}
		loadedVersion := loaded.Version()
		if err := fn(ctx, loaded); err != nil {
			return err
		}
		if err := repo.Save(ctx, loaded, loadedVersion); err != nil {
			return err
		}
		tx = loaded
		return nil
	})
	if err != nil {
		fields := errs.LogFieldsOf(err)
		fields["transaction_id"] = transactionID
		fields["operation"] = operation
		s.logger.Warn("Transaction operation rejected", fields)
		return nil, err
	}

	s.publish(ctx, tx.PullEvents())
	s.logger.Info("Transaction updated", map[string]any{
		"transaction_id": tx.ID(),
		"operation":      operation,
		"status":         tx.Status(),
		"version":        tx.Version(),
	})
	return tx, nil
}

func (s *Service) publish(ctx context.Context, changes []entity.StatusChange) {
	for _, change := range changes {
		s.publisher.Publish(ctx, change)
	}
}
