package rtgs

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/rail"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/settlement"
)

func (s *Service) submitJob(transfer *entity.RTGSTransfer) settlement.Job {
	transferID := transfer.ID()
	return settlement.Job{
		Name:        JobSubmit,
		AggregateID: transfer.TransactionID(),
		Run: func(ctx context.Context) error {
			return s.submit(ctx, transferID)
		},
		OnFailure: func(ctx context.Context, cause error) {
			s.fail(ctx, transferID, jobFailureReason("submission", cause))
		},
	}
}

func (s *Service) enquireJob(transfer *entity.RTGSTransfer, attempt int) settlement.Job {
	transferID := transfer.ID()
	return settlement.Job{
		Name:        JobEnquire,
		AggregateID: transfer.TransactionID(),
		Delay:       s.config.EnquiryInterval,
		Run: func(ctx context.Context) error {
			return s.enquire(ctx, transferID, attempt)
		},
		OnFailure: func(ctx context.Context, cause error) {
			s.fail(ctx, transferID, jobFailureReason("enquiry", cause))
		},
	}
}

// submit hands a validated transfer to the rail
func (s *Service) submit(ctx context.Context, transferID string) error {
	transfer, err := s.beginProcessing(ctx, transferID)
	if err != nil || transfer == nil {
		return err
	}

	callCtx, cancel := s.timeProvider.WithTimeout(ctx, s.config.RailTimeout)
	defer cancel()
	response, err := s.connector.SubmitTransfer(callCtx, transfer)
	if err != nil {
		return err
	}
	if response.Outcome == rail.OutcomeTimeout {
		return fmt.Errorf("%w: transfer %s: %s", errs.ErrRailTimeout, transferID, response.Message)
	}

	transfer, err = s.resolve(ctx, transferID, nil, response)
	if err != nil {
		return err
	}
	if transfer.Status() == entity.RTGSPendingRBI {
		s.scheduleEnquiry(transfer, 1)
	}
	return nil
}

// beginProcessing moves the transfer and its Transaction to processing.
// It returns nil when the transfer is already past submission.
func (s *Service) beginProcessing(ctx context.Context, transferID string) (*entity.RTGSTransfer, error) {
	var transfer *entity.RTGSTransfer
	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		repo := s.uow.GetRTGSRepository(ctx)
		loaded, err := repo.Load(ctx, transferID)
		if err != nil {
			return err
		}

		switch loaded.Status() {
		case entity.RTGSProcessing:
			// an earlier attempt could not reach the rail
			transfer = loaded
			return nil
		case entity.RTGSValidated:
		default:
			s.logger.Debug("RTGS transfer already submitted", map[string]any{
				"transfer_id": transferID,
				"status":      loaded.Status(),
			})
			return nil
		}

		loadedVersion := loaded.Version()
		if err := loaded.BeginProcessing(loadedVersion, s.timeProvider); err != nil {
			return err
		}
		txRepo := s.uow.GetTransactionRepository(ctx)
		tx, err := txRepo.Load(ctx, loaded.TransactionID())
		if err != nil {
			return err
		}
		txVersion := tx.Version()
		if err := tx.BeginProcessing(txVersion, s.timeProvider); err != nil {
			return err
		}
		if err := txRepo.Save(ctx, tx, txVersion); err != nil {
			return err
		}
		if err := repo.Save(ctx, loaded, loadedVersion); err != nil {
			return err
		}
		transfer = loaded
		return nil
	})
	return transfer, err
}

// enquire polls the rail for a transfer awaiting RBI settlement
func (s *Service) enquire(ctx context.Context, transferID string, attempt int) error {
	transfer, err := s.Get(ctx, transferID)
	if err != nil {
		return err
	}
	if transfer.Status() != entity.RTGSPendingRBI {
		return nil
	}

	callCtx, cancel := s.timeProvider.WithTimeout(ctx, s.config.RailTimeout)
	defer cancel()
	response, err := s.connector.EnquireTransfer(callCtx, transfer.UTR())
	if err != nil {
		return err
	}

	if response.Outcome == rail.OutcomePending || response.Outcome == rail.OutcomeTimeout {
		if attempt >= s.config.MaxEnquiries {
			s.fail(ctx, transferID, fmt.Sprintf("no settlement confirmation after %d enquiries", attempt))
			return nil
		}
		s.scheduleEnquiry(transfer, attempt+1)
		return nil
	}

	_, err = s.resolve(ctx, transferID, nil, response)
	return err
}

func (s *Service) scheduleEnquiry(transfer *entity.RTGSTransfer, attempt int) {
	jobID, err := s.executor.Submit(s.enquireJob(transfer, attempt), s.config.Priority)
	if err != nil {
		// the transfer stays pending_rbi until RBI pushes its result
		s.logger.Warn("Failed to schedule RTGS enquiry", map[string]any{
			"transfer_id": transfer.ID(),
			"utr":         transfer.UTR(),
			"attempt":     attempt,
			"error":       err.Error(),
		})
		return
	}
	s.logger.Debug("RTGS enquiry scheduled", map[string]any{
		"transfer_id": transfer.ID(),
		"utr":         transfer.UTR(),
		"attempt":     attempt,
		"job_id":      jobID,
	})
}

// resolve applies a rail result to the transfer and its Transaction in one
// unit of work. A successful settlement posts the ledger legs. When
// expectedVersion is set the transfer must still be at that version.
func (s *Service) resolve(ctx context.Context, transferID string, expectedVersion *int64, response rail.Response) (*entity.RTGSTransfer, error) {
	var transfer *entity.RTGSTransfer
	var tx *entity.Transaction

	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		repo := s.uow.GetRTGSRepository(ctx)
		loaded, err := repo.Load(ctx, transferID)
		if err != nil {
			return err
		}
		loadedVersion := loaded.Version()
		if expectedVersion != nil && *expectedVersion != loadedVersion {
			return errs.NewConcurrentModificationError(entity.AggregateRTGS, transferID, *expectedVersion, loadedVersion)
		}

		// the rail answered a submission: record the UTR first
		if loaded.Status() == entity.RTGSProcessing && response.Outcome != rail.OutcomeFailure {
			if response.Reference == "" {
				return fmt.Errorf("%w: rail accepted transfer %s without a UTR", errs.ErrInvalidRequest, transferID)
			}
			if err := loaded.MarkPendingRBI(loaded.Version(), response.Reference, s.timeProvider); err != nil {
				return err
			}
		}

		txRepo := s.uow.GetTransactionRepository(ctx)
		loadedTx, err := txRepo.Load(ctx, loaded.TransactionID())
		if err != nil {
			return err
		}
		txVersion := loadedTx.Version()

		if err := s.applyOutcome(ctx, loaded, loadedTx, response); err != nil {
			return err
		}

		if loadedTx.Version() != txVersion {
			if err := txRepo.Save(ctx, loadedTx, txVersion); err != nil {
				return err
			}
		}
		if loaded.Version() != loadedVersion {
			if err := repo.Save(ctx, loaded, loadedVersion); err != nil {
				return err
			}
		}
		transfer, tx = loaded, loadedTx
		return nil
	})
	if err != nil {
		fields := errs.LogFieldsOf(err)
		fields["transfer_id"] = transferID
		fields["outcome"] = response.Outcome
		s.logger.Warn("Failed to apply RTGS result", fields)
		return nil, err
	}

	s.publish(ctx, transfer.PullEvents(), tx.PullEvents())
	s.logger.Info("RTGS transfer updated", map[string]any{
		"transfer_id":    transfer.ID(),
		"transaction_id": tx.ID(),
		"utr":            transfer.UTR(),
		"status":         transfer.Status(),
		"version":        transfer.Version(),
	})
	return transfer, nil
}

func (s *Service) applyOutcome(ctx context.Context, transfer *entity.RTGSTransfer, tx *entity.Transaction, response rail.Response) error {
	switch response.Outcome {
	case rail.OutcomePending:
		if transfer.Status() != entity.RTGSPendingRBI {
			return errs.NewTransitionError(entity.AggregateRTGS, transfer.ID(), string(transfer.Status()), "await_rbi", transfer.Status().IsTerminal())
		}
		return nil
	case rail.OutcomeSuccess:
		if err := transfer.Complete(transfer.Version(), s.timeProvider); err != nil {
			return err
		}
		return s.ledger.Post(ctx, tx, nil)
	case rail.OutcomeReturned:
		if err := transfer.MarkReturned(transfer.Version(), response.ReasonCode, s.timeProvider); err != nil {
			return err
		}
		return tx.Fail(tx.Version(), "returned by RBI: "+response.ReasonCode, s.timeProvider)
	case rail.OutcomeFailure:
		reason := failureReason(response)
		if err := transfer.Fail(transfer.Version(), reason, s.timeProvider); err != nil {
			return err
		}
		return tx.Fail(tx.Version(), reason, s.timeProvider)
	default:
		return fmt.Errorf("%w: unexpected rail outcome %q", errs.ErrInvalidRequest, response.Outcome)
	}
}

// fail drives a transfer and its Transaction to failed. Terminal transfers are left alone.
func (s *Service) fail(ctx context.Context, transferID, reason string) {
	var transfer *entity.RTGSTransfer
	var tx *entity.Transaction

	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		repo := s.uow.GetRTGSRepository(ctx)
		loaded, err := repo.Load(ctx, transferID)
		if err != nil {
			return err
		}
		if loaded.Status().IsTerminal() {
			return nil
		}
		loadedVersion := loaded.Version()
		if err := loaded.Fail(loadedVersion, reason, s.timeProvider); err != nil {
			return err
		}

		txRepo := s.uow.GetTransactionRepository(ctx)
		loadedTx, err := txRepo.Load(ctx, loaded.TransactionID())
		if err != nil {
			return err
		}
		if !loadedTx.Status().IsTerminal() {
			txVersion := loadedTx.Version()
			if err := loadedTx.Fail(txVersion, reason, s.timeProvider); err != nil {
				return err
			}
			if err := txRepo.Save(ctx, loadedTx, txVersion); err != nil {
				return err
			}
		}
		if err := repo.Save(ctx, loaded, loadedVersion); err != nil {
			return err
		}
		transfer, tx = loaded, loadedTx
		return nil
	})
	if err != nil {
		// the next enquiry or RBI callback gets another chance
		fields := errs.LogFieldsOf(err)
		fields["transfer_id"] = transferID
		fields["reason"] = reason
		s.logger.Error("Failed to mark RTGS transfer failed", fields)
		return
	}
	if transfer == nil {
		return
	}

	s.publish(ctx, transfer.PullEvents(), tx.PullEvents())
	s.logger.Warn("RTGS transfer failed", map[string]any{
		"transfer_id":    transferID,
		"transaction_id": tx.ID(),
		"reason":         reason,
	})
}

// jobFailureReason names why a job gave up. Rail timeouts are recorded as
// entity.ReasonTimeout.
func jobFailureReason(stage string, cause error) string {
	if errors.Is(cause, errs.ErrRailTimeout) || errors.Is(cause, context.DeadlineExceeded) {
		return entity.ReasonTimeout
	}
	return stage + " failed: " + cause.Error()
}

func failureReason(response rail.Response) string {
	switch {
	case response.ReasonCode != "" && response.Message != "":
		return response.ReasonCode + ": " + response.Message
	case response.ReasonCode != "":
		return response.ReasonCode
	case response.Message != "":
		return response.Message
	}
	return "rejected by rail"
}
