package upi

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

func (s *Service) requestJob(payment *entity.UPIPayment) settlement.Job {
	paymentID := payment.ID()
	return settlement.Job{
		Name:        JobRequest,
		AggregateID: payment.TransactionID(),
		Run: func(ctx context.Context) error {
			return s.request(ctx, paymentID)
		},
		OnFailure: func(ctx context.Context, cause error) {
			reason := "collect request failed: " + cause.Error()
			if errors.Is(cause, errs.ErrRailTimeout) || errors.Is(cause, context.DeadlineExceeded) {
				reason = entity.ReasonTimeout
			}
			if err := s.fail(ctx, paymentID, reason); err != nil {
				s.logger.Error("UPI payment left open after collect request failure", map[string]any{
					"payment_id": paymentID,
					"cause":      cause.Error(),
					"error":      err.Error(),
				})
			}
		},
	}
}

func (s *Service) statusJob(payment *entity.UPIPayment) settlement.Job {
	paymentID := payment.ID()
	return settlement.Job{
		Name:        JobStatus,
		AggregateID: payment.TransactionID(),
		Delay:       s.config.StatusPollInterval,
		Run: func(ctx context.Context) error {
			return s.poll(ctx, paymentID)
		},
		OnFailure: func(_ context.Context, cause error) {
			// expiry still closes the payment
			s.logger.Warn("UPI status check abandoned", map[string]any{
				"payment_id": paymentID,
				"error":      cause.Error(),
			})
		},
	}
}

func (s *Service) expireJob(payment *entity.UPIPayment) settlement.Job {
	paymentID := payment.ID()
	return settlement.Job{
		Name:        JobExpire,
		AggregateID: payment.TransactionID(),
		Delay:       s.config.Policy.PendingTimeout,
		Run: func(ctx context.Context) error {
			return s.expire(ctx, paymentID)
		},
		OnFailure: func(_ context.Context, cause error) {
			s.logger.Error("Failed to expire UPI payment", map[string]any{
				"payment_id": paymentID,
				"error":      cause.Error(),
			})
		},
	}
}

// request raises the collect request with the switch
func (s *Service) request(ctx context.Context, paymentID string) error {
	payment, err := s.Get(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status() != entity.UPIInitiated {
		return nil
	}

	callCtx, cancel := s.timeProvider.WithTimeout(ctx, s.config.RailTimeout)
	defer cancel()
	response, err := s.connector.RequestPayment(callCtx, payment)
	if err != nil {
		return err
	}
	if response.Outcome == rail.OutcomeTimeout {
		return fmt.Errorf("%w: payment %s: %s", errs.ErrRailTimeout, paymentID, response.Message)
	}

	_, err = s.resolve(ctx, paymentID, nil, response)
	return err
}

// poll checks a pending collect request until it settles or expires
func (s *Service) poll(ctx context.Context, paymentID string) error {
	payment, err := s.Get(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status() != entity.UPIPending {
		return nil
	}
	if expiresAt := payment.ExpiresAt(); expiresAt != nil && !s.timeProvider.Now().Before(*expiresAt) {
		return nil
	}

	callCtx, cancel := s.timeProvider.WithTimeout(ctx, s.config.RailTimeout)
	defer cancel()
	response, err := s.connector.CheckStatus(callCtx, payment.NPCIReference())
	if err != nil {
		return err
	}
	if response.Outcome == rail.OutcomePending || response.Outcome == rail.OutcomeTimeout {
		s.schedule(s.statusJob(payment), payment)
		return nil
	}

	_, err = s.resolve(ctx, paymentID, nil, response)
	return err
}

// expire closes a collect request nobody approved in time
func (s *Service) expire(ctx context.Context, paymentID string) error {
	_, err := s.finish(ctx, paymentID, "expire", func(_ context.Context, payment *entity.UPIPayment, tx *entity.Transaction) error {
		if payment.Status() != entity.UPIPending {
			return nil
		}
		if err := payment.Expire(payment.Version(), s.timeProvider); err != nil {
			return err
		}
		return tx.Fail(tx.Version(), "collect request expired", s.timeProvider)
	})
	return err
}

// resolve applies a switch result. A payment that becomes pending gets its
// expiry scheduled and, when enabled, its first status check.
func (s *Service) resolve(ctx context.Context, paymentID string, expectedVersion *int64, response rail.Response) (*entity.UPIPayment, error) {
	becamePending := false
	payment, err := s.finish(ctx, paymentID, "apply_result", func(ctx context.Context, payment *entity.UPIPayment, tx *entity.Transaction) error {
		if expectedVersion != nil && *expectedVersion != payment.Version() {
			return errs.NewConcurrentModificationError(entity.AggregateUPI, paymentID, *expectedVersion, payment.Version())
		}

		if payment.Status() == entity.UPIInitiated && response.Outcome != rail.OutcomeFailure {
			if response.Reference == "" {
				return fmt.Errorf("%w: switch accepted payment %s without a reference", errs.ErrInvalidRequest, paymentID)
			}
			if err := payment.MarkPending(payment.Version(), response.Reference, s.config.Policy.PendingTimeout, s.timeProvider); err != nil {
				return err
			}
			becamePending = true
		}

		switch response.Outcome {
		case rail.OutcomePending:
			if payment.Status() != entity.UPIPending {
				return errs.NewTransitionError(entity.AggregateUPI, paymentID, string(payment.Status()), "await approval", payment.Status().IsTerminal())
			}
			return nil
		case rail.OutcomeSuccess:
			if err := payment.MarkSuccess(payment.Version(), response.Reference, s.timeProvider); err != nil {
				return err
			}
			if err := tx.BeginProcessing(tx.Version(), s.timeProvider); err != nil {
				return err
			}
			return s.ledger.Post(ctx, tx, nil)
		case rail.OutcomeFailure:
			reason := failureReason(response)
			if err := payment.Fail(payment.Version(), reason, s.timeProvider); err != nil {
				return err
			}
			return tx.Fail(tx.Version(), reason, s.timeProvider)
		default:
			return fmt.Errorf("%w: unexpected switch outcome %q", errs.ErrInvalidRequest, response.Outcome)
		}
	})
	if err != nil {
		return nil, err
	}

	if becamePending && payment.Status() == entity.UPIPending {
		s.schedule(s.expireJob(payment), payment)
		if s.config.StatusPollInterval > 0 {
			s.schedule(s.statusJob(payment), payment)
		}
	}
	return payment, nil
}

func (s *Service) schedule(job settlement.Job, payment *entity.UPIPayment) {
	jobID, err := s.executor.Submit(job, s.config.Priority)
	if err != nil {
		s.logger.Warn("Failed to schedule UPI job", map[string]any{
			"payment_id": payment.ID(),
			"job_name":   job.Name,
			"error":      err.Error(),
		})
		return
	}
	s.logger.Debug("UPI job scheduled", map[string]any{
		"payment_id": payment.ID(),
		"job_name":   job.Name,
		"job_id":     jobID,
		"delay":      job.Delay.Std().String(),
	})
}

// fail drives a payment and its Transaction to failed. Terminal payments are left alone.
func (s *Service) fail(ctx context.Context, paymentID, reason string) error {
	_, err := s.finish(ctx, paymentID, "fail", func(_ context.Context, payment *entity.UPIPayment, tx *entity.Transaction) error {
		if payment.Status().IsTerminal() {
			return nil
		}
		if err := payment.Fail(payment.Version(), reason, s.timeProvider); err != nil {
			return err
		}
		if tx.Status().IsTerminal() {
			return nil
		}
		return tx.Fail(tx.Version(), reason, s.timeProvider)
	})
	return err
}

// finish loads a payment with its Transaction in one unit of work, runs fn
// and saves whatever fn changed under the loaded versions
func (s *Service) finish(
	ctx context.Context,
	paymentID, operation string,
	fn func(ctx context.Context, payment *entity.UPIPayment, tx *entity.Transaction) error,
) (*entity.UPIPayment, error) {
	var payment *entity.UPIPayment
	var tx *entity.Transaction
	changed := false

	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		repo := s.uow.GetUPIRepository(ctx)
		loaded, err := repo.Load(ctx, paymentID)
		if err != nil {
			return err
		}
		loadedVersion := loaded.Version()

		txRepo := s.uow.GetTransactionRepository(ctx)
		loadedTx, err := txRepo.Load(ctx, loaded.TransactionID())
		if err != nil {
			return err
		}
		txVersion := loadedTx.Version()

		if err := fn(ctx, loaded, loadedTx); err != nil {
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
			changed = true
		}
		payment, tx = loaded, loadedTx
		return nil
	})
	if err != nil {
		fields := errs.LogFieldsOf(err)
		fields["payment_id"] = paymentID
		fields["operation"] = operation
		s.logger.Warn("UPI payment operation rejected", fields)
		return nil, err
	}

	s.publish(ctx, payment.PullEvents(), tx.PullEvents())
	if changed {
		s.logger.Info("UPI payment updated", map[string]any{
			"payment_id":     payment.ID(),
			"transaction_id": tx.ID(),
			"operation":      operation,
			"status":         payment.Status(),
			"version":        payment.Version(),
		})
	}
	return payment, nil
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
	return "declined by switch"
}
