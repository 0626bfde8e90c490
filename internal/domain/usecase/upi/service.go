package upi

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/event"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/rail"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/settlement"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/transaction"
)

var _ usecase.UPIReader = (*Service)(nil)

// Job names
const (
	JobRequest = "upi.request"
	JobStatus  = "upi.status"
	JobExpire  = "upi.expire"
)

// Config holds the UPI rail settings
type Config struct {
	Policy   entity.UPIPolicy
	Priority int
	// RailTimeout bounds each switch call
	RailTimeout coreport.Duration
	// StatusPollInterval is the delay between status checks of a pending
	// collect request. Zero disables polling and leaves settlement to
	// ApplyNPCIResult and the expiry job.
	StatusPollInterval coreport.Duration
}

// InitiateRequest is a UPI collect instruction
type InitiateRequest struct {
	PayerAccountID string
	PayerVPA       string
	PayeeVPA       string
	Amount         entity.Money
	Note           string
	InitiatedBy    string
}

// InitiateResult is returned by Initiate
type InitiateResult struct {
	Payment     *entity.UPIPayment
	Transaction *entity.Transaction
	JobID       settlement.JobID
}

// Service runs UPI payments from collect request to settlement, expiry and refund
type Service struct {
	uow       persistence.UnitOfWork
	ledger    *transaction.Service
	executor  settlement.Submitter
	connector rail.UPIConnector
	publisher event.Publisher
	config    Config

	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new UPI service
func NewService(
	uow persistence.UnitOfWork,
	ledger *transaction.Service,
	executor settlement.Submitter,
	connector rail.UPIConnector,
	publisher event.Publisher,
	config Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	if config.RailTimeout <= 0 {
		config.RailTimeout = 10 * coreport.Second
	}
	return &Service{
		uow:          uow,
		ledger:       ledger,
		executor:     executor,
		connector:    connector,
		publisher:    publisher,
		config:       config,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"channel": "upi"}),
	}
}

// Initiate validates the instruction, stores the payment with its pending
// Transaction and schedules the collect request. Nothing is stored when
// validation fails.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	payment, tx, err := entity.InitiateUPIPayment(entity.NewUPIPaymentParams{
		PayerAccountID: req.PayerAccountID,
		PayerVPA:       req.PayerVPA,
		PayeeVPA:       req.PayeeVPA,
		Amount:         req.Amount,
		Note:           req.Note,
		InitiatedBy:    req.InitiatedBy,
	}, s.config.Policy, s.timeProvider)
	if err == nil {
		err = persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
			if err := s.ledger.Register(ctx, tx); err != nil {
				return err
			}
			return s.uow.GetUPIRepository(ctx).Create(ctx, payment)
		})
	}
	if err != nil {
		fields := errs.LogFieldsOf(err)
		fields["payer_vpa"] = req.PayerVPA
		fields["amount"] = req.Amount.String()
		s.logger.Warn("UPI payment rejected", fields)
		return nil, err
	}

	jobID, err := s.executor.Submit(s.requestJob(payment), s.config.Priority)
	if err != nil {
		s.logger.Error("Failed to schedule UPI collect request", map[string]any{
			"payment_id": payment.ID(),
			"error":      err.Error(),
		})
		if failErr := s.fail(ctx, payment.ID(), "collect request could not be scheduled: "+err.Error()); failErr != nil {
			return nil, errors.Join(err, failErr)
		}
		return nil, err
	}

	s.logger.Info("UPI payment initiated", map[string]any{
		"payment_id":     payment.ID(),
		"transaction_id": tx.ID(),
		"payee_vpa":      payment.PayeeVPA(),
		"amount":         payment.Amount().String(),
		"job_id":         jobID,
	})
	return &InitiateResult{Payment: payment, Transaction: tx, JobID: jobID}, nil
}

// Get loads a payment by id
func (s *Service) Get(ctx context.Context, paymentID string) (*entity.UPIPayment, error) {
	return s.uow.GetUPIRepository(ctx).Load(ctx, paymentID)
}

// ApplyNPCIResult records a result pushed by the switch for a payment at
// expectedVersion
func (s *Service) ApplyNPCIResult(ctx context.Context, paymentID string, expectedVersion int64, result rail.Response) (*entity.UPIPayment, error) {
	return s.resolve(ctx, paymentID, &expectedVersion, result)
}

// Cancel withdraws a pending collect request
func (s *Service) Cancel(ctx context.Context, paymentID string, expectedVersion int64, reason string) (*entity.UPIPayment, error) {
	return s.finish(ctx, paymentID, "cancel", func(_ context.Context, payment *entity.UPIPayment, tx *entity.Transaction) error {
		if err := payment.Cancel(expectedVersion, reason, s.timeProvider); err != nil {
			return err
		}
		return tx.Cancel(tx.Version(), reason, s.timeProvider)
	})
}

// Refund returns part or all of a successful payment to the payer. Refunds
// of one payment never add up to more than its amount.
func (s *Service) Refund(ctx context.Context, paymentID string, amount entity.Money, initiatedBy string) (*entity.Transaction, error) {
	payment, err := s.settled(ctx, paymentID, "refund")
	if err != nil {
		return nil, err
	}
	return s.ledger.Refund(ctx, payment.TransactionID(), amount, initiatedBy)
}

// Reverse compensates the whole settled Transaction of a successful payment
func (s *Service) Reverse(ctx context.Context, paymentID string, initiatedBy string) (*entity.Transaction, error) {
	payment, err := s.settled(ctx, paymentID, "reverse")
	if err != nil {
		return nil, err
	}
	tx, err := s.ledger.Get(ctx, payment.TransactionID())
	if err != nil {
		return nil, err
	}
	return s.ledger.Reverse(ctx, tx.ID(), tx.Version(), initiatedBy)
}

func (s *Service) settled(ctx context.Context, paymentID, action string) (*entity.UPIPayment, error) {
	payment, err := s.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status() != entity.UPISuccess {
		return nil, errs.NewTransitionError(entity.AggregateUPI, paymentID, string(payment.Status()), action, false)
	}
	return payment, nil
}

func (s *Service) publish(ctx context.Context, changes ...[]entity.StatusChange) {
	for _, batch := range changes {
		for _, change := range batch {
			s.publisher.Publish(ctx, change)
		}
	}
}
