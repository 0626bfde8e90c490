package rtgs

import (
	"context"
	"errors"
	"strings"

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

var _ usecase.RTGSReader = (*Service)(nil)

// Job names
const (
	JobSubmit  = "rtgs.submit"
	JobEnquire = "rtgs.enquire"
)

// Config holds the RTGS rail settings
type Config struct {
	Policy entity.RTGSPolicy
	// Priority of RTGS settlement jobs on the executor
	Priority int
	// RailTimeout bounds each gateway call
	RailTimeout coreport.Duration
	// EnquiryInterval is the delay between status enquiries for a pending UTR
	EnquiryInterval coreport.Duration
	// MaxEnquiries bounds how long a transfer may stay pending_rbi
	MaxEnquiries int
}

// InitiateRequest is a customer's RTGS transfer instruction
type InitiateRequest struct {
	CustomerID         string
	SenderAccountID    string
	BeneficiaryAccount string
	BeneficiaryIFSC    string
	BeneficiaryName    string
	Amount             entity.Money
	Remarks            string
	IdempotencyKey     string
	InitiatedBy        string
}

// InitiateResult is returned by Initiate
type InitiateResult struct {
	Transfer    *entity.RTGSTransfer
	Transaction *entity.Transaction
	// JobID is empty when the request replayed an earlier transfer
	JobID    settlement.JobID
	Replayed bool
}

// Service runs RTGS transfers from instruction to RBI settlement
type Service struct {
	uow       persistence.UnitOfWork
	ledger    *transaction.Service
	executor  settlement.Submitter
	connector rail.RTGSConnector
	customers *transaction.TransactionManager
	publisher event.Publisher
	config    Config

	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new RTGS service
func NewService(
	uow persistence.UnitOfWork,
	ledger *transaction.Service,
	executor settlement.Submitter,
	connector rail.RTGSConnector,
	customers *transaction.TransactionManager,
	publisher event.Publisher,
	config Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	if config.MaxEnquiries <= 0 {
		config.MaxEnquiries = 1
	}
	if config.RailTimeout <= 0 {
		config.RailTimeout = 30 * coreport.Second
	}
	return &Service{
		uow:          uow,
		ledger:       ledger,
		executor:     executor,
		connector:    connector,
		customers:    customers,
		publisher:    publisher,
		config:       config,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"channel": "rtgs"}),
	}
}

// Initiate validates the instruction, creates the transfer with its pending
// Transaction and schedules submission to the rail. A repeated idempotency
// key returns the transfer created the first time. Requests of one customer
// are serialized so the daily limit check sees every earlier transfer.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, errs.NewValidationError("rtgs", "customer_id", "", errs.ErrInvalidRequest)
	}

	var result *InitiateResult
	err := s.customers.Enqueue(ctx, "rtgs:"+req.CustomerID, func(ctx context.Context) error {
		replay, err := s.replay(ctx, req)
		if err != nil || replay != nil {
			result = replay
			return err
		}
		result, err = s.create(ctx, req)
		return err
	})
	if err != nil {
		fields := errs.LogFieldsOf(err)
		fields["customer_id"] = req.CustomerID
		fields["amount"] = req.Amount.String()
		s.logger.Warn("RTGS transfer rejected", fields)
		return nil, err
	}
	if result.Replayed {
		return result, nil
	}

	jobID, err := s.executor.Submit(s.submitJob(result.Transfer), s.config.Priority)
	if err != nil {
		s.logger.Error("Failed to schedule RTGS submission", map[string]any{
			"transfer_id": result.Transfer.ID(),
			"error":       err.Error(),
		})
		s.fail(ctx, result.Transfer.ID(), "settlement could not be scheduled: "+err.Error())
		return nil, err
	}
	result.JobID = jobID

	s.logger.Info("RTGS transfer initiated", map[string]any{
		"transfer_id":    result.Transfer.ID(),
		"transaction_id": result.Transaction.ID(),
		"customer_id":    req.CustomerID,
		"amount":         req.Amount.String(),
		"job_id":         jobID,
	})
	return result, nil
}

// replay returns the transfer an earlier request created with the same key
func (s *Service) replay(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if req.IdempotencyKey == "" {
		return nil, nil
	}

	transfer, err := s.uow.GetRTGSRepository(ctx).FindByIdempotencyKey(ctx, req.CustomerID, req.IdempotencyKey)
	if errors.Is(err, errs.ErrTransferNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tx, err := s.ledger.Get(ctx, transfer.TransactionID())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Idempotent RTGS request replayed", map[string]any{
		"transfer_id":     transfer.ID(),
		"customer_id":     req.CustomerID,
		"idempotency_key": req.IdempotencyKey,
		"status":          transfer.Status(),
	})
	return &InitiateResult{Transfer: transfer, Transaction: tx, Replayed: true}, nil
}

func (s *Service) create(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	transfer := entity.NewRTGSTransfer(entity.NewRTGSTransferParams{
		CustomerID:         req.CustomerID,
		SenderAccountID:    req.SenderAccountID,
		BeneficiaryAccount: req.BeneficiaryAccount,
		BeneficiaryIFSC:    req.BeneficiaryIFSC,
		BeneficiaryName:    req.BeneficiaryName,
		Amount:             req.Amount,
		Remarks:            req.Remarks,
		IdempotencyKey:     req.IdempotencyKey,
	}, s.timeProvider)

	var tx *entity.Transaction
	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		repo := s.uow.GetRTGSRepository(ctx)
		used, err := repo.SumDailyAmount(ctx, req.CustomerID, s.timeProvider.Now(), s.config.Policy.Currency)
		if err != nil {
			return err
		}

		tx, err = transfer.Validate(transfer.Version(), s.config.Policy, used, req.InitiatedBy, s.timeProvider)
		if err != nil {
			return err
		}
		if err := s.ledger.Register(ctx, tx); err != nil {
			return err
		}
		return repo.Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	return &InitiateResult{Transfer: transfer, Transaction: tx}, nil
}

// Get loads a transfer by id
func (s *Service) Get(ctx context.Context, transferID string) (*entity.RTGSTransfer, error) {
	return s.uow.GetRTGSRepository(ctx).Load(ctx, transferID)
}

// ApplyRBIResult records a settlement result pushed by RBI for a transfer
// awaiting it. The caller passes the transfer version it observed.
func (s *Service) ApplyRBIResult(ctx context.Context, transferID string, expectedVersion int64, result rail.Response) (*entity.RTGSTransfer, error) {
	return s.resolve(ctx, transferID, &expectedVersion, result)
}

func (s *Service) publish(ctx context.Context, changes ...[]entity.StatusChange) {
	for _, batch := range changes {
		for _, change := range batch {
			s.publisher.Publish(ctx, change)
		}
	}
}
