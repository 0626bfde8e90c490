package rail

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/rail"
)

// Sandbox simulates the RBI and NPCI gateways for development and test
// environments. Outcomes are chosen from the request so that every path can
// be driven on purpose:
//
//   - RTGS beneficiary accounts ending in 0000 are rejected on submission
//   - RTGS beneficiary accounts ending in 9999 are returned as ACCOUNT_CLOSED
//   - UPI payee VPAs starting with "decline" are declined
//   - UPI payer VPAs starting with "slow" never leave pending
//
// Everything else settles on the first enquiry or status check.
type Sandbox struct {
	latency      time.Duration
	timeProvider core.TimeProvider
	logger       core.Logger

	mu       sync.Mutex
	seq      int
	transfer map[string]string // utr -> beneficiary account
	payments map[string]string // rrn -> payer vpa
}

var (
	_ rail.RTGSConnector = (*Sandbox)(nil)
	_ rail.UPIConnector  = (*Sandbox)(nil)
)

// NewSandbox creates a simulator answering after latency
func NewSandbox(latency time.Duration, timeProvider core.TimeProvider, logger core.Logger) *Sandbox {
	return &Sandbox{
		latency:      latency,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"rail": "sandbox"}),
		transfer:     make(map[string]string),
		payments:     make(map[string]string),
	}
}

// SubmitTransfer accepts a transfer and assigns it a UTR
func (s *Sandbox) SubmitTransfer(ctx context.Context, transfer *entity.RTGSTransfer) (rail.Response, error) {
	if err := s.wait(ctx); err != nil {
		return rail.Response{}, err
	}
	if strings.HasSuffix(transfer.BeneficiaryAccount(), "0000") {
		return rail.Response{Outcome: rail.OutcomeFailure, ReasonCode: "R03", Message: "beneficiary account does not exist"}, nil
	}

	utr := s.reference("SBXR")
	s.mu.Lock()
	s.transfer[utr] = transfer.BeneficiaryAccount()
	s.mu.Unlock()

	s.logger.Debug("Sandbox accepted RTGS transfer", map[string]any{
		"transfer_id": transfer.ID(),
		"utr":         utr,
	})
	return rail.Response{Outcome: rail.OutcomePending, Reference: utr}, nil
}

// EnquireTransfer settles or returns a transfer it accepted earlier
func (s *Sandbox) EnquireTransfer(ctx context.Context, utr string) (rail.Response, error) {
	if err := s.wait(ctx); err != nil {
		return rail.Response{}, err
	}

	s.mu.Lock()
	account, ok := s.transfer[utr]
	s.mu.Unlock()

	switch {
	case !ok:
		return rail.Response{Outcome: rail.OutcomeFailure, ReasonCode: "R99", Message: "unknown UTR"}, nil
	case strings.HasSuffix(account, "9999"):
		return rail.Response{Outcome: rail.OutcomeReturned, Reference: utr, ReasonCode: string(entity.ReturnAccountClosed)}, nil
	default:
		return rail.Response{Outcome: rail.OutcomeSuccess, Reference: utr}, nil
	}
}

// RequestPayment raises a collect request and assigns it an RRN
func (s *Sandbox) RequestPayment(ctx context.Context, payment *entity.UPIPayment) (rail.Response, error) {
	if err := s.wait(ctx); err != nil {
		return rail.Response{}, err
	}
	if strings.HasPrefix(payment.PayeeVPA(), "decline") {
		return rail.Response{Outcome: rail.OutcomeFailure, ReasonCode: "U30", Message: "debit declined by remitter bank"}, nil
	}

	rrn := s.reference("SBXU")
	s.mu.Lock()
	s.payments[rrn] = payment.PayerVPA()
	s.mu.Unlock()

	return rail.Response{Outcome: rail.OutcomePending, Reference: rrn}, nil
}

// CheckStatus approves a collect request unless its payer is slow
func (s *Sandbox) CheckStatus(ctx context.Context, reference string) (rail.Response, error) {
	if err := s.wait(ctx); err != nil {
		return rail.Response{}, err
	}

	s.mu.Lock()
	payer, ok := s.payments[reference]
	s.mu.Unlock()

	switch {
	case !ok:
		return rail.Response{Outcome: rail.OutcomeFailure, ReasonCode: "U16", Message: "unknown reference"}, nil
	case strings.HasPrefix(payer, "slow"):
		return rail.Response{Outcome: rail.OutcomePending, Reference: reference}, nil
	default:
		return rail.Response{Outcome: rail.OutcomeSuccess, Reference: reference}, nil
	}
}

func (s *Sandbox) reference(prefix string) string {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()
	return fmt.Sprintf("%s%s%06d", prefix, s.timeProvider.Now().Format("20060102"), seq)
}

// wait simulates network latency and honours the caller's deadline
func (s *Sandbox) wait(ctx context.Context) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", errs.ErrRailTimeout, ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrRailTimeout, err)
	}
	return nil
}
