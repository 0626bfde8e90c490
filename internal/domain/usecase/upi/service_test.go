package upi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/rail"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/settlement"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/memory"
	timeadapter "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	eventmocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/event"
	railmocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/rail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inr(amount string) entity.Money {
	return entity.MustParseMoney(amount, entity.CurrencyINR)
}

type upiFixture struct {
	service   *Service
	store     *memory.Store
	connector *railmocks.MockUPIConnector
	executor  *settlement.Executor

	mu     sync.Mutex
	events []string
}

func newUPIFixture(t *testing.T, configure func(*Config)) *upiFixture {
	timeProvider := timeadapter.NewRealTimeProvider()
	log := logger.NewNoopLogger()
	store := memory.NewStore(timeProvider, log)

	f := &upiFixture{
		store:     store,
		connector: railmocks.NewMockUPIConnector(t),
	}

	publisher := eventmocks.NewMockPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(_ context.Context, change entity.StatusChange) {
			f.mu.Lock()
			f.events = append(f.events, change.Aggregate+":"+change.NewStatus)
			f.mu.Unlock()
		}).Maybe()

	ctx := context.Background()
	accounts := store.GetAccountRepository(ctx)
	for id, opening := range map[string]string{"payer-acct": "5000.00", "upi-pool": "0.00"} {
		account, err := entity.NewAccount(id, inr(opening), timeProvider)
		require.NoError(t, err)
		require.NoError(t, accounts.Create(ctx, account))
	}

	executor := settlement.NewExecutor(settlement.Options{
		Workers:            2,
		DefaultMaxAttempts: 3,
		Retry:              settlement.RetryPolicy{BaseInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond},
	}, timeProvider, log)
	executor.Start()
	f.executor = executor
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = executor.Shutdown(ctx)
	})

	config := Config{
		Policy: entity.UPIPolicy{
			Currency:            entity.CurrencyINR,
			AmountCeiling:       inr("100000.00"),
			PendingTimeout:      coreport.Hour,
			SettlementAccountID: "upi-pool",
		},
		Priority:    2,
		RailTimeout: coreport.Second,
	}
	if configure != nil {
		configure(&config)
	}

	ledger := transaction.NewService(store, publisher, timeProvider, log)
	f.service = NewService(store, ledger, executor, f.connector, publisher, config, timeProvider, log)
	return f
}

func (f *upiFixture) request(amount string) InitiateRequest {
	return InitiateRequest{
		PayerAccountID: "payer-acct",
		PayerVPA:       "ravi.k@okaxis",
		PayeeVPA:       "chai-stall@ybl",
		Amount:         inr(amount),
		Note:           "two teas",
		InitiatedBy:    "upi-app",
	}
}

func (f *upiFixture) waitForStatus(t *testing.T, paymentID string, status entity.UPIStatus) *entity.UPIPayment {
	t.Helper()
	var payment *entity.UPIPayment
	require.Eventually(t, func() bool {
		loaded, err := f.service.Get(context.Background(), paymentID)
		if err != nil {
			return false
		}
		payment = loaded
		return loaded.Status() == status
	}, 5*time.Second, 5*time.Millisecond)
	return payment
}

// pendingPayment initiates a payment the switch leaves awaiting approval
func (f *upiFixture) pendingPayment(t *testing.T, amount, rrn string) *entity.UPIPayment {
	t.Helper()
	f.connector.EXPECT().RequestPayment(mock.Anything, mock.Anything).
		Return(rail.Response{Outcome: rail.OutcomePending, Reference: rrn}, nil).Once()

	result, err := f.service.Initiate(context.Background(), f.request(amount))
	require.NoError(t, err)
	return f.waitForStatus(t, result.Payment.ID(), entity.UPIPending)
}

// settledPayment initiates a payment and approves it through the callback path
func (f *upiFixture) settledPayment(t *testing.T, amount, rrn string) *entity.UPIPayment {
	t.Helper()
	payment := f.pendingPayment(t, amount, rrn)
	settled, err := f.service.ApplyNPCIResult(context.Background(), payment.ID(), payment.Version(),
		rail.Response{Outcome: rail.OutcomeSuccess, Reference: rrn})
	require.NoError(t, err)
	return settled
}

func (f *upiFixture) balance(t *testing.T, accountID string) string {
	account, err := f.store.GetAccountRepository(context.Background()).Get(context.Background(), accountID)
	require.NoError(t, err)
	return account.Balance().StringFixed()
}

func (f *upiFixture) transaction(t *testing.T, transactionID string) *entity.Transaction {
	tx, err := f.store.GetTransactionRepository(context.Background()).Load(context.Background(), transactionID)
	require.NoError(t, err)
	return tx
}

func TestInitiateSettlesThroughStatusPoll(t *testing.T) {
	f := newUPIFixture(t, func(c *Config) { c.StatusPollInterval = coreport.Millisecond })
	f.connector.EXPECT().RequestPayment(mock.Anything, mock.Anything).
		Return(rail.Response{Outcome: rail.OutcomePending, Reference: "RRN100"}, nil).Once()
	f.connector.EXPECT().CheckStatus(mock.Anything, "RRN100").
		Return(rail.Response{Outcome: rail.OutcomePending}, nil).Once()
	f.connector.EXPECT().CheckStatus(mock.Anything, "RRN100").
		Return(rail.Response{Outcome: rail.OutcomeSuccess, Reference: "RRN100"}, nil).Once()

	result, err := f.service.Initiate(context.Background(), f.request("120.00"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.JobID)
	assert.Equal(t, entity.UPIInitiated, result.Payment.Status())
	assert.Equal(t, entity.StatusPending, result.Transaction.Status())

	payment := f.waitForStatus(t, result.Payment.ID(), entity.UPISuccess)
	assert.Equal(t, "RRN100", payment.NPCIReference())
	assert.NotNil(t, payment.ExpiresAt())

	tx := f.transaction(t, payment.TransactionID())
	assert.Equal(t, entity.StatusCompleted, tx.Status())
	assert.Equal(t, "4880.00", f.balance(t, "payer-acct"))
	assert.Equal(t, "120.00", f.balance(t, "upi-pool"))
}

func TestInitiateExpiresUnapprovedRequest(t *testing.T) {
	f := newUPIFixture(t, func(c *Config) { c.Policy.PendingTimeout = 20 * coreport.Millisecond })
	f.connector.EXPECT().RequestPayment(mock.Anything, mock.Anything).
		Return(rail.Response{Outcome: rail.OutcomePending, Reference: "RRN200"}, nil).Once()

	result, err := f.service.Initiate(context.Background(), f.request("75.00"))
	require.NoError(t, err)

	expired := f.waitForStatus(t, result.Payment.ID(), entity.UPIExpired)
	assert.Equal(t, "RRN200", expired.NPCIReference())
	assert.Equal(t, "expired", expired.FailureReason())

	tx := f.transaction(t, expired.TransactionID())
	assert.Equal(t, entity.StatusFailed, tx.Status())
	assert.Equal(t, "5000.00", f.balance(t, "payer-acct"))

	assert.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return assert.ObjectsAreEqual([]string{"upi_payment:expired", "transaction:failed"}, f.events)
	}, time.Second, 5*time.Millisecond)
}

func TestInitiateDeclinedBySwitch(t *testing.T) {
	f := newUPIFixture(t, nil)
	f.connector.EXPECT().RequestPayment(mock.Anything, mock.Anything).
		Return(rail.Response{Outcome: rail.OutcomeFailure, ReasonCode: "U30", Message: "debit declined"}, nil).Once()

	result, err := f.service.Initiate(context.Background(), f.request("50.00"))
	require.NoError(t, err)

	payment := f.waitForStatus(t, result.Payment.ID(), entity.UPIFailed)
	assert.Equal(t, "U30: debit declined", payment.FailureReason())
	assert.Equal(t, entity.StatusFailed, f.transaction(t, payment.TransactionID()).Status())
}

func TestInitiateFailsWhenSwitchTimesOut(t *testing.T) {
	f := newUPIFixture(t, nil)
	f.connector.EXPECT().RequestPayment(mock.Anything, mock.Anything).
		Return(rail.Response{Outcome: rail.OutcomeTimeout, Message: "no response"}, nil).Once()

	result, err := f.service.Initiate(context.Background(), f.request("50.00"))
	require.NoError(t, err)

	payment := f.waitForStatus(t, result.Payment.ID(), entity.UPIFailed)
	assert.Equal(t, entity.ReasonTimeout, payment.FailureReason())

	tx := f.transaction(t, payment.TransactionID())
	assert.Equal(t, entity.StatusFailed, tx.Status())
	assert.Equal(t, entity.ReasonTimeout, tx.FailureReason())
}

func TestInitiateFailsWhenRequestCannotBeScheduled(t *testing.T) {
	f := newUPIFixture(t, nil)
	require.NoError(t, f.executor.Shutdown(context.Background()))

	result, err := f.service.Initiate(context.Background(), f.request("50.00"))
	assert.ErrorIs(t, err, errs.ErrExecutorStopped)
	assert.Nil(t, result)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, []string{"upi_payment:failed", "transaction:failed"}, f.events)
	assert.Equal(t, "5000.00", f.balance(t, "payer-acct"))
}

func TestInitiateValidation(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(r *InitiateRequest)
		expectedError error
	}{
		{name: "Bad payer VPA", modify: func(r *InitiateRequest) { r.PayerVPA = "ravi" }, expectedError: errs.ErrInvalidUPIID},
		{name: "Bad payee VPA", modify: func(r *InitiateRequest) { r.PayeeVPA = "x@1bank" }, expectedError: errs.ErrInvalidUPIID},
		{name: "Above ceiling", modify: func(r *InitiateRequest) { r.Amount = inr("100000.01") }, expectedError: errs.ErrAmountExceedsCeiling},
		{name: "Zero amount", modify: func(r *InitiateRequest) { r.Amount = inr("0.00") }, expectedError: errs.ErrInvalidAmount},
		{name: "Unknown payer account", modify: func(r *InitiateRequest) { r.PayerAccountID = "ghost" }, expectedError: errs.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUPIFixture(t, nil)
			req := f.request("10.00")
			tt.modify(&req)

			result, err := f.service.Initiate(context.Background(), req)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, result)
		})
	}
}

func TestCancel(t *testing.T) {
	f := newUPIFixture(t, nil)
	payment := f.pendingPayment(t, "30.00", "RRN300")

	_, err := f.service.Cancel(context.Background(), payment.ID(), payment.Version()+1, "payer declined")
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)

	cancelled, err := f.service.Cancel(context.Background(), payment.ID(), payment.Version(), "payer declined")
	require.NoError(t, err)
	assert.Equal(t, entity.UPICancelled, cancelled.Status())
	assert.Equal(t, entity.StatusCancelled, f.transaction(t, payment.TransactionID()).Status())

	_, err = f.service.Cancel(context.Background(), payment.ID(), cancelled.Version(), "again")
	assert.ErrorIs(t, err, errs.ErrTerminalStateViolation)

	// no money moved and a late approval cannot revive the request
	assert.Equal(t, "5000.00", f.balance(t, "payer-acct"))
	_, err = f.service.ApplyNPCIResult(context.Background(), payment.ID(), cancelled.Version(),
		rail.Response{Outcome: rail.OutcomeSuccess, Reference: "RRN300"})
	assert.ErrorIs(t, err, errs.ErrTerminalStateViolation)
	assert.Equal(t, "0.00", f.balance(t, "upi-pool"))

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Contains(t, f.events, "upi_payment:cancelled")
	assert.Contains(t, f.events, "transaction:cancelled")
}

func TestCancelSettledPayment(t *testing.T) {
	f := newUPIFixture(t, nil)
	settled := f.settledPayment(t, "30.00", "RRN310")

	_, err := f.service.Cancel(context.Background(), settled.ID(), settled.Version(), "too late")
	assert.ErrorIs(t, err, errs.ErrTerminalStateViolation)
	assert.Equal(t, entity.StatusCompleted, f.transaction(t, settled.TransactionID()).Status())
}

func TestApplyNPCIResult(t *testing.T) {
	f := newUPIFixture(t, nil)
	payment := f.pendingPayment(t, "250.00", "RRN400")

	_, err := f.service.ApplyNPCIResult(context.Background(), payment.ID(), payment.Version()-1,
		rail.Response{Outcome: rail.OutcomeSuccess})
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)

	settled, err := f.service.ApplyNPCIResult(context.Background(), payment.ID(), payment.Version(),
		rail.Response{Outcome: rail.OutcomeSuccess, Reference: "RRN400-S"})
	require.NoError(t, err)
	assert.Equal(t, entity.UPISuccess, settled.Status())
	assert.Equal(t, "RRN400-S", settled.NPCIReference())
	assert.Equal(t, "250.00", f.balance(t, "upi-pool"))

	_, err = f.service.ApplyNPCIResult(context.Background(), payment.ID(), settled.Version(),
		rail.Response{Outcome: rail.OutcomeFailure})
	assert.ErrorIs(t, err, errs.ErrTerminalStateViolation)
}

func TestRefund(t *testing.T) {
	f := newUPIFixture(t, nil)

	pending := f.pendingPayment(t, "100.00", "RRN500")
	_, err := f.service.Refund(context.Background(), pending.ID(), inr("10.00"), "support")
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)

	settled, err := f.service.ApplyNPCIResult(context.Background(), pending.ID(), pending.Version(),
		rail.Response{Outcome: rail.OutcomeSuccess, Reference: "RRN500"})
	require.NoError(t, err)

	refund, err := f.service.Refund(context.Background(), settled.ID(), inr("40.00"), "support")
	require.NoError(t, err)
	assert.Equal(t, entity.TypeRefund, refund.Type())
	assert.Equal(t, entity.StatusCompleted, refund.Status())
	assert.Equal(t, settled.TransactionID(), refund.OriginalTransactionID())
	assert.Equal(t, "4940.00", f.balance(t, "payer-acct"))
	assert.Equal(t, "60.00", f.balance(t, "upi-pool"))

	_, err = f.service.Refund(context.Background(), settled.ID(), inr("60.01"), "support")
	assert.ErrorIs(t, err, errs.ErrRefundExceedsAmount)

	_, err = f.service.Refund(context.Background(), settled.ID(), inr("60.00"), "support")
	require.NoError(t, err)
	assert.Equal(t, "5000.00", f.balance(t, "payer-acct"))
	assert.Equal(t, "0.00", f.balance(t, "upi-pool"))
}

func TestReverse(t *testing.T) {
	f := newUPIFixture(t, nil)
	settled := f.settledPayment(t, "80.00", "RRN600")
	assert.Equal(t, "4920.00", f.balance(t, "payer-acct"))

	reversal, err := f.service.Reverse(context.Background(), settled.ID(), "ops")
	require.NoError(t, err)
	assert.Equal(t, entity.TypeReversal, reversal.Type())
	assert.Equal(t, "5000.00", f.balance(t, "payer-acct"))
	assert.Equal(t, "0.00", f.balance(t, "upi-pool"))
	assert.Equal(t, entity.StatusReversed, f.transaction(t, settled.TransactionID()).Status())

	_, err = f.service.Reverse(context.Background(), settled.ID(), "ops")
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

func TestReverseAfterRefund(t *testing.T) {
	f := newUPIFixture(t, nil)
	settled := f.settledPayment(t, "100.00", "RRN700")

	_, err := f.service.Refund(context.Background(), settled.ID(), inr("40.00"), "support")
	require.NoError(t, err)
	assert.Equal(t, "4940.00", f.balance(t, "payer-acct"))

	_, err = f.service.Reverse(context.Background(), settled.ID(), "ops")
	assert.ErrorIs(t, err, errs.ErrAlreadyRefunded)

	assert.Equal(t, "4940.00", f.balance(t, "payer-acct"))
	assert.Equal(t, "60.00", f.balance(t, "upi-pool"))
	assert.Equal(t, entity.StatusCompleted, f.transaction(t, settled.TransactionID()).Status())
}
