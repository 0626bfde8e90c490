package transaction

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/memory"
	coremocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
	eventmocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func inr(amount string) entity.Money {
	return entity.MustParseMoney(amount, entity.CurrencyINR)
}

// ledgerFixture wires the service to an in-memory store with three funded accounts
type ledgerFixture struct {
	service *Service
	store   *memory.Store

	mu     sync.Mutex
	events []entity.StatusChange
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	store := memory.NewStore(mockTime, logger.NewNoopLogger())
	f := &ledgerFixture{store: store}

	publisher := eventmocks.NewMockPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(_ context.Context, change entity.StatusChange) {
			f.mu.Lock()
			f.events = append(f.events, change)
			f.mu.Unlock()
		}).Maybe()

	ctx := context.Background()
	accounts := store.GetAccountRepository(ctx)
	for id, opening := range map[string]string{"alice": "1000.00", "bob": "50.00", "fees": "0.00"} {
		account, err := entity.NewAccount(id, inr(opening), mockTime)
		require.NoError(t, err)
		require.NoError(t, accounts.Create(ctx, account))
	}

	f.service = NewService(store, publisher, mockTime, logger.NewNoopLogger())
	return f
}

func (f *ledgerFixture) balance(t *testing.T, id string) string {
	account, err := f.store.GetAccountRepository(context.Background()).Get(context.Background(), id)
	require.NoError(t, err)
	return account.Balance().StringFixed()
}

func (f *ledgerFixture) statuses() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.Aggregate+":"+e.NewStatus)
	}
	return out
}

func (f *ledgerFixture) transfer(t *testing.T, amount string) *entity.Transaction {
	tx, err := f.service.Create(context.Background(), entity.NewTransactionParams{
		Type:          entity.TypeTransfer,
		Amount:        inr(amount),
		InitiatedBy:   "teller-7",
		FromAccountID: "alice",
		ToAccountID:   "bob",
	})
	require.NoError(t, err)
	return tx
}

func (f *ledgerFixture) settled(t *testing.T, amount string) *entity.Transaction {
	ctx := context.Background()
	tx := f.transfer(t, amount)
	_, err := f.service.BeginProcessing(ctx, tx.ID(), 0)
	require.NoError(t, err)
	tx, err = f.service.Settle(ctx, tx.ID(), 1, nil)
	require.NoError(t, err)
	return tx
}

func TestServiceSettleLifecycle(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	tx := f.transfer(t, "100.00")
	assert.Equal(t, int64(0), tx.Version())

	processing, err := f.service.BeginProcessing(ctx, tx.ID(), 0)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProcessing, processing.Status())
	assert.Equal(t, int64(1), processing.Version())

	completed, err := f.service.Settle(ctx, tx.ID(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, completed.Status())
	// two legs and the completion
	assert.Equal(t, int64(4), completed.Version())
	assert.Len(t, completed.Legs(), 2)

	assert.Equal(t, "900.00", f.balance(t, "alice"))
	assert.Equal(t, "150.00", f.balance(t, "bob"))
	assert.Equal(t, []string{"transaction:completed"}, f.statuses())

	stored, err := f.service.Get(ctx, tx.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stored.Version())
	assert.Equal(t, entity.StatusCompleted, stored.Status())
}

func TestServiceSettleWithPostings(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	tx := f.transfer(t, "100.00")
	_, err := f.service.BeginProcessing(ctx, tx.ID(), 0)
	require.NoError(t, err)

	completed, err := f.service.Settle(ctx, tx.ID(), 1, []Posting{
		{AccountID: "alice", Type: entity.LegDebit, Amount: inr("100.00")},
		{AccountID: "bob", Type: entity.LegCredit, Amount: inr("98.50")},
		{AccountID: "fees", Type: entity.LegCredit, Amount: inr("1.50")},
	})
	require.NoError(t, err)
	assert.Len(t, completed.Legs(), 3)
	assert.Equal(t, "148.50", f.balance(t, "bob"))
	assert.Equal(t, "1.50", f.balance(t, "fees"))

	t.Run("Unbalanced postings roll back", func(t *testing.T) {
		tx := f.transfer(t, "10.00")
		_, err := f.service.BeginProcessing(ctx, tx.ID(), 0)
		require.NoError(t, err)

		_, err = f.service.Settle(ctx, tx.ID(), 1, []Posting{
			{AccountID: "alice", Type: entity.LegDebit, Amount: inr("10.00")},
			{AccountID: "bob", Type: entity.LegCredit, Amount: inr("9.00")},
		})
		assert.ErrorIs(t, err, errs.ErrUnbalancedLegs)
		assert.Equal(t, "900.00", f.balance(t, "alice"))

		stored, err := f.service.Get(ctx, tx.ID())
		require.NoError(t, err)
		assert.Equal(t, entity.StatusProcessing, stored.Status())
		assert.Empty(t, stored.Legs())
	})
}

func TestServiceSettleInsufficientFunds(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	tx, err := f.service.Create(ctx, entity.NewTransactionParams{
		Type:          entity.TypeTransfer,
		Amount:        inr("75.00"),
		InitiatedBy:   "teller-7",
		FromAccountID: "bob",
		ToAccountID:   "alice",
	})
	require.NoError(t, err)
	_, err = f.service.BeginProcessing(ctx, tx.ID(), 0)
	require.NoError(t, err)

	_, err = f.service.Settle(ctx, tx.ID(), 1, nil)
	assert.ErrorIs(t, err, errs.ErrNegativeResult)
	assert.Equal(t, "50.00", f.balance(t, "bob"))
	assert.Equal(t, "1000.00", f.balance(t, "alice"))
}

func TestServiceStaleVersion(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	tx := f.transfer(t, "10.00")

	_, err := f.service.BeginProcessing(ctx, tx.ID(), 3)
	require.Error(t, err)
	assert.True(t, errs.IsConcurrentModification(err))

	var conflict *errs.ConcurrentModificationError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(3), conflict.Expected)
	assert.Equal(t, int64(0), conflict.Actual)

	stored, err := f.service.Get(ctx, tx.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, stored.Status())
}

func TestServiceConcurrentSettle(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	tx := f.transfer(t, "100.00")
	_, err := f.service.BeginProcessing(ctx, tx.ID(), 0)
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]error, callers)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = f.service.Settle(ctx, tx.ID(), 1, nil)
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errs.IsConcurrentModification(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, "900.00", f.balance(t, "alice"))
	assert.Equal(t, "150.00", f.balance(t, "bob"))
}

func TestServiceCancelAndFail(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	t.Run("Cancel pending", func(t *testing.T) {
		tx := f.transfer(t, "5.00")
		cancelled, err := f.service.Cancel(ctx, tx.ID(), 0, "customer request")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCancelled, cancelled.Status())
		assert.Equal(t, "customer request", cancelled.FailureReason())
	})

	t.Run("Fail processing", func(t *testing.T) {
		tx := f.transfer(t, "5.00")
		_, err := f.service.BeginProcessing(ctx, tx.ID(), 0)
		require.NoError(t, err)
		failed, err := f.service.Fail(ctx, tx.ID(), 1, "rail down")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, failed.Status())
	})

	t.Run("Completed is terminal", func(t *testing.T) {
		tx := f.settled(t, "5.00")
		_, err := f.service.Cancel(ctx, tx.ID(), tx.Version(), "too late")
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.ErrorIs(t, err, errs.ErrTerminalStateViolation)
	})

	t.Run("Unknown transaction", func(t *testing.T) {
		_, err := f.service.Fail(ctx, "missing", 0, "x")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestServiceReverse(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	tx := f.settled(t, "100.00")
	reversal, err := f.service.Reverse(ctx, tx.ID(), tx.Version(), "ops-1")
	require.NoError(t, err)

	assert.Equal(t, entity.TypeReversal, reversal.Type())
	assert.Equal(t, entity.StatusCompleted, reversal.Status())
	assert.Equal(t, tx.ID(), reversal.OriginalTransactionID())
	assert.Equal(t, "1000.00", f.balance(t, "alice"))
	assert.Equal(t, "50.00", f.balance(t, "bob"))

	original, err := f.service.Get(ctx, tx.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReversed, original.Status())
	assert.Equal(t, reversal.ID(), original.Metadata()[entity.MetaReversedBy])

	linked, err := f.service.ListLinked(ctx, tx.ID())
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, reversal.ID(), linked[0].ID())

	_, err = f.service.Reverse(ctx, tx.ID(), original.Version(), "ops-1")
	assert.ErrorIs(t, err, errs.ErrTerminalStateViolation)

	assert.Contains(t, f.statuses(), "transaction:reversed")
}

func TestServiceReverseAfterRefund(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	tx := f.settled(t, "100.00")

	refund, err := f.service.Refund(ctx, tx.ID(), inr("40.00"), "support-2")
	require.NoError(t, err)
	assert.Equal(t, "940.00", f.balance(t, "alice"))
	assert.Equal(t, "110.00", f.balance(t, "bob"))

	_, err = f.service.Reverse(ctx, tx.ID(), tx.Version(), "ops-1")
	assert.ErrorIs(t, err, errs.ErrAlreadyRefunded)
	assert.Equal(t, errs.CodeAlreadyRefunded, errs.ErrorCode(err))

	// nobody is paid twice
	assert.Equal(t, "940.00", f.balance(t, "alice"))
	assert.Equal(t, "110.00", f.balance(t, "bob"))

	original, err := f.service.Get(ctx, tx.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, original.Status())
	assert.Equal(t, tx.Version(), original.Version())

	linked, err := f.service.ListLinked(ctx, tx.ID())
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, refund.ID(), linked[0].ID())
}

func TestServicePostingsStayInsideTheUnit(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	tx := f.transfer(t, "100.00")
	done := make(chan error, 1)
	go func() {
		if _, err := f.service.BeginProcessing(ctx, tx.ID(), 0); err != nil {
			done <- err
			return
		}
		if _, err := f.service.Settle(ctx, tx.ID(), 1, nil); err != nil {
			done <- err
			return
		}
		stored, err := f.service.Get(ctx, tx.ID())
		if err != nil {
			done <- err
			return
		}
		_, err = f.service.Reverse(ctx, tx.ID(), stored.Version(), "ops-1")
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("settle and reverse did not return")
	}
	assert.Equal(t, "1000.00", f.balance(t, "alice"))
	assert.Equal(t, "50.00", f.balance(t, "bob"))
}

func TestServiceRefund(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	tx := f.settled(t, "100.00")

	first, err := f.service.Refund(ctx, tx.ID(), inr("60.00"), "support-2")
	require.NoError(t, err)
	assert.Equal(t, entity.TypeRefund, first.Type())
	assert.Equal(t, entity.StatusCompleted, first.Status())
	assert.Equal(t, "960.00", f.balance(t, "alice"))
	assert.Equal(t, "90.00", f.balance(t, "bob"))

	_, err = f.service.Refund(ctx, tx.ID(), inr("40.01"), "support-2")
	assert.ErrorIs(t, err, errs.ErrRefundExceedsAmount)

	_, err = f.service.Refund(ctx, tx.ID(), inr("40.00"), "support-2")
	require.NoError(t, err)
	assert.Equal(t, "1000.00", f.balance(t, "alice"))

	original, err := f.service.Get(ctx, tx.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, original.Status())
	assert.Equal(t, tx.Version(), original.Version())
}

func TestServiceCreateRejections(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		params entity.NewTransactionParams
		err    error
	}{
		{
			name:   "Same account on both sides",
			params: entity.NewTransactionParams{Type: entity.TypeTransfer, Amount: inr("1"), InitiatedBy: "u", FromAccountID: "alice", ToAccountID: "alice"},
			err:    errs.ErrInvalidAccount,
		},
		{
			name:   "Unknown account",
			params: entity.NewTransactionParams{Type: entity.TypeTransfer, Amount: inr("1"), InitiatedBy: "u", FromAccountID: "alice", ToAccountID: "carol"},
			err:    errs.ErrAccountNotFound,
		},
		{
			name:   "Currency differs from account",
			params: entity.NewTransactionParams{Type: entity.TypeTransfer, Amount: entity.MustParseMoney("1", entity.CurrencyUSD), InitiatedBy: "u", FromAccountID: "alice", ToAccountID: "bob"},
			err:    errs.ErrCurrencyMismatch,
		},
		{
			name:   "Refunds come from the ledger",
			params: entity.NewTransactionParams{Type: entity.TypeRefund, Amount: inr("1"), InitiatedBy: "u", FromAccountID: "alice", ToAccountID: "bob"},
			err:    errs.ErrInvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := f.service.Create(ctx, tc.params)
			assert.Nil(t, tx)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
