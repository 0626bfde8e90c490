package entity

import (
	"testing"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRTGSPolicy() RTGSPolicy {
	return RTGSPolicy{
		Currency:            CurrencyINR,
		MinimumAmount:       inr("200000"),
		MaximumAmount:       inr("50000000"),
		DailyLimit:          inr("100000000"),
		SettlementAccountID: "rtgs-clearing",
	}
}

func newRTGS(amount string) NewRTGSTransferParams {
	return NewRTGSTransferParams{
		CustomerID:         "cust-1",
		SenderAccountID:    "acc-sender",
		BeneficiaryAccount: "123456789012",
		BeneficiaryIFSC:    "hdfc0001234",
		BeneficiaryName:    "A. Kumar",
		Amount:             inr(amount),
		IdempotencyKey:     "key-1",
	}
}

func TestRTGSValidate(t *testing.T) {
	mockTime := newMockTime(t)

	t.Run("Creates the ledger transaction", func(t *testing.T) {
		transfer := NewRTGSTransfer(newRTGS("250000"), mockTime)
		assert.Equal(t, "HDFC0001234", transfer.BeneficiaryIFSC())

		tx, err := transfer.Validate(0, testRTGSPolicy(), inr("0"), "cust-1", mockTime)
		require.NoError(t, err)
		require.NotNil(t, tx)

		assert.Equal(t, RTGSValidated, transfer.Status())
		assert.Equal(t, int64(1), transfer.Version())
		assert.Equal(t, tx.ID(), transfer.TransactionID())
		assert.Equal(t, ChannelRTGS, tx.Channel())
		assert.Equal(t, "rtgs-clearing", tx.ToAccountID())
		assert.Equal(t, StatusPending, tx.Status())
	})

	t.Run("Rejections", func(t *testing.T) {
		testCases := []struct {
			name      string
			mutate    func(p *NewRTGSTransferParams)
			dailyUsed string
			err       error
		}{
			{"Below minimum", func(p *NewRTGSTransferParams) { p.Amount = inr("50000") }, "0", errs.ErrAmountBelowMinimum},
			{"Above maximum", func(p *NewRTGSTransferParams) { p.Amount = inr("50000000.01") }, "0", errs.ErrLimitExceeded},
			{"Daily limit", func(p *NewRTGSTransferParams) {}, "99800000.00", errs.ErrLimitExceeded},
			{"Short account", func(p *NewRTGSTransferParams) { p.BeneficiaryAccount = "12345" }, "0", errs.ErrInvalidAccount},
			{"Alpha account", func(p *NewRTGSTransferParams) { p.BeneficiaryAccount = "12345678A012" }, "0", errs.ErrInvalidAccount},
			{"Bad IFSC", func(p *NewRTGSTransferParams) { p.BeneficiaryIFSC = "HDFC1001234" }, "0", errs.ErrInvalidIFSC},
			{"Wrong currency", func(p *NewRTGSTransferParams) { p.Amount = MustParseMoney("250000", CurrencyUSD) }, "0", errs.ErrCurrencyMismatch},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				params := newRTGS("250000")
				tc.mutate(&params)
				transfer := NewRTGSTransfer(params, mockTime)

				tx, err := transfer.Validate(0, testRTGSPolicy(), inr(tc.dailyUsed), "cust-1", mockTime)
				assert.ErrorIs(t, err, tc.err)
				assert.True(t, errs.IsValidationError(err))
				assert.Nil(t, tx)
				assert.Equal(t, RTGSInitiated, transfer.Status())
				assert.Empty(t, transfer.TransactionID())
				assert.Equal(t, int64(0), transfer.Version())
			})
		}
	})
}

func pendingRBI(t *testing.T) *RTGSTransfer {
	mockTime := newMockTime(t)
	transfer := NewRTGSTransfer(newRTGS("250000"), mockTime)
	_, err := transfer.Validate(0, testRTGSPolicy(), inr("0"), "cust-1", mockTime)
	require.NoError(t, err)
	require.NoError(t, transfer.BeginProcessing(1, mockTime))
	require.NoError(t, transfer.MarkPendingRBI(2, "UTR0001", mockTime))
	return transfer
}

func TestRTGSReturned(t *testing.T) {
	mockTime := newMockTime(t)
	transfer := pendingRBI(t)

	require.NoError(t, transfer.MarkReturned(transfer.Version(), "ACCOUNT_CLOSED", mockTime))
	assert.Equal(t, RTGSReturned, transfer.Status())
	assert.Equal(t, ReturnAccountClosed, transfer.ReturnReason())
	assert.True(t, transfer.Status().IsTerminal())

	err := transfer.Complete(transfer.Version(), mockTime)
	assert.ErrorIs(t, err, errs.ErrTerminalStateViolation)

	events := transfer.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "returned", events[0].NewStatus)
	assert.Equal(t, "ACCOUNT_CLOSED", events[0].Reason)
	assert.Equal(t, transfer.TransactionID(), events[0].TransactionID)
}

func TestRTGSMarkReturnedInvalidReason(t *testing.T) {
	mockTime := newMockTime(t)
	transfer := pendingRBI(t)
	before := transfer.Snapshot()

	err := transfer.MarkReturned(transfer.Version(), "ACCOUNT_FROZEN_MAYBE", mockTime)
	assert.ErrorIs(t, err, errs.ErrInvalidReturnReason)
	assert.Equal(t, before, transfer.Snapshot())
}

func TestRTGSTransitionsOutOfOrder(t *testing.T) {
	mockTime := newMockTime(t)
	transfer := NewRTGSTransfer(newRTGS("250000"), mockTime)

	assert.ErrorIs(t, transfer.BeginProcessing(0, mockTime), errs.ErrInvalidStateTransition)
	assert.ErrorIs(t, transfer.MarkPendingRBI(0, "UTR", mockTime), errs.ErrInvalidStateTransition)
	assert.ErrorIs(t, transfer.MarkReturned(0, "OTHER", mockTime), errs.ErrInvalidStateTransition)
	assert.ErrorIs(t, transfer.Complete(0, mockTime), errs.ErrInvalidStateTransition)
	assert.ErrorIs(t, transfer.Complete(7, mockTime), errs.ErrConcurrentModification)

	require.NoError(t, transfer.Fail(0, "operator abort", mockTime))
	assert.Equal(t, RTGSFailed, transfer.Status())
	assert.ErrorIs(t, transfer.Fail(1, "again", mockTime), errs.ErrTerminalStateViolation)
}

func TestParseReturnReason(t *testing.T) {
	for _, reason := range []string{"ACCOUNT_CLOSED", "INVALID_ACCOUNT", "BENEFICIARY_DECEASED",
		"AMOUNT_BELOW_MINIMUM", "ACCOUNT_TRANSFERRED", "INCORRECT_BENEFICIARY", "OTHER"} {
		parsed, err := ParseReturnReason(reason)
		require.NoError(t, err)
		assert.Equal(t, ReturnReason(reason), parsed)
	}

	_, err := ParseReturnReason("account_closed")
	assert.ErrorIs(t, err, errs.ErrInvalidReturnReason)
}
