package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUPIPolicy() UPIPolicy {
	return UPIPolicy{
		Currency:            CurrencyINR,
		AmountCeiling:       inr("100000"),
		PendingTimeout:      5 * coreport.Minute,
		SettlementAccountID: "upi-pool",
	}
}

func upiParams(amount string) NewUPIPaymentParams {
	return NewUPIPaymentParams{
		PayerAccountID: "acc-payer",
		PayerVPA:       "ravi.k@okhdfc",
		PayeeVPA:       "shop-42@ybl",
		Amount:         inr(amount),
		InitiatedBy:    "cust-1",
	}
}

// movingClock returns a mock whose Now reads *now at call time
func movingClock(t *testing.T, now *time.Time) *coremocks.MockTimeProvider {
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().RunAndReturn(func() time.Time { return *now }).Maybe()
	return mockTime
}

func TestInitiateUPIPayment(t *testing.T) {
	mockTime := newMockTime(t)

	t.Run("Valid request", func(t *testing.T) {
		payment, tx, err := InitiateUPIPayment(upiParams("499.50"), testUPIPolicy(), mockTime)
		require.NoError(t, err)

		assert.Equal(t, UPIInitiated, payment.Status())
		assert.Equal(t, tx.ID(), payment.TransactionID())
		assert.Equal(t, TypePayment, tx.Type())
		assert.Equal(t, ChannelUPI, tx.Channel())
		assert.Equal(t, payment.ID(), tx.Metadata()["upi_payment_id"])
	})

	t.Run("Rejections", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(p *NewUPIPaymentParams)
			err    error
		}{
			{"Missing psp", func(p *NewUPIPaymentParams) { p.PayeeVPA = "shop42" }, errs.ErrInvalidUPIID},
			{"Empty local part", func(p *NewUPIPaymentParams) { p.PayerVPA = "@okhdfc" }, errs.ErrInvalidUPIID},
			{"Two at signs", func(p *NewUPIPaymentParams) { p.PayeeVPA = "a@b@ybl" }, errs.ErrInvalidUPIID},
			{"Zero amount", func(p *NewUPIPaymentParams) { p.Amount = ZeroMoney(CurrencyINR) }, errs.ErrInvalidAmount},
			{"Over ceiling", func(p *NewUPIPaymentParams) { p.Amount = inr("100000.01") }, errs.ErrAmountExceedsCeiling},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				params := upiParams("100")
				tc.mutate(&params)
				payment, tx, err := InitiateUPIPayment(params, testUPIPolicy(), mockTime)
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, payment)
				assert.Nil(t, tx)
			})
		}
	})

	t.Run("Ceiling is inclusive", func(t *testing.T) {
		_, _, err := InitiateUPIPayment(upiParams("100000"), testUPIPolicy(), mockTime)
		assert.NoError(t, err)
	})
}

func TestUPIExpire(t *testing.T) {
	now := fixedTime
	mockTime := movingClock(t, &now)

	payment, _, err := InitiateUPIPayment(upiParams("250"), testUPIPolicy(), mockTime)
	require.NoError(t, err)
	require.NoError(t, payment.MarkPending(0, "RRN1", testUPIPolicy().PendingTimeout, mockTime))
	require.NotNil(t, payment.ExpiresAt())
	assert.Equal(t, fixedTime.Add(5*time.Minute), *payment.ExpiresAt())

	now = fixedTime.Add(4 * time.Minute)
	err = payment.Expire(1, mockTime)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Equal(t, UPIPending, payment.Status())

	now = fixedTime.Add(5 * time.Minute)
	require.NoError(t, payment.Expire(1, mockTime))
	assert.Equal(t, UPIExpired, payment.Status())

	assert.ErrorIs(t, payment.MarkSuccess(2, "RRN1", mockTime), errs.ErrTerminalStateViolation)

	events := payment.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "expired", events[0].NewStatus)
}

func TestUPITransitions(t *testing.T) {
	mockTime := newMockTime(t)

	t.Run("Success", func(t *testing.T) {
		payment, _, err := InitiateUPIPayment(upiParams("250"), testUPIPolicy(), mockTime)
		require.NoError(t, err)
		require.NoError(t, payment.MarkPending(0, "RRN1", coreport.Minute, mockTime))
		require.NoError(t, payment.MarkSuccess(1, "", mockTime))
		assert.Equal(t, UPISuccess, payment.Status())
		assert.Equal(t, "RRN1", payment.NPCIReference())
	})

	t.Run("Cancel only while pending", func(t *testing.T) {
		payment, _, err := InitiateUPIPayment(upiParams("250"), testUPIPolicy(), mockTime)
		require.NoError(t, err)
		assert.ErrorIs(t, payment.Cancel(0, "user", mockTime), errs.ErrInvalidStateTransition)
		require.NoError(t, payment.MarkPending(0, "RRN1", coreport.Minute, mockTime))
		require.NoError(t, payment.Cancel(1, "user", mockTime))
		assert.Equal(t, UPICancelled, payment.Status())
	})

	t.Run("Fail from initiated", func(t *testing.T) {
		payment, _, err := InitiateUPIPayment(upiParams("250"), testUPIPolicy(), mockTime)
		require.NoError(t, err)
		require.NoError(t, payment.Fail(0, "collect rejected", mockTime))
		assert.Equal(t, "collect rejected", payment.FailureReason())
		assert.ErrorIs(t, payment.MarkPending(1, "RRN1", coreport.Minute, mockTime), errs.ErrTerminalStateViolation)
	})
}
