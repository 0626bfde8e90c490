package entity

import (
	"testing"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"100.00", "100.00"},
			{"0.01", "0.01"},
			{"1", "1.00"},
			{"1.5", "1.50"},
			{"2.345", "2.34"},
			{"2.355", "2.36"},
			{"1234567.89", "1234567.89"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				m, err := ParseMoney(tc.input, CurrencyINR)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, m.StringFixed())
				assert.Equal(t, CurrencyINR, m.Currency())
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			currency    Currency
			errorType   error
			description string
		}{
			{"", CurrencyINR, errs.ErrInvalidAmount, "Empty string"},
			{"abc", CurrencyINR, errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", CurrencyINR, errs.ErrInvalidAmount, "Thousands separator"},
			{"-1.00", CurrencyINR, errs.ErrNegativeAmount, "Negative amount"},
			{"10.00", Currency("XYZ"), errs.ErrUnsupportedCurrency, "Unknown currency"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseMoney(tc.input, tc.currency)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustParseMoney("100.00", CurrencyINR)
	b := MustParseMoney("40.25", CurrencyINR)
	usd := MustParseMoney("1.00", CurrencyUSD)

	t.Run("Add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "140.25 INR", sum.String())
		// operands are untouched
		assert.Equal(t, "100.00", a.StringFixed())
	})

	t.Run("Subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "59.75", diff.StringFixed())

		zero, err := a.Subtract(a)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())
	})

	t.Run("Subtract below zero", func(t *testing.T) {
		_, err := b.Subtract(a)
		assert.ErrorIs(t, err, errs.ErrNegativeResult)
	})

	t.Run("Currency mismatch", func(t *testing.T) {
		_, err := a.Add(usd)
		assert.ErrorIs(t, err, errs.ErrCurrencyMismatch)
		_, err = a.Subtract(usd)
		assert.ErrorIs(t, err, errs.ErrCurrencyMismatch)
		_, err = a.Compare(usd)
		assert.ErrorIs(t, err, errs.ErrCurrencyMismatch)
	})

	t.Run("Compare", func(t *testing.T) {
		cmp, err := a.Compare(b)
		require.NoError(t, err)
		assert.Equal(t, 1, cmp)

		cmp, err = b.Compare(a)
		require.NoError(t, err)
		assert.Equal(t, -1, cmp)

		cmp, err = a.Compare(MustParseMoney("100", CurrencyINR))
		require.NoError(t, err)
		assert.Equal(t, 0, cmp)
	})
}

func TestMoneyQuantize(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"0.125", "0.12"},
		{"0.135", "0.14"},
		{"10.005", "10.00"},
		{"10.015", "10.02"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			m := Money{amount: decimal.RequireFromString(tc.raw), currency: CurrencyEUR}
			assert.Equal(t, tc.expected, m.Quantize().StringFixed())
		})
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" inr ")
	require.NoError(t, err)
	assert.Equal(t, CurrencyINR, c)

	_, err = ParseCurrency("GBP")
	assert.ErrorIs(t, err, errs.ErrUnsupportedCurrency)
}
