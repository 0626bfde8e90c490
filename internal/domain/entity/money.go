package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/shopspring/decimal"
)

// Currency is an ISO-4217 currency code
type Currency string

// Supported currencies
const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// minorUnits holds the number of decimal places per supported currency
var minorUnits = map[Currency]int32{
	CurrencyINR: 2,
	CurrencyUSD: 2,
	CurrencyEUR: 2,
}

// ParseCurrency validates a currency code
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := minorUnits[c]; !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// Precision returns the number of minor-unit digits for the currency
func (c Currency) Precision() int32 {
	return minorUnits[c]
}

// Money is an immutable, non-negative amount scoped to a currency.
// The zero value is not a valid Money; use the constructors.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney builds a Money value quantized to the currency precision
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if _, ok := minorUnits[currency]; !ok {
		return Money{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedCurrency, currency)
	}
	if amount.IsNegative() {
		return Money{}, errs.ErrNegativeAmount
	}
	return Money{amount: amount.RoundBank(currency.Precision()), currency: currency}, nil
}

// ParseMoney parses a decimal string such as "100.50"
func ParseMoney(amount string, currency Currency) (Money, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return Money{}, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	return NewMoney(d, currency)
}

// MustParseMoney is ParseMoney for constants and tests. It panics on error.
func MustParseMoney(amount string, currency Currency) Money {
	m, err := ParseMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a zero amount in the given currency
func ZeroMoney(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns m + other
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, currencyMismatch(m, other)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other, failing if the result would be negative
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, currencyMismatch(m, other)
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", errs.ErrNegativeResult, m, other)
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Quantize rounds to the currency's minor unit using round-half-even
func (m Money) Quantize() Money {
	return Money{amount: m.amount.RoundBank(m.currency.Precision()), currency: m.currency}
}

// Compare returns -1, 0 or 1 when m is less than, equal to or greater than other
func (m Money) Compare(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, currencyMismatch(m, other)
	}
	return m.amount.Cmp(other.amount), nil
}

// Equal reports whether both amount and currency match
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// StringFixed returns the amount with exactly the currency's minor-unit digits
func (m Money) StringFixed() string {
	return m.amount.StringFixed(m.currency.Precision())
}

// String implements fmt.Stringer, e.g. "100.00 INR"
func (m Money) String() string {
	return m.StringFixed() + " " + string(m.currency)
}

func currencyMismatch(a, b Money) error {
	return fmt.Errorf("%w: %s vs %s", errs.ErrCurrencyMismatch, a.currency, b.currency)
}
