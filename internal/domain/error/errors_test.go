package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrCurrencyMismatch.Error() != "currency mismatch" {
		t.Errorf("ErrCurrencyMismatch has unexpected message: %s", ErrCurrencyMismatch.Error())
	}
	if ErrInvalidAmount.Error() != "invalid amount format" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidRequest", ErrInvalidRequest, CodeInvalidRequest},
		{"InvalidAmount", ErrInvalidAmount, CodeInvalidAmount},
		{"CurrencyMismatch", ErrCurrencyMismatch, CodeCurrencyMismatch},
		{"UnbalancedLegs", ErrUnbalancedLegs, CodeUnbalancedLegs},
		{"AmountBelowMinimum", ErrAmountBelowMinimum, CodeAmountBelowMinimum},
		{"InvalidUPIID", ErrInvalidUPIID, CodeInvalidUPIID},
		{"JobNotFound", ErrJobNotFound, CodeNotFound},
		{"AlreadyRefunded", fmt.Errorf("reverse t1: %w", ErrAlreadyRefunded), CodeAlreadyRefunded},
		{"ConcurrentModification", NewConcurrentModificationError("transaction", "t1", 1, 2), CodeConcurrentUpdate},
		{"TerminalTransition", NewTransitionError("rtgs_transfer", "r1", "returned", "complete", true), CodeTerminalState},
		{"PlainTransition", NewTransitionError("transaction", "t1", "pending", "complete", false), CodeInvalidTransition},
		{"UnknownError", errors.New("unknown error"), CodeInternalServer},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidIFSC), CodeInvalidIFSC},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestTransitionError(t *testing.T) {
	plain := NewTransitionError("transaction", "t1", "pending", "complete", false)
	if !errors.Is(plain, ErrInvalidStateTransition) {
		t.Errorf("errors.Is(plain, ErrInvalidStateTransition) = false, want true")
	}
	if errors.Is(plain, ErrTerminalStateViolation) {
		t.Errorf("non-terminal transition error must not match ErrTerminalStateViolation")
	}

	terminal := NewTransitionError("transaction", "t1", "failed", "begin processing", true)
	if !errors.Is(terminal, ErrTerminalStateViolation) || !errors.Is(terminal, ErrInvalidStateTransition) {
		t.Errorf("terminal transition error should match both sentinels")
	}

	expected := `transaction t1: cannot begin processing from terminal status "failed"`
	if terminal.Error() != expected {
		t.Errorf("TransitionError.Error() = %s, want %s", terminal.Error(), expected)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("rtgs", "ifsc", "XYZ", ErrInvalidIFSC)

	if !errors.Is(err, ErrInvalidIFSC) {
		t.Errorf("errors.Is(err, ErrInvalidIFSC) = false, want true")
	}
	if !IsValidationError(fmt.Errorf("outer: %w", err)) {
		t.Errorf("IsValidationError should see through wrapping")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As failed")
	}
	fields := ve.LogFields()
	if fields["error_code"] != CodeInvalidIFSC {
		t.Errorf("LogFields()[error_code] = %v, want %d", fields["error_code"], CodeInvalidIFSC)
	}
}

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Nil", nil, false},
		{"RailUnavailable", fmt.Errorf("submit: %w", ErrRailUnavailable), true},
		{"AggregateLocked", ErrAggregateLocked, true},
		{"DatabaseConnection", ErrDatabaseConnection, true},
		{"VersionConflict", NewConcurrentModificationError("transaction", "t1", 1, 2), false},
		{"Validation", ErrInvalidAccount, false},
		{"Timeout", ErrRailTimeout, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.expected {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.expected)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrTransactionNotFound, ErrTransferNotFound, ErrPaymentNotFound, ErrJobNotFound} {
		if !IsNotFoundError(fmt.Errorf("lookup: %w", err)) {
			t.Errorf("IsNotFoundError(%v) = false, want true", err)
		}
	}
	if IsNotFoundError(ErrInvalidAccount) {
		t.Errorf("IsNotFoundError(ErrInvalidAccount) = true, want false")
	}
}
