package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest       = 4000
	CodeInvalidAmount        = 4001
	CodeCurrencyMismatch     = 4002
	CodeNegativeResult       = 4003
	CodeUnbalancedLegs       = 4004
	CodeInvalidLeg           = 4005
	CodeAmountBelowMinimum   = 4006
	CodeLimitExceeded        = 4007
	CodeInvalidAccount       = 4008
	CodeInvalidIFSC          = 4009
	CodeInvalidReturnReason  = 4010
	CodeInvalidUPIID         = 4011
	CodeAmountExceedsCeiling = 4012
	CodeRefundExceedsAmount  = 4013
	CodeNotFound             = 4040
	CodeInvalidTransition    = 4090
	CodeTerminalState        = 4091
	CodeConcurrentUpdate     = 4092
	CodeJobAlreadyRunning    = 4093
	CodeDuplicateTransaction = 4094
	CodeAlreadyRefunded      = 4095
	CodeAggregateLocked      = 4230

	// 5xxx - Server errors
	CodeInternalServer  = 5000
	CodeRailUnavailable = 5030
	CodeRailTimeout     = 5040
)

// Money errors
var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as a decimal
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a money value would be constructed below zero
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrUnsupportedCurrency is returned for currencies outside the supported set
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrCurrencyMismatch is returned when arithmetic mixes two currencies
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrNegativeResult is returned when a subtraction would go below zero
	ErrNegativeResult = errors.New("operation would produce a negative amount")
)

// Transaction errors
var (
	// ErrInvalidLeg is returned when a leg violates its own balance invariant
	ErrInvalidLeg = errors.New("invalid transaction leg")

	// ErrUnbalancedLegs is returned when debits and credits do not net to zero
	ErrUnbalancedLegs = errors.New("transaction legs are unbalanced")

	// ErrInvalidStateTransition is returned when an operation is not allowed from the current status
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrTerminalStateViolation is returned when an aggregate in a terminal status is mutated
	ErrTerminalStateViolation = errors.New("aggregate is in a terminal state")

	// ErrConcurrentModification is returned when the caller's version is stale
	ErrConcurrentModification = errors.New("concurrent modification detected")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateTransaction is returned when a transaction with the same ID already exists
	ErrDuplicateTransaction = errors.New("transaction with this ID already exists")

	// ErrRefundExceedsAmount is returned when cumulative refunds would exceed the original amount
	ErrRefundExceedsAmount = errors.New("refund exceeds original amount")

	// ErrAlreadyRefunded is returned when reversing a transaction that has completed refunds
	ErrAlreadyRefunded = errors.New("transaction has completed refunds")

	// ErrAccountNotFound is returned when a ledger account doesn't exist
	ErrAccountNotFound = errors.New("account not found")
)

// RTGS errors
var (
	ErrAmountBelowMinimum  = errors.New("amount below rail minimum")
	ErrLimitExceeded       = errors.New("amount exceeds rail limit")
	ErrInvalidAccount      = errors.New("invalid beneficiary account number")
	ErrInvalidIFSC         = errors.New("invalid IFSC code")
	ErrInvalidReturnReason = errors.New("invalid return reason")
	ErrTransferNotFound    = errors.New("rtgs transfer not found")
)

// UPI errors
var (
	ErrInvalidUPIID         = errors.New("invalid UPI id")
	ErrAmountExceedsCeiling = errors.New("amount exceeds UPI ceiling")
	ErrPaymentNotFound      = errors.New("upi payment not found")
)

// Settlement executor errors
var (
	// ErrJobNotFound is returned for unknown or purged job ids
	ErrJobNotFound = errors.New("job not found")

	// ErrJobAlreadyRunning is returned when cancelling a job that has started
	ErrJobAlreadyRunning = errors.New("job already running")

	// ErrExecutorStopped is returned when submitting to an executor that is shutting down
	ErrExecutorStopped = errors.New("settlement executor stopped")

	// ErrJobPanicked wraps a recovered panic from a job body
	ErrJobPanicked = errors.New("job panicked")

	// ErrAggregateLocked is returned when a distributed aggregate lock is held elsewhere
	ErrAggregateLocked = errors.New("aggregate is locked by another worker")
)

// Collaborator errors
var (
	// ErrRailUnavailable is returned when a rail connector cannot be reached
	ErrRailUnavailable = errors.New("payment rail unavailable")

	// ErrRailTimeout is returned when a rail call exceeds its deadline
	ErrRailTimeout = errors.New("payment rail timeout")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrUnsupportedCurrency):
		return CodeInvalidAmount
	case errors.Is(err, ErrCurrencyMismatch):
		return CodeCurrencyMismatch
	case errors.Is(err, ErrNegativeResult):
		return CodeNegativeResult
	case errors.Is(err, ErrUnbalancedLegs):
		return CodeUnbalancedLegs
	case errors.Is(err, ErrInvalidLeg):
		return CodeInvalidLeg
	case errors.Is(err, ErrAmountBelowMinimum):
		return CodeAmountBelowMinimum
	case errors.Is(err, ErrLimitExceeded):
		return CodeLimitExceeded
	case errors.Is(err, ErrInvalidAccount):
		return CodeInvalidAccount
	case errors.Is(err, ErrInvalidIFSC):
		return CodeInvalidIFSC
	case errors.Is(err, ErrInvalidReturnReason):
		return CodeInvalidReturnReason
	case errors.Is(err, ErrInvalidUPIID):
		return CodeInvalidUPIID
	case errors.Is(err, ErrAmountExceedsCeiling):
		return CodeAmountExceedsCeiling
	case errors.Is(err, ErrRefundExceedsAmount):
		return CodeRefundExceedsAmount
	case IsNotFoundError(err):
		return CodeNotFound
	// terminal is checked first: a terminal TransitionError matches both
	case errors.Is(err, ErrTerminalStateViolation):
		return CodeTerminalState
	case errors.Is(err, ErrInvalidStateTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrConcurrentModification):
		return CodeConcurrentUpdate
	case errors.Is(err, ErrJobAlreadyRunning):
		return CodeJobAlreadyRunning
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrAlreadyRefunded):
		return CodeAlreadyRefunded
	case errors.Is(err, ErrAggregateLocked):
		return CodeAggregateLocked
	case errors.Is(err, ErrRailUnavailable):
		return CodeRailUnavailable
	case errors.Is(err, ErrRailTimeout):
		return CodeRailTimeout
	default:
		return CodeInternalServer
	}
}

// TransitionError describes a rejected state-machine transition.
// It matches ErrInvalidStateTransition, and ErrTerminalStateViolation when
// the aggregate was already terminal.
type TransitionError struct {
	Entity   string
	ID       string
	From     string
	Action   string
	Terminal bool
}

// Error implements the error interface
func (e *TransitionError) Error() string {
	if e.Terminal {
		return fmt.Sprintf("%s %s: cannot %s from terminal status %q", e.Entity, e.ID, e.Action, e.From)
	}
	return fmt.Sprintf("%s %s: cannot %s from status %q", e.Entity, e.ID, e.Action, e.From)
}

// Is reports whether target is one of the transition sentinels
func (e *TransitionError) Is(target error) bool {
	if target == ErrInvalidStateTransition {
		return true
	}
	return e.Terminal && target == ErrTerminalStateViolation
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "transition_error",
		"entity":     e.Entity,
		"id":         e.ID,
		"from":       e.From,
		"action":     e.Action,
		"terminal":   e.Terminal,
		"error_code": ErrorCode(e),
	}
}

// NewTransitionError creates a transition error
func NewTransitionError(entity, id, from, action string, terminal bool) error {
	return &TransitionError{Entity: entity, ID: id, From: from, Action: action, Terminal: terminal}
}

// ConcurrentModificationError carries the version the caller expected and the one found
type ConcurrentModificationError struct {
	Entity   string
	ID       string
	Expected int64
	Actual   int64
}

// Error implements the error interface
func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("concurrent modification of %s %s: expected version %d, found %d",
		e.Entity, e.ID, e.Expected, e.Actual)
}

// Is checks if the target error is an ErrConcurrentModification
func (e *ConcurrentModificationError) Is(target error) bool {
	return target == ErrConcurrentModification
}

// LogFields returns a map of fields for structured logging
func (e *ConcurrentModificationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "concurrent_modification",
		"entity":           e.Entity,
		"id":               e.ID,
		"expected_version": e.Expected,
		"actual_version":   e.Actual,
		"error_code":       CodeConcurrentUpdate,
	}
}

// NewConcurrentModificationError creates a version conflict error
func NewConcurrentModificationError(entity, id string, expected, actual int64) error {
	return &ConcurrentModificationError{Entity: entity, ID: id, Expected: expected, Actual: actual}
}

// ValidationError represents a rejected channel request
type ValidationError struct {
	Channel string
	Field   string
	Value   string
	Err     error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed on %s=%q: %v", e.Channel, e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"channel":    e.Channel,
		"field":      e.Field,
		"value":      e.Value,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewValidationError creates a validation error for a channel field
func NewValidationError(channel, field, value string, err error) error {
	return &ValidationError{Channel: channel, Field: field, Value: value, Err: err}
}

// JobError represents a settlement job that exhausted its attempts
type JobError struct {
	JobID    string
	Name     string
	Attempts int
	Err      error
}

// Error implements the error interface for JobError
func (e *JobError) Error() string {
	return fmt.Sprintf("job %s (%s) failed after %d attempt(s): %v", e.JobID, e.Name, e.Attempts, e.Err)
}

// Unwrap returns the underlying error
func (e *JobError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *JobError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "job_error",
		"job_id":     e.JobID,
		"job_name":   e.Name,
		"attempts":   e.Attempts,
		"error":      e.Err.Error(),
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransferNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrJobNotFound)
}

// IsConcurrentModification checks if the error is a version conflict
func IsConcurrentModification(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// IsValidationError checks if the error was raised while validating a channel request
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRetryable reports whether a settlement job may be attempted again after err.
// Version conflicts are never retried automatically.
func IsRetryable(err error) bool {
	if err == nil || IsConcurrentModification(err) {
		return false
	}
	return errors.Is(err, ErrRailUnavailable) ||
		errors.Is(err, ErrAggregateLocked) ||
		errors.Is(err, ErrDatabaseConnection)
}

// LogFieldsOf returns the structured fields of the first rich error in the
// chain, or just the message for plain errors. The map is always fresh.
func LogFieldsOf(err error) map[string]any {
	var rich interface{ LogFields() map[string]any }
	if errors.As(err, &rich) {
		fields := rich.LogFields()
		fields["error"] = err.Error()
		return fields
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}
