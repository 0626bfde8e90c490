package database

import (
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	EntityTypeTransaction  EntityType = "transaction"
	EntityTypeAccount      EntityType = "account"
	EntityTypeRTGSTransfer EntityType = "rtgs_transfer"
	EntityTypeUPIPayment   EntityType = "upi_payment"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error raised by operation to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	// serialization failures are retried by the settlement executor
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "could not serialize") ||
		strings.Contains(errMsg, "lock timeout"):
		return fmt.Errorf("%w: %s: %s", errs.ErrAggregateLocked, operation, err.Error())

	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		return fmt.Errorf("%w: %s", errs.ErrDuplicateTransaction, err.Error())

	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())

	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", errs.ErrDatabaseConnection, operation)

	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrInternalServer, operation, err.Error())
	}
}

// MapEntityNotFoundError maps a missing row to the not-found error of entityType
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeTransaction:
			return errs.ErrTransactionNotFound
		case EntityTypeAccount:
			return errs.ErrAccountNotFound
		case EntityTypeRTGSTransfer:
			return errs.ErrTransferNotFound
		case EntityTypeUPIPayment:
			return errs.ErrPaymentNotFound
		default:
			return errs.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}
