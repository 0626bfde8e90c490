package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// RTGSTransferRepository keeps RTGS transfers in a Store
type RTGSTransferRepository struct {
	store *Store
	unit  *unit
}

func lookupTransfer(staged, committed *tables, id string) (entity.RTGSTransferSnapshot, bool) {
	if staged != nil {
		if snap, ok := staged.rtgs[id]; ok {
			return snap, true
		}
	}
	snap, ok := committed.rtgs[id]
	return snap, ok
}

// eachTransfer visits every visible transfer once, staged versions first
func eachTransfer(staged, committed *tables, fn func(entity.RTGSTransferSnapshot) bool) {
	seen := make(map[string]bool)
	for _, source := range []*tables{staged, committed} {
		if source == nil {
			continue
		}
		for id, snap := range source.rtgs {
			if seen[id] {
				continue
			}
			seen[id] = true
			if !fn(snap) {
				return
			}
		}
	}
}

// Create saves a new transfer
func (r *RTGSTransferRepository) Create(_ context.Context, transfer *entity.RTGSTransfer) error {
	snap := transfer.Snapshot()
	return r.store.write(r.unit, func(target, committed *tables) error {
		if _, exists := lookupTransfer(target, committed, snap.ID); exists {
			return fmt.Errorf("%w: transfer %s", errs.ErrDuplicateTransaction, snap.ID)
		}
		if snap.IdempotencyKey != "" {
			var dup bool
			eachTransfer(target, committed, func(other entity.RTGSTransferSnapshot) bool {
				dup = other.CustomerID == snap.CustomerID && other.IdempotencyKey == snap.IdempotencyKey
				return !dup
			})
			if dup {
				return fmt.Errorf("%w: idempotency key %s", errs.ErrDuplicateTransaction, snap.IdempotencyKey)
			}
		}
		target.rtgs[snap.ID] = snap
		return nil
	})
}

// Load retrieves a transfer by ID
func (r *RTGSTransferRepository) Load(_ context.Context, transferID string) (*entity.RTGSTransfer, error) {
	var snap entity.RTGSTransferSnapshot
	err := r.store.view(r.unit, func(staged, committed *tables) error {
		var ok bool
		if snap, ok = lookupTransfer(staged, committed, transferID); !ok {
			return fmt.Errorf("%w: %s", errs.ErrTransferNotFound, transferID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity.RestoreRTGSTransfer(snap), nil
}

// Save persists the transfer if the stored version equals expectedVersion
func (r *RTGSTransferRepository) Save(_ context.Context, transfer *entity.RTGSTransfer, expectedVersion int64) error {
	snap := transfer.Snapshot()
	return r.store.write(r.unit, func(target, committed *tables) error {
		current, ok := lookupTransfer(target, committed, snap.ID)
		if !ok {
			return fmt.Errorf("%w: %s", errs.ErrTransferNotFound, snap.ID)
		}
		if current.Version != expectedVersion {
			return errs.NewConcurrentModificationError(entity.AggregateRTGS, snap.ID, expectedVersion, current.Version)
		}
		target.rtgs[snap.ID] = snap
		return nil
	})
}

// FindByIdempotencyKey returns the transfer a customer created with key
func (r *RTGSTransferRepository) FindByIdempotencyKey(_ context.Context, customerID, key string) (*entity.RTGSTransfer, error) {
	var found *entity.RTGSTransferSnapshot
	err := r.store.view(r.unit, func(staged, committed *tables) error {
		eachTransfer(staged, committed, func(snap entity.RTGSTransferSnapshot) bool {
			if snap.CustomerID == customerID && snap.IdempotencyKey == key {
				found = &snap
				return false
			}
			return true
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: idempotency key %s", errs.ErrTransferNotFound, key)
	}
	return entity.RestoreRTGSTransfer(*found), nil
}

// SumDailyAmount totals the customer's live transfers created on day (UTC)
func (r *RTGSTransferRepository) SumDailyAmount(_ context.Context, customerID string, day time.Time, currency entity.Currency) (entity.Money, error) {
	total := entity.ZeroMoney(currency)
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	err := r.store.view(r.unit, func(staged, committed *tables) error {
		var sumErr error
		eachTransfer(staged, committed, func(snap entity.RTGSTransferSnapshot) bool {
			if snap.CustomerID != customerID || snap.Amount.Currency() != currency {
				return true
			}
			if snap.Status == entity.RTGSFailed || snap.Status == entity.RTGSReturned {
				return true
			}
			created := snap.CreatedAt.UTC()
			if created.Before(start) || !created.Before(end) {
				return true
			}
			total, sumErr = total.Add(snap.Amount)
			return sumErr == nil
		})
		return sumErr
	})
	return total, err
}

// UPIPaymentRepository keeps UPI payments in a Store
type UPIPaymentRepository struct {
	store *Store
	unit  *unit
}

func lookupPayment(staged, committed *tables, id string) (entity.UPIPaymentSnapshot, bool) {
	if staged != nil {
		if snap, ok := staged.upi[id]; ok {
			return snap, true
		}
	}
	snap, ok := committed.upi[id]
	return snap, ok
}

// Create saves a new payment
func (r *UPIPaymentRepository) Create(_ context.Context, payment *entity.UPIPayment) error {
	snap := payment.Snapshot()
	return r.store.write(r.unit, func(target, committed *tables) error {
		if _, exists := lookupPayment(target, committed, snap.ID); exists {
			return fmt.Errorf("%w: payment %s", errs.ErrDuplicateTransaction, snap.ID)
		}
		target.upi[snap.ID] = snap
		return nil
	})
}

// Load retrieves a payment by ID
func (r *UPIPaymentRepository) Load(_ context.Context, paymentID string) (*entity.UPIPayment, error) {
	var snap entity.UPIPaymentSnapshot
	err := r.store.view(r.unit, func(staged, committed *tables) error {
		var ok bool
		if snap, ok = lookupPayment(staged, committed, paymentID); !ok {
			return fmt.Errorf("%w: %s", errs.ErrPaymentNotFound, paymentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity.RestoreUPIPayment(snap), nil
}

// Save persists the payment if the stored version equals expectedVersion
func (r *UPIPaymentRepository) Save(_ context.Context, payment *entity.UPIPayment, expectedVersion int64) error {
	snap := payment.Snapshot()
	return r.store.write(r.unit, func(target, committed *tables) error {
		current, ok := lookupPayment(target, committed, snap.ID)
		if !ok {
			return fmt.Errorf("%w: %s", errs.ErrPaymentNotFound, snap.ID)
		}
		if current.Version != expectedVersion {
			return errs.NewConcurrentModificationError(entity.AggregateUPI, snap.ID, expectedVersion, current.Version)
		}
		target.upi[snap.ID] = snap
		return nil
	})
}
