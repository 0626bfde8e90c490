package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction snapshot to a database model
func (r *TransactionRepository) entityToModel(snap entity.TransactionSnapshot) (model.Transaction, error) {
	legs, err := legsToJSON(snap.Legs)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: encoding legs of %s: %s", errs.ErrInternalServer, snap.ID, err.Error())
	}
	return model.Transaction{
		ID:                    snap.ID,
		Type:                  string(snap.Type),
		Status:                string(snap.Status),
		Priority:              snap.Priority,
		Amount:                snap.Amount.Amount(),
		Currency:              string(snap.Amount.Currency()),
		ReferenceNumber:       snap.ReferenceNumber,
		FromAccountID:         snap.FromAccountID,
		ToAccountID:           snap.ToAccountID,
		OriginalTransactionID: snap.OriginalTransactionID,
		Legs:                  legs,
		Channel:               string(snap.Channel),
		InitiatedAt:           snap.InitiatedAt,
		ProcessedAt:           snap.ProcessedAt,
		CompletedAt:           snap.CompletedAt,
		InitiatedBy:           snap.InitiatedBy,
		AuthorizedBy:          snap.AuthorizedBy,
		FailureReason:         snap.FailureReason,
		RetryCount:            snap.RetryCount,
		Metadata:              datatypes.JSONMap(snap.Metadata),
		Version:               snap.Version,
	}, nil
}

// modelToEntity converts a transaction model to an aggregate
func (r *TransactionRepository) modelToEntity(row *model.Transaction) (*entity.Transaction, error) {
	amount, err := moneyFromColumns(row.Amount, row.Currency)
	if err != nil {
		return nil, err
	}
	legs, err := legsFromJSON(row.Legs, amount.Currency())
	if err != nil {
		return nil, fmt.Errorf("%w: decoding legs of %s: %s", errs.ErrInternalServer, row.ID, err.Error())
	}

	return entity.RestoreTransaction(entity.TransactionSnapshot{
		ID:                    row.ID,
		Type:                  entity.TransactionType(row.Type),
		Status:                entity.TransactionStatus(row.Status),
		Priority:              row.Priority,
		Amount:                amount,
		ReferenceNumber:       row.ReferenceNumber,
		FromAccountID:         row.FromAccountID,
		ToAccountID:           row.ToAccountID,
		OriginalTransactionID: row.OriginalTransactionID,
		Legs:                  legs,
		Channel:               entity.Channel(row.Channel),
		InitiatedAt:           row.InitiatedAt,
		ProcessedAt:           row.ProcessedAt,
		CompletedAt:           row.CompletedAt,
		InitiatedBy:           row.InitiatedBy,
		AuthorizedBy:          row.AuthorizedBy,
		FailureReason:         row.FailureReason,
		RetryCount:            row.RetryCount,
		Metadata:              map[string]any(row.Metadata),
		Version:               row.Version,
	}), nil
}

// Create saves a new transaction together with its legs
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	row, err := r.entityToModel(transaction.Snapshot())
	if err != nil {
		return err
	}

	r.logger.Debug("Creating transaction", map[string]any{
		"transaction_id": row.ID,
		"type":           row.Type,
		"channel":        row.Channel,
	})

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"transaction_id": row.ID,
			})
			return fmt.Errorf("%w: transaction %s", errs.ErrDuplicateTransaction, row.ID)
		}
		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": row.ID,
			"error":          err.Error(),
		})
		return r.errorClassifier.ToDomain(err)
	}
	return nil
}

// Load retrieves a transaction by ID
func (r *TransactionRepository) Load(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	var row model.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", transactionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", errs.ErrTransactionNotFound, transactionID)
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
		return nil, r.errorClassifier.ToDomain(err)
	}
	return r.modelToEntity(&row)
}

// Save updates the mutable columns of the transaction when the stored
// version still equals expectedVersion
func (r *TransactionRepository) Save(ctx context.Context, transaction *entity.Transaction, expectedVersion int64) error {
	row, err := r.entityToModel(transaction.Snapshot())
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND version = ?", row.ID, expectedVersion).
		Updates(map[string]any{
			"status":         row.Status,
			"legs":           row.Legs,
			"processed_at":   row.ProcessedAt,
			"completed_at":   row.CompletedAt,
			"authorized_by":  row.AuthorizedBy,
			"failure_reason": row.FailureReason,
			"retry_count":    row.RetryCount,
			"metadata":       row.Metadata,
			"version":        row.Version,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update transaction", map[string]any{
			"transaction_id": row.ID,
			"error":          result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.conflict(ctx, row.ID, expectedVersion)
	}

	r.logger.Debug("Transaction updated", map[string]any{
		"transaction_id": row.ID,
		"status":         row.Status,
		"version":        row.Version,
	})
	return nil
}

// conflict explains why a versioned update matched no row
func (r *TransactionRepository) conflict(ctx context.Context, transactionID string, expectedVersion int64) error {
	var current model.Transaction
	err := r.db.WithContext(ctx).Select("version").Where("id = ?", transactionID).First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", errs.ErrTransactionNotFound, transactionID)
	}
	if err != nil {
		return r.errorClassifier.ToDomain(err)
	}
	r.logger.Warn("Stale transaction version", map[string]any{
		"transaction_id":   transactionID,
		"expected_version": expectedVersion,
		"actual_version":   current.Version,
	})
	return errs.NewConcurrentModificationError(entity.AggregateTransaction, transactionID, expectedVersion, current.Version)
}

// ListLinked returns refunds and reversals of originalTransactionID, oldest first
func (r *TransactionRepository) ListLinked(ctx context.Context, originalTransactionID string) ([]*entity.Transaction, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Where("original_transaction_id = ?", originalTransactionID).
		Order("initiated_at, id").
		Find(&rows).Error
	if err != nil {
		r.logger.Error("Failed to list linked transactions", map[string]any{
			"transaction_id": originalTransactionID,
			"error":          err.Error(),
		})
		return nil, r.errorClassifier.ToDomain(err)
	}

	linked := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		tx, err := r.modelToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		linked = append(linked, tx)
	}
	return linked, nil
}

func legsToJSON(legs []entity.TransactionLeg) (datatypes.JSON, error) {
	out := make([]model.Leg, 0, len(legs))
	for _, leg := range legs {
		out = append(out, model.Leg{
			ID:            leg.ID,
			AccountID:     leg.AccountID,
			Type:          string(leg.Type),
			Amount:        leg.Amount.Amount(),
			BalanceBefore: leg.BalanceBefore.Amount(),
			BalanceAfter:  leg.BalanceAfter.Amount(),
			Description:   leg.Description,
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// legsFromJSON decodes stored legs. Legs always share the transaction currency.
func legsFromJSON(raw datatypes.JSON, currency entity.Currency) ([]entity.TransactionLeg, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var stored []model.Leg
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	legs := make([]entity.TransactionLeg, 0, len(stored))
	for _, s := range stored {
		amount, err := moneyFromColumns(s.Amount, string(currency))
		if err != nil {
			return nil, err
		}
		before, err := moneyFromColumns(s.BalanceBefore, string(currency))
		if err != nil {
			return nil, err
		}
		after, err := moneyFromColumns(s.BalanceAfter, string(currency))
		if err != nil {
			return nil, err
		}
		legs = append(legs, entity.TransactionLeg{
			ID:            s.ID,
			AccountID:     s.AccountID,
			Type:          entity.LegType(s.Type),
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  after,
			Description:   s.Description,
		})
	}
	return legs, nil
}
