package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository implements AccountRepository interface using GORM
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Account not found", map[string]any{
			"account_id": accountID,
		})
		return fmt.Errorf("%w: %s", errs.ErrAccountNotFound, accountID)
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	})
	return r.errorClassifier.ToDomain(err)
}

// Get retrieves an account by ID. The row stays locked until the
// surrounding unit of work ends.
func (r *AccountRepository) Get(ctx context.Context, accountID string) (*entity.Account, error) {
	var row model.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", accountID).
		First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting account", err, accountID)
	}

	balance, err := moneyFromColumns(row.Balance, row.Currency)
	if err != nil {
		return nil, err
	}
	return entity.RestoreAccount(row.ID, balance, row.Version, row.CreatedAt, row.UpdatedAt), nil
}

// Create opens a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	row := model.Account{
		ID:        account.ID,
		Balance:   account.Balance().Amount(),
		Currency:  string(account.Currency()),
		Version:   account.Version(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: account %s already exists", errs.ErrConstraintViolation, account.ID)
		}
		return r.handleDatabaseError("creating account", err, account.ID)
	}

	r.logger.Info("Account created", map[string]any{
		"account_id": row.ID,
		"balance":    account.Balance().String(),
	})
	return nil
}

// Save persists the balance if the stored version equals expectedVersion
func (r *AccountRepository) Save(ctx context.Context, account *entity.Account, expectedVersion int64) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND version = ?", account.ID, expectedVersion).
		Updates(map[string]any{
			"balance":    account.Balance().Amount(),
			"version":    account.Version(),
			"updated_at": account.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating account", result.Error, account.ID)
	}

	if result.RowsAffected == 0 {
		var current model.Account
		err := r.db.WithContext(ctx).Select("version").Where("id = ?", account.ID).First(&current).Error
		if err != nil {
			return r.handleDatabaseError("checking account version", err, account.ID)
		}
		return errs.NewConcurrentModificationError("account", account.ID, expectedVersion, current.Version)
	}

	r.logger.Debug("Account balance updated", map[string]any{
		"account_id": account.ID,
		"balance":    account.Balance().String(),
		"version":    account.Version(),
	})
	return nil
}
