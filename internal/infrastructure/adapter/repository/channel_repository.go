package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RTGSTransferRepository implements RTGSTransferRepository using GORM
type RTGSTransferRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.RTGSTransferRepository = (*RTGSTransferRepository)(nil)

// NewRTGSTransferRepository creates a new RTGSTransferRepository instance
func NewRTGSTransferRepository(db *gorm.DB, logger coreport.Logger) *RTGSTransferRepository {
	return &RTGSTransferRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transferToModel(s entity.RTGSTransferSnapshot) model.RTGSTransfer {
	return model.RTGSTransfer{
		ID:                 s.ID,
		TransactionID:      s.TransactionID,
		CustomerID:         s.CustomerID,
		SenderAccountID:    s.SenderAccountID,
		BeneficiaryAccount: s.BeneficiaryAccount,
		BeneficiaryIFSC:    s.BeneficiaryIFSC,
		BeneficiaryName:    s.BeneficiaryName,
		Amount:             s.Amount.Amount(),
		Currency:           string(s.Amount.Currency()),
		Remarks:            s.Remarks,
		IdempotencyKey:     s.IdempotencyKey,
		Status:             string(s.Status),
		UTR:                s.UTR,
		ReturnReason:       string(s.ReturnReason),
		FailureReason:      s.FailureReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		Version:            s.Version,
	}
}

func transferFromModel(row *model.RTGSTransfer) (*entity.RTGSTransfer, error) {
	amount, err := moneyFromColumns(row.Amount, row.Currency)
	if err != nil {
		return nil, err
	}
	return entity.RestoreRTGSTransfer(entity.RTGSTransferSnapshot{
		ID:                 row.ID,
		TransactionID:      row.TransactionID,
		CustomerID:         row.CustomerID,
		SenderAccountID:    row.SenderAccountID,
		BeneficiaryAccount: row.BeneficiaryAccount,
		BeneficiaryIFSC:    row.BeneficiaryIFSC,
		BeneficiaryName:    row.BeneficiaryName,
		Amount:             amount,
		Remarks:            row.Remarks,
		IdempotencyKey:     row.IdempotencyKey,
		Status:             entity.RTGSStatus(row.Status),
		UTR:                row.UTR,
		ReturnReason:       entity.ReturnReason(row.ReturnReason),
		FailureReason:      row.FailureReason,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
		Version:            row.Version,
	}), nil
}

// Create saves a new transfer
func (r *RTGSTransferRepository) Create(ctx context.Context, transfer *entity.RTGSTransfer) error {
	row := transferToModel(transfer.Snapshot())
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate RTGS transfer", map[string]any{
				"transfer_id":     row.ID,
				"customer_id":     row.CustomerID,
				"idempotency_key": row.IdempotencyKey,
			})
		} else {
			r.logger.Error("Failed to create RTGS transfer", map[string]any{
				"transfer_id": row.ID,
				"error":       err.Error(),
			})
		}
		return r.errorClassifier.ToDomain(err)
	}
	return nil
}

// Load retrieves a transfer by ID
func (r *RTGSTransferRepository) Load(ctx context.Context, transferID string) (*entity.RTGSTransfer, error) {
	var row model.RTGSTransfer
	err := r.db.WithContext(ctx).Where("id = ?", transferID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", errs.ErrTransferNotFound, transferID)
	}
	if err != nil {
		return nil, r.errorClassifier.ToDomain(err)
	}
	return transferFromModel(&row)
}

// Save persists the transfer if the stored version equals expectedVersion
func (r *RTGSTransferRepository) Save(ctx context.Context, transfer *entity.RTGSTransfer, expectedVersion int64) error {
	row := transferToModel(transfer.Snapshot())
	result := r.db.WithContext(ctx).Model(&model.RTGSTransfer{}).
		Where("id = ? AND version = ?", row.ID, expectedVersion).
		Updates(map[string]any{
			"transaction_id": row.TransactionID,
			"status":         row.Status,
			"utr":            row.UTR,
			"return_reason":  row.ReturnReason,
			"failure_reason": row.FailureReason,
			"updated_at":     row.UpdatedAt,
			"version":        row.Version,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update RTGS transfer", map[string]any{
			"transfer_id": row.ID,
			"error":       result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var current model.RTGSTransfer
	err := r.db.WithContext(ctx).Select("version").Where("id = ?", row.ID).First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", errs.ErrTransferNotFound, row.ID)
	}
	if err != nil {
		return r.errorClassifier.ToDomain(err)
	}
	return errs.NewConcurrentModificationError(entity.AggregateRTGS, row.ID, expectedVersion, current.Version)
}

// FindByIdempotencyKey returns the transfer a customer created with key
func (r *RTGSTransferRepository) FindByIdempotencyKey(ctx context.Context, customerID, key string) (*entity.RTGSTransfer, error) {
	var row model.RTGSTransfer
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND idempotency_key = ?", customerID, key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: idempotency key %s", errs.ErrTransferNotFound, key)
	}
	if err != nil {
		return nil, r.errorClassifier.ToDomain(err)
	}
	return transferFromModel(&row)
}

// SumDailyAmount totals the customer's live transfers created on day (UTC)
func (r *RTGSTransferRepository) SumDailyAmount(ctx context.Context, customerID string, day time.Time, currency entity.Currency) (entity.Money, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.RTGSTransfer{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("customer_id = ? AND currency = ?", customerID, string(currency)).
		Where("status NOT IN ?", []string{string(entity.RTGSFailed), string(entity.RTGSReturned)}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Row().Scan(&total)
	if err != nil {
		r.logger.Error("Failed to sum daily RTGS amount", map[string]any{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		return entity.Money{}, r.errorClassifier.ToDomain(err)
	}
	return moneyFromColumns(total, string(currency))
}

// UPIPaymentRepository implements UPIPaymentRepository using GORM
type UPIPaymentRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.UPIPaymentRepository = (*UPIPaymentRepository)(nil)

// NewUPIPaymentRepository creates a new UPIPaymentRepository instance
func NewUPIPaymentRepository(db *gorm.DB, logger coreport.Logger) *UPIPaymentRepository {
	return &UPIPaymentRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func paymentToModel(s entity.UPIPaymentSnapshot) model.UPIPayment {
	return model.UPIPayment{
		ID:             s.ID,
		TransactionID:  s.TransactionID,
		PayerAccountID: s.PayerAccountID,
		PayerVPA:       s.PayerVPA,
		PayeeVPA:       s.PayeeVPA,
		Amount:         s.Amount.Amount(),
		Currency:       string(s.Amount.Currency()),
		Note:           s.Note,
		Status:         string(s.Status),
		NPCIReference:  s.NPCIReference,
		FailureReason:  s.FailureReason,
		ExpiresAt:      s.ExpiresAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Version:        s.Version,
	}
}

func paymentFromModel(row *model.UPIPayment) (*entity.UPIPayment, error) {
	amount, err := moneyFromColumns(row.Amount, row.Currency)
	if err != nil {
		return nil, err
	}
	return entity.RestoreUPIPayment(entity.UPIPaymentSnapshot{
		ID:             row.ID,
		TransactionID:  row.TransactionID,
		PayerAccountID: row.PayerAccountID,
		PayerVPA:       row.PayerVPA,
		PayeeVPA:       row.PayeeVPA,
		Amount:         amount,
		Note:           row.Note,
		Status:         entity.UPIStatus(row.Status),
		NPCIReference:  row.NPCIReference,
		FailureReason:  row.FailureReason,
		ExpiresAt:      row.ExpiresAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		Version:        row.Version,
	}), nil
}

// Create saves a new payment
func (r *UPIPaymentRepository) Create(ctx context.Context, payment *entity.UPIPayment) error {
	row := paymentToModel(payment.Snapshot())
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logger.Error("Failed to create UPI payment", map[string]any{
			"payment_id": row.ID,
			"error":      err.Error(),
		})
		return r.errorClassifier.ToDomain(err)
	}
	return nil
}

// Load retrieves a payment by ID
func (r *UPIPaymentRepository) Load(ctx context.Context, paymentID string) (*entity.UPIPayment, error) {
	var row model.UPIPayment
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", errs.ErrPaymentNotFound, paymentID)
	}
	if err != nil {
		return nil, r.errorClassifier.ToDomain(err)
	}
	return paymentFromModel(&row)
}

// Save persists the payment if the stored version equals expectedVersion
func (r *UPIPaymentRepository) Save(ctx context.Context, payment *entity.UPIPayment, expectedVersion int64) error {
	row := paymentToModel(payment.Snapshot())
	result := r.db.WithContext(ctx).Model(&model.UPIPayment{}).
		Where("id = ? AND version = ?", row.ID, expectedVersion).
		Updates(map[string]any{
			"status":         row.Status,
			"npci_reference": row.NPCIReference,
			"failure_reason": row.FailureReason,
			"expires_at":     row.ExpiresAt,
			"updated_at":     row.UpdatedAt,
			"version":        row.Version,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update UPI payment", map[string]any{
			"payment_id": row.ID,
			"error":      result.Error.Error(),
		})
		return r.errorClassifier.ToDomain(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var current model.UPIPayment
	err := r.db.WithContext(ctx).Select("version").Where("id = ?", row.ID).First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", errs.ErrPaymentNotFound, row.ID)
	}
	if err != nil {
		return r.errorClassifier.ToDomain(err)
	}
	return errs.NewConcurrentModificationError(entity.AggregateUPI, row.ID, expectedVersion, current.Version)
}
