package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RTGSTransfer represents the database model for RTGS transfers
type RTGSTransfer struct {
	ID                 string          `gorm:"primaryKey;size:36"`
	TransactionID      string          `gorm:"not null;size:36;uniqueIndex"`
	CustomerID         string          `gorm:"not null;size:64;index:idx_rtgs_customer_created"`
	SenderAccountID    string          `gorm:"not null;size:64"`
	BeneficiaryAccount string          `gorm:"not null;size:18"`
	BeneficiaryIFSC    string          `gorm:"not null;size:11"`
	BeneficiaryName    string          `gorm:"not null;size:140"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency           string          `gorm:"not null;size:3"`
	Remarks            string          `gorm:"type:text"`
	IdempotencyKey     string          `gorm:"size:128"`
	Status             string          `gorm:"not null;size:20;index"`
	UTR                string          `gorm:"size:32"`
	ReturnReason       string          `gorm:"size:32"`
	FailureReason      string          `gorm:"type:text"`
	CreatedAt          time.Time       `gorm:"not null;index:idx_rtgs_customer_created"`
	UpdatedAt          time.Time       `gorm:"not null"`
	Version            int64           `gorm:"not null;default:0"`
}

// TableName specifies the table name for RTGSTransfer
func (RTGSTransfer) TableName() string {
	return "rtgs_transfers"
}
