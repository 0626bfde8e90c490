package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UPIPayment represents the database model for UPI collect payments
type UPIPayment struct {
	ID             string          `gorm:"primaryKey;size:36"`
	TransactionID  string          `gorm:"not null;size:36;uniqueIndex"`
	PayerAccountID string          `gorm:"not null;size:64"`
	PayerVPA       string          `gorm:"not null;size:255"`
	PayeeVPA       string          `gorm:"not null;size:255"`
	Amount         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency       string          `gorm:"not null;size:3"`
	Note           string          `gorm:"type:text"`
	Status         string          `gorm:"not null;size:20;index"`
	NPCIReference  string          `gorm:"size:35"`
	FailureReason  string          `gorm:"type:text"`
	ExpiresAt      *time.Time
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	Version        int64     `gorm:"not null;default:0"`
}

// TableName specifies the table name for UPIPayment
func (UPIPayment) TableName() string {
	return "upi_payments"
}
