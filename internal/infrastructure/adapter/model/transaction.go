package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction represents the database model for ledger transactions
type Transaction struct {
	ID                    string          `gorm:"primaryKey;size:36"`
	Type                  string          `gorm:"not null;size:20"`
	Status                string          `gorm:"not null;size:20;index"`
	Priority              int             `gorm:"not null;default:0"`
	Amount                decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency              string          `gorm:"not null;size:3"`
	ReferenceNumber       string          `gorm:"not null;size:32;index"`
	FromAccountID         string          `gorm:"not null;size:64;index"`
	ToAccountID           string          `gorm:"not null;size:64;index"`
	OriginalTransactionID string          `gorm:"size:36;index"`
	Legs                  datatypes.JSON  `gorm:"not null"`
	Channel               string          `gorm:"not null;size:20"`
	InitiatedAt           time.Time       `gorm:"not null"`
	ProcessedAt           *time.Time
	CompletedAt           *time.Time
	InitiatedBy           string `gorm:"not null;size:128"`
	AuthorizedBy          string `gorm:"size:128"`
	FailureReason         string `gorm:"type:text"`
	RetryCount            int    `gorm:"not null;default:0"`
	Metadata              datatypes.JSONMap
	Version               int64 `gorm:"not null;default:0"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// Leg is the JSON shape of one transaction leg inside transactions.legs
type Leg struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description,omitempty"`
}
