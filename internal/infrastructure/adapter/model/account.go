package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents the database model for ledger accounts
type Account struct {
	ID        string          `gorm:"primaryKey;size:64"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Currency  string          `gorm:"not null;size:3"`
	Version   int64           `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
