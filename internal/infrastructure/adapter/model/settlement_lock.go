package model

import (
	"time"
)

// SettlementLock is a lease on one aggregate held by a settlement worker
type SettlementLock struct {
	LockKey   string    `gorm:"primaryKey;size:128"`
	Owner     string    `gorm:"not null;size:128"`
	LockedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for SettlementLock
func (SettlementLock) TableName() string {
	return "settlement_locks"
}
