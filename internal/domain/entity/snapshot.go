package entity

import (
	"maps"
	"slices"
	"time"
)

// TransactionSnapshot is a detached copy of a Transaction's state used by
// persistence adapters. Mutating it has no effect on the aggregate.
type TransactionSnapshot struct {
	ID                    string
	Type                  TransactionType
	Status                TransactionStatus
	Priority              int
	Amount                Money
	ReferenceNumber       string
	FromAccountID         string
	ToAccountID           string
	OriginalTransactionID string
	Legs                  []TransactionLeg
	Channel               Channel
	InitiatedAt           time.Time
	ProcessedAt           *time.Time
	CompletedAt           *time.Time
	InitiatedBy           string
	AuthorizedBy          string
	FailureReason         string
	RetryCount            int
	Metadata              map[string]any
	Version               int64
}

// Snapshot returns a copy of the current state
func (t *Transaction) Snapshot() TransactionSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return TransactionSnapshot{
		ID:                    t.id,
		Type:                  t.txType,
		Status:                t.status,
		Priority:              t.priority,
		Amount:                t.amount,
		ReferenceNumber:       t.referenceNumber,
		FromAccountID:         t.fromAccountID,
		ToAccountID:           t.toAccountID,
		OriginalTransactionID: t.originalTransactionID,
		Legs:                  slices.Clone(t.legs),
		Channel:               t.channel,
		InitiatedAt:           t.initiatedAt,
		ProcessedAt:           copyTime(t.processedAt),
		CompletedAt:           copyTime(t.completedAt),
		InitiatedBy:           t.initiatedBy,
		AuthorizedBy:          t.authorizedBy,
		FailureReason:         t.failureReason,
		RetryCount:            t.retryCount,
		Metadata:              maps.Clone(t.metadata),
		Version:               t.version,
	}
}

// RestoreTransaction rebuilds an aggregate from persisted state
func RestoreTransaction(s TransactionSnapshot) *Transaction {
	metadata := maps.Clone(s.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Transaction{
		id:                    s.ID,
		txType:                s.Type,
		status:                s.Status,
		priority:              s.Priority,
		amount:                s.Amount,
		referenceNumber:       s.ReferenceNumber,
		fromAccountID:         s.FromAccountID,
		toAccountID:           s.ToAccountID,
		originalTransactionID: s.OriginalTransactionID,
		legs:                  slices.Clone(s.Legs),
		channel:               s.Channel,
		initiatedAt:           s.InitiatedAt,
		processedAt:           copyTime(s.ProcessedAt),
		completedAt:           copyTime(s.CompletedAt),
		initiatedBy:           s.InitiatedBy,
		authorizedBy:          s.AuthorizedBy,
		failureReason:         s.FailureReason,
		retryCount:            s.RetryCount,
		metadata:              metadata,
		version:               s.Version,
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
