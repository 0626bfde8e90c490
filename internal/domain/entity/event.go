package entity

import "time"

// Aggregate names carried on status change events
const (
	AggregateTransaction = "transaction"
	AggregateRTGS        = "rtgs_transfer"
	AggregateUPI         = "upi_payment"
)

// StatusChange is emitted when an aggregate reaches a terminal status
type StatusChange struct {
	Aggregate     string
	AggregateID   string
	TransactionID string
	OldStatus     string
	NewStatus     string
	Reason        string
	OccurredAt    time.Time
}

// eventLog buffers status changes until the owner drains them after a save
type eventLog struct {
	pending []StatusChange
}

func (l *eventLog) record(e StatusChange) {
	l.pending = append(l.pending, e)
}

func (l *eventLog) pull() []StatusChange {
	out := l.pending
	l.pending = nil
	return out
}
