package event

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/event"
)

// AuditLogPublisher writes every status change to the audit log
type AuditLogPublisher struct {
	logger core.Logger
}

var _ event.Publisher = (*AuditLogPublisher)(nil)

// NewAuditLogPublisher creates a publisher that logs to logger
func NewAuditLogPublisher(logger core.Logger) *AuditLogPublisher {
	return &AuditLogPublisher{logger: logger.With(map[string]any{"stream": "audit"})}
}

// Publish logs the change
func (p *AuditLogPublisher) Publish(_ context.Context, change entity.StatusChange) {
	p.logger.Info("Status changed", map[string]any{
		"aggregate":      change.Aggregate,
		"aggregate_id":   change.AggregateID,
		"transaction_id": change.TransactionID,
		"old_status":     change.OldStatus,
		"new_status":     change.NewStatus,
		"reason":         change.Reason,
		"occurred_at":    change.OccurredAt.Format(time.RFC3339Nano),
	})
}
