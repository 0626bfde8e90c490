package event

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Publisher delivers status changes to audit and notification sinks.
// Delivery is fire-and-forget: a failing sink never affects the caller.
type Publisher interface {
	Publish(ctx context.Context, change entity.StatusChange)
}
