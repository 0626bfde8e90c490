package event

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/event"
)

// FanOut delivers every change to each sink in order. A panicking sink is
// logged and does not stop the others.
type FanOut struct {
	sinks  []event.Publisher
	logger core.Logger
}

var _ event.Publisher = (*FanOut)(nil)

// NewFanOut creates a publisher over sinks
func NewFanOut(logger core.Logger, sinks ...event.Publisher) *FanOut {
	return &FanOut{sinks: sinks, logger: logger}
}

// Publish delivers change to every sink
func (f *FanOut) Publish(ctx context.Context, change entity.StatusChange) {
	for i, sink := range f.sinks {
		f.deliver(ctx, i, sink, change)
	}
}

func (f *FanOut) deliver(ctx context.Context, index int, sink event.Publisher, change entity.StatusChange) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("Event sink panicked", map[string]any{
				"sink":         index,
				"aggregate_id": change.AggregateID,
				"panic":        fmt.Sprint(r),
			})
		}
	}()
	sink.Publish(ctx, change)
}
