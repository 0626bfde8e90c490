package event

import (
	"context"
	"sync"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/event"
)

type delivery struct {
	ctx    context.Context
	change entity.StatusChange
}

// AsyncPublisher hands changes to a slower sink on a background worker so
// that settlement never waits on notification delivery. When the buffer is
// full the change is dropped and logged.
type AsyncPublisher struct {
	next   event.Publisher
	logger core.Logger

	queue chan delivery
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

var _ event.Publisher = (*AsyncPublisher)(nil)

// NewAsyncPublisher starts a worker delivering to next
func NewAsyncPublisher(next event.Publisher, buffer int, logger core.Logger) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	p := &AsyncPublisher{
		next:   next,
		logger: logger,
		queue:  make(chan delivery, buffer),
		done:   make(chan struct{}),
	}
	go p.drain()
	return p
}

// Publish queues the change without blocking
func (p *AsyncPublisher) Publish(ctx context.Context, change entity.StatusChange) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warn("Status change published after close", map[string]any{
			"aggregate_id": change.AggregateID,
			"new_status":   change.NewStatus,
		})
		return
	}

	select {
	case p.queue <- delivery{ctx: context.WithoutCancel(ctx), change: change}:
	default:
		p.logger.Warn("Status change dropped, publisher buffer full", map[string]any{
			"aggregate":    change.Aggregate,
			"aggregate_id": change.AggregateID,
			"new_status":   change.NewStatus,
		})
	}
}

func (p *AsyncPublisher) drain() {
	defer close(p.done)
	for d := range p.queue {
		p.next.Publish(d.ctx, d.change)
	}
}

// Close stops accepting changes and waits until the queued ones are
// delivered or ctx is done
func (p *AsyncPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
