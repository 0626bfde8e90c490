package transaction

import (
	"context"
	"sync"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// WorkFunc is a unit of work run on a key's queue
type WorkFunc func(ctx context.Context) error

// TransactionManager runs work sequentially per key, e.g. per customer, so
// that read-check-write sequences such as daily limit checks do not interleave.
// A key's queue and worker exist only while it has work pending.
type TransactionManager struct {
	logger coreport.Logger

	// Key-based queues for strict ordering
	mu             sync.Mutex
	queues         map[string]*keyQueue
	queueWaitGroup sync.WaitGroup
	stopped        bool
}

// keyQueue counts the requests accepted for one key and not yet finished
type keyQueue struct {
	requests chan *workRequest
	pending  int
}

// workRequest represents a queued unit of work
type workRequest struct {
	ctx        context.Context
	key        string
	fn         WorkFunc
	resultChan chan error
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(logger coreport.Logger) *TransactionManager {
	return &TransactionManager{
		logger: logger,
		queues: make(map[string]*keyQueue),
	}
}

// Enqueue adds fn to the queue of key and blocks until it has run
func (m *TransactionManager) Enqueue(ctx context.Context, key string, fn WorkFunc) error {
	if fn == nil {
		return errs.ErrInvalidRequest
	}

	queue, err := m.acquire(key)
	if err != nil {
		return err
	}

	m.logger.Debug("Enqueuing work for sequential processing", map[string]any{
		"key": key,
	})

	req := &workRequest{
		ctx:        ctx,
		key:        key,
		fn:         fn,
		resultChan: make(chan error, 1),
	}

	// Send request to queue
	select {
	case queue.requests <- req:
	case <-ctx.Done():
		m.release(key, queue)
		m.logger.Warn("Context canceled while enqueueing work", map[string]any{
			"key":   key,
			"error": ctx.Err().Error(),
		})
		return ctx.Err()
	}

	// Wait for result
	select {
	case err := <-req.resultChan:
		return err
	case <-ctx.Done():
		m.logger.Warn("Context canceled while waiting for work result", map[string]any{
			"key":   key,
			"error": ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// ActiveQueues returns the number of keys with work pending
func (m *TransactionManager) ActiveQueues() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}

// acquire returns the queue of key, starting its worker when the key is idle
func (m *TransactionManager) acquire(key string) (*keyQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return nil, errs.ErrExecutorStopped
	}

	queue, ok := m.queues[key]
	if !ok {
		queue = &keyQueue{requests: make(chan *workRequest, 100)}
		m.queues[key] = queue
		m.queueWaitGroup.Add(1)
		go m.processQueue(key, queue)
	}
	queue.pending++
	return queue, nil
}

// release finishes one request of key. The last one removes the queue and
// closes it, which stops the worker.
func (m *TransactionManager) release(key string, queue *keyQueue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	queue.pending--
	if queue.pending > 0 {
		return
	}
	delete(m.queues, key)
	close(queue.requests)
}

// processQueue handles the worker goroutine for one key
func (m *TransactionManager) processQueue(key string, queue *keyQueue) {
	defer m.queueWaitGroup.Done()

	m.logger.Debug("Queue worker started", map[string]any{
		"key": key,
	})

	for req := range queue.requests {
		// Skip work whose caller already gave up
		if err := req.ctx.Err(); err != nil {
			req.resultChan <- err
		} else {
			req.resultChan <- req.fn(req.ctx)
		}
		m.release(key, queue)
	}

	m.logger.Debug("Queue worker stopped", map[string]any{
		"key": key,
	})
}

// Shutdown rejects new work and waits until the queued work has run
func (m *TransactionManager) Shutdown() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	active := len(m.queues)
	m.mu.Unlock()

	m.logger.Info("Shutting down transaction manager", map[string]any{
		"active_queues": active,
	})

	m.queueWaitGroup.Wait()
	m.logger.Info("Transaction manager shut down successfully", nil)
}
