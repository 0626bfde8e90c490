package transaction

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
)

func newQuietLogger(t *testing.T) *coremocks.MockLogger {
	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

func TestTransactionManager_Enqueue(t *testing.T) {
	t.Run("Returns the work result", func(t *testing.T) {
		tm := NewTransactionManager(newQuietLogger(t))
		defer tm.Shutdown()

		boom := errors.New("boom")
		assert.NoError(t, tm.Enqueue(context.Background(), "cust-1", func(context.Context) error { return nil }))
		assert.ErrorIs(t, tm.Enqueue(context.Background(), "cust-1", func(context.Context) error { return boom }), boom)
	})

	t.Run("Nil work is rejected", func(t *testing.T) {
		tm := NewTransactionManager(newQuietLogger(t))
		defer tm.Shutdown()

		assert.ErrorIs(t, tm.Enqueue(context.Background(), "cust-1", nil), errs.ErrInvalidRequest)
	})

	t.Run("Same key never overlaps", func(t *testing.T) {
		tm := NewTransactionManager(newQuietLogger(t))
		defer tm.Shutdown()

		var running, peak int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := tm.Enqueue(context.Background(), "cust-1", func(context.Context) error {
					n := atomic.AddInt32(&running, 1)
					if n > atomic.LoadInt32(&peak) {
						atomic.StoreInt32(&peak, n)
					}
					time.Sleep(time.Millisecond)
					atomic.AddInt32(&running, -1)
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
	})

	t.Run("Different keys run independently", func(t *testing.T) {
		tm := NewTransactionManager(newQuietLogger(t))
		defer tm.Shutdown()

		release := make(chan struct{})
		blocked := make(chan error, 1)
		go func() {
			blocked <- tm.Enqueue(context.Background(), "cust-1", func(context.Context) error {
				<-release
				return nil
			})
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, tm.Enqueue(ctx, "cust-2", func(context.Context) error { return nil }))

		close(release)
		assert.NoError(t, <-blocked)
	})

	t.Run("Caller context cancellation", func(t *testing.T) {
		tm := NewTransactionManager(newQuietLogger(t))
		defer tm.Shutdown()

		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_ = tm.Enqueue(context.Background(), "cust-1", func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		ran := atomic.Bool{}
		err := tm.Enqueue(ctx, "cust-1", func(context.Context) error {
			ran.Store(true)
			return nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		time.Sleep(10 * time.Millisecond)
		assert.False(t, ran.Load())
	})
}

func TestTransactionManager_ReclaimsIdleQueues(t *testing.T) {
	tm := NewTransactionManager(newQuietLogger(t))
	defer tm.Shutdown()

	release := make(chan struct{})
	started := make(chan struct{}, 3)
	var wg sync.WaitGroup
	for _, key := range []string{"cust-1", "cust-2", "cust-3"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			assert.NoError(t, tm.Enqueue(context.Background(), key, func(context.Context) error {
				started <- struct{}{}
				<-release
				return nil
			}))
		}(key)
	}
	for i := 0; i < 3; i++ {
		<-started
	}
	assert.Equal(t, 3, tm.ActiveQueues())

	close(release)
	wg.Wait()
	assert.Eventually(t, func() bool { return tm.ActiveQueues() == 0 }, time.Second, time.Millisecond)

	// a reclaimed key gets a fresh queue
	require.NoError(t, tm.Enqueue(context.Background(), "cust-1", func(context.Context) error { return nil }))
	assert.Eventually(t, func() bool { return tm.ActiveQueues() == 0 }, time.Second, time.Millisecond)
}

func TestTransactionManager_Shutdown(t *testing.T) {
	tm := NewTransactionManager(newQuietLogger(t))
	require.NoError(t, tm.Enqueue(context.Background(), "cust-1", func(context.Context) error { return nil }))

	tm.Shutdown()
	tm.Shutdown()
	assert.Equal(t, 0, tm.ActiveQueues())

	err := tm.Enqueue(context.Background(), "cust-1", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, errs.ErrExecutorStopped)
}
