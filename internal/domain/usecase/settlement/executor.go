package settlement

import (
	"context"
	"fmt"
	"sync"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/google/uuid"
)

// Options configures an Executor
type Options struct {
	Workers            int
	RetainFor          coreport.Duration
	JanitorInterval    coreport.Duration
	DefaultMaxAttempts int
	Retry              RetryPolicy
	Locker             Locker
}

// DefaultOptions returns the default executor options
func DefaultOptions() Options {
	return Options{
		Workers:            4,
		RetainFor:          coreport.Hour,
		JanitorInterval:    coreport.Minute,
		DefaultMaxAttempts: 3,
		Retry:              DefaultRetryPolicy(),
	}
}

// Executor runs settlement jobs from a priority queue on a fixed pool of
// workers. Jobs sharing an AggregateID never run concurrently.
type Executor struct {
	opts         Options
	locker       Locker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	queue    jobQueue
	records  map[JobID]*record
	seq      uint64
	started  bool
	stopping bool
	janitor  coreport.Timer

	workers sync.WaitGroup
}

// NewExecutor creates a stopped executor. Jobs may be submitted before Start.
func NewExecutor(opts Options, timeProvider coreport.TimeProvider, logger coreport.Logger) *Executor {
	defaults := DefaultOptions()
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}
	if opts.RetainFor <= 0 {
		opts.RetainFor = defaults.RetainFor
	}
	if opts.JanitorInterval <= 0 {
		opts.JanitorInterval = defaults.JanitorInterval
	}
	if opts.DefaultMaxAttempts <= 0 {
		opts.DefaultMaxAttempts = defaults.DefaultMaxAttempts
	}
	if opts.Retry.BaseInterval <= 0 {
		opts.Retry = defaults.Retry
	}
	locker := opts.Locker
	if locker == nil {
		locker = NewKeyedMutex()
	}

	e := &Executor{
		opts:         opts,
		locker:       locker,
		timeProvider: timeProvider,
		logger:       logger,
		records:      make(map[JobID]*record),
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Start launches the worker pool and the janitor. It is a no-op if already started.
func (e *Executor) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started || e.stopping {
		return
	}
	e.started = true

	for i := 0; i < e.opts.Workers; i++ {
		e.workers.Add(1)
		go e.work(i)
	}
	e.scheduleJanitor()

	e.logger.Info("Settlement executor started", map[string]any{
		"workers":    e.opts.Workers,
		"retain_for": e.opts.RetainFor.Std().String(),
		"queued":     e.queue.Len(),
	})
}

// Submit enqueues a job. Lower priority numbers run first; equal priorities
// run in submission order.
func (e *Executor) Submit(job Job, priority int) (JobID, error) {
	if job.Run == nil {
		return "", fmt.Errorf("%w: job %q has no body", errs.ErrInvalidRequest, job.Name)
	}
	if job.MaxAttempts <= 0 {
		job.MaxAttempts = e.opts.DefaultMaxAttempts
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopping {
		return "", errs.ErrExecutorStopped
	}

	rec := &record{
		id:          JobID(uuid.NewString()),
		job:         job,
		priority:    priority,
		status:      JobPending,
		submittedAt: e.timeProvider.Now(),
		done:        make(chan struct{}),
	}
	e.records[rec.id] = rec

	if job.Delay > 0 {
		rec.timer = e.timeProvider.AfterFunc(job.Delay, func() { e.enqueue(rec) })
	} else {
		e.pushLocked(rec)
	}

	e.logger.Debug("Settlement job submitted", map[string]any{
		"job_id":       rec.id,
		"job_name":     job.Name,
		"aggregate_id": job.AggregateID,
		"priority":     priority,
		"delay":        job.Delay.Std().String(),
	})
	return rec.id, nil
}

// Status returns the job status, or JobUnknown for unknown or purged ids
func (e *Executor) Status(id JobID) JobStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.records[id]
	if !ok {
		return JobUnknown
	}
	return rec.status
}

// Info returns a snapshot of the job record
func (e *Executor) Info(id JobID) (JobInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.records[id]
	if !ok {
		return JobInfo{}, fmt.Errorf("%w: %s", errs.ErrJobNotFound, id)
	}
	return rec.info(), nil
}

// Wait blocks until the job reaches a terminal status or ctx is done, and
// returns the status observed at that point
func (e *Executor) Wait(ctx context.Context, id JobID) (JobStatus, error) {
	e.mu.Lock()
	rec, ok := e.records[id]
	e.mu.Unlock()
	if !ok {
		return JobUnknown, fmt.Errorf("%w: %s", errs.ErrJobNotFound, id)
	}

	select {
	case <-rec.done:
		return e.Status(id), nil
	case <-ctx.Done():
		return e.Status(id), ctx.Err()
	}
}

// Cancel removes a job that has not started. Jobs that have run at least
// once, including those waiting for a retry, are not cancellable.
func (e *Executor) Cancel(id JobID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.records[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", errs.ErrJobNotFound, id)
	}
	if rec.status == JobCancelled {
		return false, nil
	}
	if rec.started || rec.status != JobPending {
		return false, fmt.Errorf("%w: %s is %s", errs.ErrJobAlreadyRunning, id, rec.status)
	}

	if rec.timer != nil {
		rec.timer.Stop()
	}
	e.finishLocked(rec, JobCancelled, nil)

	e.logger.Info("Settlement job cancelled", map[string]any{
		"job_id":   id,
		"job_name": rec.job.Name,
	})
	return true, nil
}

// Purge drops terminal records that finished more than olderThan ago
func (e *Executor) Purge(olderThan coreport.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.timeProvider.Now().Add(-olderThan.Std())
	purged := 0
	for id, rec := range e.records {
		if rec.status.IsTerminal() && rec.finishedAt != nil && !rec.finishedAt.After(cutoff) {
			delete(e.records, id)
			purged++
		}
	}
	if purged > 0 {
		e.logger.Debug("Purged settlement job records", map[string]any{
			"purged":    purged,
			"remaining": len(e.records),
		})
	}
	return purged
}

// Shutdown stops accepting jobs, drains the ready queue and waits for the
// workers. Delayed jobs that never ran are cancelled; jobs waiting for a
// retry are failed through their OnFailure handler.
func (e *Executor) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if e.stopping {
		e.mu.Unlock()
		return nil
	}
	e.stopping = true
	if e.janitor != nil {
		e.janitor.Stop()
	}

	var abandoned []*record
	for _, rec := range e.records {
		if rec.status != JobPending || rec.timer == nil || !rec.timer.Stop() {
			continue
		}
		if rec.started {
			rec.status = JobRunning
			abandoned = append(abandoned, rec)
			continue
		}
		e.finishLocked(rec, JobCancelled, nil)
	}
	started := e.started
	e.cond.Broadcast()
	e.mu.Unlock()

	e.logger.Info("Shutting down settlement executor", map[string]any{
		"abandoned_retries": len(abandoned),
	})

	for _, rec := range abandoned {
		e.fail(rec, errs.ErrExecutorStopped)
	}

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		e.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Settlement executor shut down successfully", nil)
		return nil
	case <-ctx.Done():
		e.logger.Warn("Settlement executor shutdown timed out", map[string]any{
			"error": ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// work is the loop run by each worker goroutine
func (e *Executor) work(worker int) {
	defer e.workers.Done()

	for {
		e.mu.Lock()
		for e.queue.Len() == 0 && !e.stopping {
			e.cond.Wait()
		}
		if e.queue.Len() == 0 {
			e.mu.Unlock()
			return
		}

		rec := e.queue.pop()
		if rec.status != JobPending {
			// cancelled while queued
			e.mu.Unlock()
			continue
		}
		now := e.timeProvider.Now()
		rec.status = JobRunning
		rec.started = true
		rec.attempts++
		rec.startedAt = &now
		e.mu.Unlock()

		e.execute(worker, rec)
	}
}

func (e *Executor) execute(worker int, rec *record) {
	fields := map[string]any{
		"job_id":       rec.id,
		"job_name":     rec.job.Name,
		"aggregate_id": rec.job.AggregateID,
		"attempt":      rec.attempts,
		"worker":       worker,
	}
	ctx := context.Background()

	err := e.runLocked(ctx, rec)
	if err == nil {
		e.mu.Lock()
		e.finishLocked(rec, JobCompleted, nil)
		e.mu.Unlock()
		e.logger.Info("Settlement job completed", fields)
		return
	}

	fields["error"] = err.Error()
	if errs.IsRetryable(err) && rec.attempts < rec.job.MaxAttempts {
		backoff := e.opts.Retry.Backoff(rec.attempts)
		fields["retry_after"] = backoff.String()
		e.logger.Warn("Settlement job failed, retrying", fields)

		e.mu.Lock()
		rec.err = err
		rec.status = JobPending
		if e.stopping {
			e.mu.Unlock()
			e.fail(rec, err)
			return
		}
		rec.timer = e.timeProvider.AfterFunc(coreport.Duration(backoff), func() { e.enqueue(rec) })
		e.mu.Unlock()
		return
	}

	e.logger.Error("Settlement job failed", fields)
	e.fail(rec, err)
}

// runLocked runs the job body under the aggregate lock, converting panics to errors
func (e *Executor) runLocked(ctx context.Context, rec *record) (err error) {
	if rec.job.AggregateID != "" {
		release, lockErr := e.locker.Lock(ctx, rec.job.AggregateID)
		if lockErr != nil {
			return lockErr
		}
		defer release()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errs.ErrJobPanicked, r)
		}
	}()
	return rec.job.Run(ctx)
}

// fail invokes the failure handler and then marks the record failed
func (e *Executor) fail(rec *record, cause error) {
	jobErr := &errs.JobError{JobID: string(rec.id), Name: rec.job.Name, Attempts: rec.attempts, Err: cause}

	if rec.job.OnFailure != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("Settlement failure handler panicked", map[string]any{
						"job_id": rec.id,
						"panic":  fmt.Sprint(r),
					})
				}
			}()
			rec.job.OnFailure(context.Background(), cause)
		}()
	}

	e.mu.Lock()
	e.finishLocked(rec, JobFailed, jobErr)
	e.mu.Unlock()
}

// enqueue makes a delayed or retrying record eligible to run
func (e *Executor) enqueue(rec *record) {
	e.mu.Lock()
	if rec.status != JobPending {
		e.mu.Unlock()
		return
	}
	rec.timer = nil
	if !e.stopping {
		e.pushLocked(rec)
		e.mu.Unlock()
		return
	}

	// Shutdown lost the race to stop this timer
	if !rec.started {
		e.finishLocked(rec, JobCancelled, nil)
		e.mu.Unlock()
		return
	}
	rec.status = JobRunning
	e.mu.Unlock()
	e.fail(rec, errs.ErrExecutorStopped)
}

func (e *Executor) pushLocked(rec *record) {
	e.seq++
	rec.seq = e.seq
	e.queue.push(rec)
	e.cond.Signal()
}

func (e *Executor) finishLocked(rec *record, status JobStatus, err error) {
	if rec.status.IsTerminal() {
		return
	}
	now := e.timeProvider.Now()
	rec.status = status
	rec.finishedAt = &now
	if err != nil {
		rec.err = err
	}
	close(rec.done)
}

func (e *Executor) scheduleJanitor() {
	e.janitor = e.timeProvider.AfterFunc(e.opts.JanitorInterval, func() {
		e.Purge(e.opts.RetainFor)

		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.stopping {
			e.scheduleJanitor()
		}
	})
}

// QueueLength returns the number of jobs ready to run
func (e *Executor) QueueLength() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}
