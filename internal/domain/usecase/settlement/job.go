package settlement

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// JobID identifies a submitted job
type JobID string

// JobStatus is the lifecycle of a job record
type JobStatus string

// JobStatus constants
const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
	JobUnknown   JobStatus = "unknown"
)

// IsTerminal reports whether the job will not run again
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCancelled
}

// RunFunc is the body of a job. It must enforce its own timeouts.
type RunFunc func(ctx context.Context) error

// FailureFunc drives the owning aggregate to its failed state once a job
// has given up. It receives the final error.
type FailureFunc func(ctx context.Context, cause error)

// Job is one settlement step
type Job struct {
	// Name describes the step, e.g. "rtgs.submit"
	Name string
	// AggregateID serializes jobs touching the same aggregate. Empty means no locking.
	AggregateID string
	Run         RunFunc
	OnFailure   FailureFunc
	// Delay postpones eligibility, used for expiry and polling
	Delay coreport.Duration
	// MaxAttempts bounds retries of retryable errors. Zero uses the executor default.
	MaxAttempts int
}

// JobInfo is a read-only view of a job record
type JobInfo struct {
	ID          JobID
	Name        string
	AggregateID string
	Priority    int
	Status      JobStatus
	Attempts    int
	LastError   string
	SubmittedAt time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
}

type record struct {
	id          JobID
	job         Job
	priority    int
	seq         uint64
	status      JobStatus
	attempts    int
	started     bool
	err         error
	submittedAt time.Time
	startedAt   *time.Time
	finishedAt  *time.Time
	timer       coreport.Timer
	done        chan struct{}
}

func (r *record) info() JobInfo {
	info := JobInfo{
		ID:          r.id,
		Name:        r.job.Name,
		AggregateID: r.job.AggregateID,
		Priority:    r.priority,
		Status:      r.status,
		Attempts:    r.attempts,
		SubmittedAt: r.submittedAt,
		StartedAt:   r.startedAt,
		FinishedAt:  r.finishedAt,
	}
	if r.err != nil {
		info.LastError = r.err.Error()
	}
	return info
}

// Submitter is the part of the executor that channel services schedule work through
type Submitter interface {
	Submit(job Job, priority int) (JobID, error)
}

var _ Submitter = (*Executor)(nil)
