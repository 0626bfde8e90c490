package dto

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/settlement"
)

// JobResponse represents a settlement job record
type JobResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	AggregateID string     `json:"aggregateId"`
	Priority    int        `json:"priority"`
	Status      string     `json:"status"`
	Attempts    int        `json:"attempts"`
	LastError   string     `json:"lastError,omitempty"`
	SubmittedAt time.Time  `json:"submittedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

// NewJobResponse maps a job record
func NewJobResponse(info settlement.JobInfo) JobResponse {
	return JobResponse{
		ID:          string(info.ID),
		Name:        info.Name,
		AggregateID: info.AggregateID,
		Priority:    info.Priority,
		Status:      string(info.Status),
		Attempts:    info.Attempts,
		LastError:   info.LastError,
		SubmittedAt: info.SubmittedAt,
		StartedAt:   info.StartedAt,
		FinishedAt:  info.FinishedAt,
	}
}

// CancelJobResponse reports the outcome of a cancel request
type CancelJobResponse struct {
	ID        string `json:"id"`
	Cancelled bool   `json:"cancelled"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	QueueLength int       `json:"queueLength"`
	Time        time.Time `json:"time"`
}
