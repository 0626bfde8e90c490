package handler

import (
	"net/http"
	"strings"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/settlement"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

var _ usecase.JobMonitor = (*settlement.Executor)(nil)

// JobHandler exposes the settlement executor's job records
type JobHandler struct {
	jobs   usecase.JobMonitor
	logger coreport.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobs usecase.JobMonitor, logger coreport.Logger) *JobHandler {
	return &JobHandler{
		jobs:   jobs,
		logger: logger,
	}
}

// GetJob handles GET /jobs/:jobId
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	info, err := h.jobs.Info(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewJobResponse(info))
}

// CancelJob handles DELETE /jobs/:jobId. Only jobs that never started can
// be cancelled.
func (h *JobHandler) CancelJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	cancelled, err := h.jobs.Cancel(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job cancel requested", map[string]any{
		"job_id":    id,
		"cancelled": cancelled,
	})
	c.JSON(http.StatusOK, dto.CancelJobResponse{
		ID:        string(id),
		Cancelled: cancelled,
	})
}

func jobID(c *gin.Context) (settlement.JobID, bool) {
	id := strings.TrimSpace(c.Param("jobId"))
	if id == "" {
		badRequest(c, "jobId is required")
		return "", false
	}
	return settlement.JobID(id), true
}
