package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports storage reachability and executor backlog
type HealthHandler struct {
	storage      usecase.HealthChecker
	jobs         usecase.JobMonitor
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage usecase.HealthChecker, jobs usecase.JobMonitor, timeProvider coreport.TimeProvider, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		storage:      storage,
		jobs:         jobs,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:      "ok",
		Database:    "up",
		QueueLength: h.jobs.QueueLength(),
		Time:        h.timeProvider.Now(),
	}

	if err := h.storage.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", map[string]any{
			"error": err.Error(),
		})
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
