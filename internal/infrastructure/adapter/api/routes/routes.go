package routes

import (
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	healthHandler *handler.HealthHandler,
	ledgerHandler *handler.LedgerHandler,
	jobHandler *handler.JobHandler,
) {
	router.GET("/health", healthHandler.Health)

	router.GET("/transactions/:transactionId", ledgerHandler.GetTransaction)
	router.GET("/rtgs/:transferId", ledgerHandler.GetRTGSTransfer)
	router.GET("/upi/:paymentId", ledgerHandler.GetUPIPayment)

	jobRoutes := router.Group("/jobs")
	{
		// GET /jobs/:jobId
		jobRoutes.GET("/:jobId", jobHandler.GetJob)

		// DELETE /jobs/:jobId
		jobRoutes.DELETE("/:jobId", jobHandler.CancelJob)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// request id first so recovery and access logs can see it
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
