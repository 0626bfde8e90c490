package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// httpStatus maps a domain error code to an HTTP status
func httpStatus(code int) int {
	switch {
	case code == domainerr.CodeNotFound:
		return http.StatusNotFound
	case code == domainerr.CodeAggregateLocked:
		return http.StatusLocked
	case code >= 4090 && code < 4100:
		return http.StatusConflict
	case code >= 4000 && code < 5000:
		return http.StatusBadRequest
	case code == domainerr.CodeRailUnavailable:
		return http.StatusServiceUnavailable
	case code == domainerr.CodeRailTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Server errors are logged
// and their message hidden from the caller.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	code := domainerr.ErrorCode(err)
	status := httpStatus(code)

	message := err.Error()
	requestID := middleware.RequestIDFrom(c)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && status != http.StatusGatewayTimeout {
		fields := domainerr.LogFieldsOf(err)
		fields["path"] = c.Request.URL.Path
		fields["request_id"] = requestID
		logger.Error("Request failed with internal error", fields)
		message = "Internal server error"
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: requestID,
	})
}

// badRequest rejects a malformed request before it reaches the domain
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:      domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message:   message,
		RequestID: middleware.RequestIDFrom(c),
	})
}
