package handler

import (
	"net/http"
	"strings"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// LedgerHandler serves read access to transactions and channel records
type LedgerHandler struct {
	transactions usecase.TransactionReader
	rtgs         usecase.RTGSReader
	upi          usecase.UPIReader
	logger       coreport.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(
	transactions usecase.TransactionReader,
	rtgs usecase.RTGSReader,
	upi usecase.UPIReader,
	logger coreport.Logger,
) *LedgerHandler {
	return &LedgerHandler{
		transactions: transactions,
		rtgs:         rtgs,
		upi:          upi,
		logger:       logger,
	}
}

// GetTransaction handles GET /transactions/:transactionId
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	id := strings.TrimSpace(c.Param("transactionId"))
	if id == "" {
		badRequest(c, "transactionId is required")
		return
	}

	tx, err := h.transactions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	linked, err := h.transactions.ListLinked(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx, linked))
}

// GetRTGSTransfer handles GET /rtgs/:transferId
func (h *LedgerHandler) GetRTGSTransfer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("transferId"))
	if id == "" {
		badRequest(c, "transferId is required")
		return
	}

	transfer, err := h.rtgs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRTGSTransferResponse(transfer))
}

// GetUPIPayment handles GET /upi/:paymentId
func (h *LedgerHandler) GetUPIPayment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("paymentId"))
	if id == "" {
		badRequest(c, "paymentId is required")
		return
	}

	payment, err := h.upi.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUPIPaymentResponse(payment))
}
