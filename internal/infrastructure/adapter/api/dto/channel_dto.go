package dto

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// RTGSTransferResponse represents an RTGS transfer
type RTGSTransferResponse struct {
	ID                 string    `json:"id"`
	TransactionID      string    `json:"transactionId"`
	CustomerID         string    `json:"customerId"`
	SenderAccountID    string    `json:"senderAccountId"`
	BeneficiaryAccount string    `json:"beneficiaryAccount"`
	BeneficiaryIFSC    string    `json:"beneficiaryIfsc"`
	BeneficiaryName    string    `json:"beneficiaryName"`
	Amount             string    `json:"amount"`
	Currency           string    `json:"currency"`
	Status             string    `json:"status"`
	UTR                string    `json:"utr,omitempty"`
	ReturnReason       string    `json:"returnReason,omitempty"`
	FailureReason      string    `json:"failureReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	Version            int64     `json:"version"`
}

// NewRTGSTransferResponse maps a transfer
func NewRTGSTransferResponse(transfer *entity.RTGSTransfer) RTGSTransferResponse {
	s := transfer.Snapshot()
	return RTGSTransferResponse{
		ID:                 s.ID,
		TransactionID:      s.TransactionID,
		CustomerID:         s.CustomerID,
		SenderAccountID:    s.SenderAccountID,
		BeneficiaryAccount: s.BeneficiaryAccount,
		BeneficiaryIFSC:    s.BeneficiaryIFSC,
		BeneficiaryName:    s.BeneficiaryName,
		Amount:             s.Amount.StringFixed(),
		Currency:           string(s.Amount.Currency()),
		Status:             string(s.Status),
		UTR:                s.UTR,
		ReturnReason:       string(s.ReturnReason),
		FailureReason:      s.FailureReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		Version:            s.Version,
	}
}

// UPIPaymentResponse represents a UPI payment
type UPIPaymentResponse struct {
	ID             string     `json:"id"`
	TransactionID  string     `json:"transactionId"`
	PayerAccountID string     `json:"payerAccountId"`
	PayerVPA       string     `json:"payerVpa"`
	PayeeVPA       string     `json:"payeeVpa"`
	Amount         string     `json:"amount"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	NPCIReference  string     `json:"npciReference,omitempty"`
	FailureReason  string     `json:"failureReason,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Version        int64      `json:"version"`
}

// NewUPIPaymentResponse maps a payment
func NewUPIPaymentResponse(payment *entity.UPIPayment) UPIPaymentResponse {
	s := payment.Snapshot()
	return UPIPaymentResponse{
		ID:             s.ID,
		TransactionID:  s.TransactionID,
		PayerAccountID: s.PayerAccountID,
		PayerVPA:       s.PayerVPA,
		PayeeVPA:       s.PayeeVPA,
		Amount:         s.Amount.StringFixed(),
		Currency:       string(s.Amount.Currency()),
		Status:         string(s.Status),
		NPCIReference:  s.NPCIReference,
		FailureReason:  s.FailureReason,
		ExpiresAt:      s.ExpiresAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Version:        s.Version,
	}
}
