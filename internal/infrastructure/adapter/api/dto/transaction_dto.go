package dto

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// LegResponse is one posting of a transaction
type LegResponse struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	BalanceBefore string `json:"balanceBefore"`
	BalanceAfter  string `json:"balanceAfter"`
	Description   string `json:"description,omitempty"`
}

// TransactionResponse represents a ledger transaction
type TransactionResponse struct {
	ID                    string           `json:"id"`
	ReferenceNumber       string           `json:"referenceNumber"`
	Type                  string           `json:"type"`
	Status                string           `json:"status"`
	Channel               string           `json:"channel"`
	Amount                string           `json:"amount"`
	Currency              string           `json:"currency"`
	FromAccountID         string           `json:"fromAccountId"`
	ToAccountID           string           `json:"toAccountId"`
	OriginalTransactionID string           `json:"originalTransactionId,omitempty"`
	Legs                  []LegResponse    `json:"legs"`
	InitiatedBy           string           `json:"initiatedBy"`
	AuthorizedBy          string           `json:"authorizedBy,omitempty"`
	FailureReason         string           `json:"failureReason,omitempty"`
	RetryCount            int              `json:"retryCount"`
	Metadata              map[string]any   `json:"metadata,omitempty"`
	InitiatedAt           time.Time        `json:"initiatedAt"`
	ProcessedAt           *time.Time       `json:"processedAt,omitempty"`
	CompletedAt           *time.Time       `json:"completedAt,omitempty"`
	Version               int64            `json:"version"`
	Linked                []LinkedResponse `json:"linked,omitempty"`
}

// LinkedResponse summarises a refund or reversal of a transaction
type LinkedResponse struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Amount string `json:"amount"`
}

// NewTransactionResponse maps a transaction and its linked transactions
func NewTransactionResponse(tx *entity.Transaction, linked []*entity.Transaction) TransactionResponse {
	s := tx.Snapshot()

	legs := make([]LegResponse, 0, len(s.Legs))
	for _, leg := range s.Legs {
		legs = append(legs, LegResponse{
			ID:            leg.ID,
			AccountID:     leg.AccountID,
			Type:          string(leg.Type),
			Amount:        leg.Amount.StringFixed(),
			BalanceBefore: leg.BalanceBefore.StringFixed(),
			BalanceAfter:  leg.BalanceAfter.StringFixed(),
			Description:   leg.Description,
		})
	}

	resp := TransactionResponse{
		ID:                    s.ID,
		ReferenceNumber:       s.ReferenceNumber,
		Type:                  string(s.Type),
		Status:                string(s.Status),
		Channel:               string(s.Channel),
		Amount:                s.Amount.StringFixed(),
		Currency:              string(s.Amount.Currency()),
		FromAccountID:         s.FromAccountID,
		ToAccountID:           s.ToAccountID,
		OriginalTransactionID: s.OriginalTransactionID,
		Legs:                  legs,
		InitiatedBy:           s.InitiatedBy,
		AuthorizedBy:          s.AuthorizedBy,
		FailureReason:         s.FailureReason,
		RetryCount:            s.RetryCount,
		Metadata:              s.Metadata,
		InitiatedAt:           s.InitiatedAt,
		ProcessedAt:           s.ProcessedAt,
		CompletedAt:           s.CompletedAt,
		Version:               s.Version,
	}
	for _, l := range linked {
		resp.Linked = append(resp.Linked, LinkedResponse{
			ID:     l.ID(),
			Type:   string(l.Type()),
			Status: string(l.Status()),
			Amount: l.Amount().StringFixed(),
		})
	}
	return resp
}
