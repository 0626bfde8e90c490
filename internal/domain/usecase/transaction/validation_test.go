package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

func TestValidateCreate(t *testing.T) {
	valid := entity.NewTransactionParams{
		Type:          entity.TypeTransfer,
		Amount:        inr("100.50"),
		InitiatedBy:   "teller-7",
		FromAccountID: "alice",
		ToAccountID:   "bob",
	}

	tests := []struct {
		name          string
		modify        func(p *entity.NewTransactionParams)
		expectedError error
	}{
		{name: "Valid transfer", modify: func(*entity.NewTransactionParams) {}},
		{name: "Missing initiator", modify: func(p *entity.NewTransactionParams) { p.InitiatedBy = "  " }, expectedError: errs.ErrInvalidRequest},
		{name: "Zero amount", modify: func(p *entity.NewTransactionParams) { p.Amount = entity.ZeroMoney(entity.CurrencyINR) }, expectedError: errs.ErrInvalidAmount},
		{name: "Missing source", modify: func(p *entity.NewTransactionParams) { p.FromAccountID = "" }, expectedError: errs.ErrInvalidAccount},
		{name: "Missing destination", modify: func(p *entity.NewTransactionParams) { p.ToAccountID = "" }, expectedError: errs.ErrInvalidAccount},
		{name: "Self transfer", modify: func(p *entity.NewTransactionParams) { p.ToAccountID = p.FromAccountID }, expectedError: errs.ErrInvalidAccount},
		{name: "Reversal type", modify: func(p *entity.NewTransactionParams) { p.Type = entity.TypeReversal }, expectedError: errs.ErrInvalidRequest},
		{name: "Negative priority", modify: func(p *entity.NewTransactionParams) { p.Priority = -1 }, expectedError: errs.ErrInvalidRequest},
	}

	validator := NewTransactionValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.modify(&params)

			err := validator.ValidateCreate(params)
			if tt.expectedError == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedError)
			assert.True(t, errs.IsValidationError(err))
		})
	}
}
