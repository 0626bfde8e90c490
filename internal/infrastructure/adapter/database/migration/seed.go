package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
)

// SeedAccounts opens every configured account that does not exist yet.
// Existing accounts keep their balance.
func SeedAccounts(ctx context.Context, uow persistence.UnitOfWork, seeds []config.AccountSeed, timeProvider coreport.TimeProvider, logger coreport.Logger) error {
	created := 0
	for _, seed := range seeds {
		currency, err := entity.ParseCurrency(seed.Currency)
		if err != nil {
			return fmt.Errorf("account %s: %w", seed.ID, err)
		}
		openingBalance := seed.OpeningBalance
		if openingBalance == "" {
			openingBalance = "0"
		}
		opening, err := entity.ParseMoney(openingBalance, currency)
		if err != nil {
			return fmt.Errorf("account %s: %w", seed.ID, err)
		}

		var opened bool
		err = persistence.WithinTransaction(ctx, uow, func(ctx context.Context) error {
			accounts := uow.GetAccountRepository(ctx)
			if _, err := accounts.Get(ctx, seed.ID); err == nil {
				return nil
			} else if !errors.Is(err, errs.ErrAccountNotFound) {
				return err
			}

			account, err := entity.NewAccount(seed.ID, opening, timeProvider)
			if err != nil {
				return err
			}
			opened = true
			return accounts.Create(ctx, account)
		})
		if err != nil {
			return fmt.Errorf("seeding account %s: %w", seed.ID, err)
		}
		if opened {
			created++
		}
	}

	logger.Info("Ledger accounts seeded", map[string]any{
		"configured": len(seeds),
		"created":    created,
	})
	return nil
}
