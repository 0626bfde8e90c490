package migration

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/memory"
	timeprovider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceOf(t *testing.T, store *memory.Store, accountID string) entity.Money {
	t.Helper()
	var balance entity.Money
	err := persistence.WithinTransaction(context.Background(), store, func(ctx context.Context) error {
		account, err := store.GetAccountRepository(ctx).Get(ctx, accountID)
		if err != nil {
			return err
		}
		balance = account.Balance()
		return nil
	})
	require.NoError(t, err)
	return balance
}

func TestSeedAccounts(t *testing.T) {
	ctx := context.Background()
	tp := timeprovider.NewRealTimeProvider()
	log := logger.NewNoopLogger()

	t.Run("opens missing accounts and keeps existing balances", func(t *testing.T) {
		store := memory.NewStore(tp, log)
		seeds := []config.AccountSeed{
			{ID: "SETTLEMENT-RTGS", Currency: "INR"},
			{ID: "ACC-1", Currency: "INR", OpeningBalance: "1500.50"},
		}
		require.NoError(t, SeedAccounts(ctx, store, seeds, tp, log))
		assert.True(t, balanceOf(t, store, "SETTLEMENT-RTGS").IsZero())
		assert.Equal(t, "1500.50", balanceOf(t, store, "ACC-1").StringFixed())

		seeds[1].OpeningBalance = "99"
		require.NoError(t, SeedAccounts(ctx, store, seeds, tp, log))
		assert.Equal(t, "1500.50", balanceOf(t, store, "ACC-1").StringFixed())
	})

	t.Run("rejects an unsupported currency", func(t *testing.T) {
		store := memory.NewStore(tp, log)
		err := SeedAccounts(ctx, store, []config.AccountSeed{{ID: "ACC-X", Currency: "XXX"}}, tp, log)
		assert.ErrorIs(t, err, errs.ErrUnsupportedCurrency)
	})

	t.Run("rejects a malformed opening balance", func(t *testing.T) {
		store := memory.NewStore(tp, log)
		err := SeedAccounts(ctx, store, []config.AccountSeed{{ID: "ACC-Y", Currency: "INR", OpeningBalance: "ten"}}, tp, log)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}
