package database

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/event"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	container    *tcpostgres.PostgresContainer
	manager      *Manager
	uow          *UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func TestPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	ctx := context.Background()
	s.timeProvider = timeprovider.NewRealTimeProvider()
	s.logger = logger.NewNoopLogger()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("payment_ledger"),
		tcpostgres.WithUsername("ledger"),
		tcpostgres.WithPassword("ledger"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err, "failed to start postgres container")
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	cfg, err := FromAppConfig(config.DatabaseConfig{
		Driver:        "postgres",
		Host:          host,
		Port:          port.Port(),
		Username:      "ledger",
		Password:      "ledger",
		Database:      "payment_ledger",
		SSLMode:       "disable",
		MaxOpenConns:  10,
		MaxIdleConns:  5,
		QueryTimeout:  5 * time.Second,
		RetryAttempts: 5,
		RetryDelay:    500 * time.Millisecond,
	}, "silent")
	s.Require().NoError(err)
	cfg.MonitorInterval = 0

	s.manager = NewManager(cfg, s.logger, s.timeProvider)
	_, err = s.manager.Connect(ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.manager.Migrate(ctx))
	s.uow = s.manager.CreateUnitOfWork()

	err = migration.SeedAccounts(ctx, s.uow, []config.AccountSeed{
		{ID: "ACC-A", Currency: "INR", OpeningBalance: "1000000.00"},
		{ID: "ACC-B", Currency: "INR"},
	}, s.timeProvider, s.logger)
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.manager != nil {
		_ = s.manager.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *PostgresIntegrationSuite) newTransaction(amount string) *entity.Transaction {
	tx, err := entity.NewTransaction(entity.NewTransactionParams{
		Type:          entity.TypeTransfer,
		Amount:        entity.MustParseMoney(amount, entity.CurrencyINR),
		Channel:       entity.ChannelInternal,
		InitiatedBy:   "integration",
		FromAccountID: "ACC-A",
		ToAccountID:   "ACC-B",
		Metadata:      map[string]any{"purpose": "test"},
	}, s.timeProvider)
	s.Require().NoError(err)
	return tx
}

func (s *PostgresIntegrationSuite) TestMigrateIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.manager.Migrate(ctx))

	version, err := s.manager.migrationMgr.GetCurrentVersion(ctx)
	s.Require().NoError(err)
	s.Equal(migration.CurrentSchemaVersion, version)
	s.NoError(s.manager.Ping(ctx))
}

func (s *PostgresIntegrationSuite) TestTransactionRoundTripAndVersionConflict() {
	ctx := context.Background()
	tx := s.newTransaction("2500.75")

	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		return s.uow.GetTransactionRepository(ctx).Create(ctx, tx)
	})
	s.Require().NoError(err)

	err = persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		return s.uow.GetTransactionRepository(ctx).Create(ctx, tx)
	})
	s.ErrorIs(err, errs.ErrDuplicateTransaction)

	var loaded *entity.Transaction
	err = persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		var err error
		loaded, err = s.uow.GetTransactionRepository(ctx).Load(ctx, tx.ID())
		return err
	})
	s.Require().NoError(err)
	s.Equal(tx.ReferenceNumber(), loaded.ReferenceNumber())
	s.True(tx.Amount().Equal(loaded.Amount()))
	s.Equal("test", loaded.Metadata()["purpose"])

	stale := loaded.Version()
	s.Require().NoError(loaded.BeginProcessing(stale, s.timeProvider))
	err = persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		return s.uow.GetTransactionRepository(ctx).Save(ctx, loaded, stale)
	})
	s.Require().NoError(err)

	err = persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		return s.uow.GetTransactionRepository(ctx).Save(ctx, loaded, stale)
	})
	s.ErrorIs(err, errs.ErrConcurrentModification)

	err = persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		_, err := s.uow.GetTransactionRepository(ctx).Load(ctx, "missing")
		return err
	})
	s.ErrorIs(err, errs.ErrTransactionNotFound)
}

func (s *PostgresIntegrationSuite) TestUnitsDoNotNest() {
	ctx, err := s.uow.Begin(context.Background())
	s.Require().NoError(err)
	defer func() { _ = s.uow.Rollback(ctx) }()

	_, err = s.uow.Begin(ctx)
	s.Error(err)
}

func (s *PostgresIntegrationSuite) TestRTGSIdempotencyKeyIsUnique() {
	ctx := context.Background()

	create := func(key string) error {
		transfer := entity.NewRTGSTransfer(entity.NewRTGSTransferParams{
			CustomerID:         "CUST-1",
			SenderAccountID:    "ACC-A",
			BeneficiaryAccount: "123456789012",
			BeneficiaryIFSC:    "HDFC0001234",
			BeneficiaryName:    "Beneficiary",
			Amount:             entity.MustParseMoney("300000.00", entity.CurrencyINR),
			IdempotencyKey:     key,
		}, s.timeProvider)
		policy := entity.RTGSPolicy{
			Currency:            entity.CurrencyINR,
			MinimumAmount:       entity.MustParseMoney("200000", entity.CurrencyINR),
			MaximumAmount:       entity.MustParseMoney("10000000", entity.CurrencyINR),
			DailyLimit:          entity.MustParseMoney("50000000", entity.CurrencyINR),
			SettlementAccountID: "ACC-B",
		}
		return persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
			repo := s.uow.GetRTGSRepository(ctx)
			used, err := repo.SumDailyAmount(ctx, "CUST-1", s.timeProvider.Now(), entity.CurrencyINR)
			if err != nil {
				return err
			}
			linked, err := transfer.Validate(transfer.Version(), policy, used, "integration", s.timeProvider)
			if err != nil {
				return err
			}
			if err := s.uow.GetTransactionRepository(ctx).Create(ctx, linked); err != nil {
				return err
			}
			return repo.Create(ctx, transfer)
		})
	}

	s.Require().NoError(create("key-1"))
	s.ErrorIs(create("key-1"), errs.ErrDuplicateTransaction)
	s.NoError(create(""))
	s.NoError(create(""))

	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		found, err := s.uow.GetRTGSRepository(ctx).FindByIdempotencyKey(ctx, "CUST-1", "key-1")
		if err != nil {
			return err
		}
		s.Equal(entity.RTGSValidated, found.Status())

		used, err := s.uow.GetRTGSRepository(ctx).SumDailyAmount(ctx, "CUST-1", s.timeProvider.Now(), entity.CurrencyINR)
		if err != nil {
			return err
		}
		s.Equal("900000.00", used.StringFixed())
		return nil
	})
	s.NoError(err)
}

func (s *PostgresIntegrationSuite) TestSettlementLease() {
	ctx := context.Background()
	locks := s.uow.SettlementLocks()
	key := "transaction:" + strconv.FormatInt(time.Now().UnixNano(), 10)

	s.Require().NoError(locks.AcquireLock(ctx, key, "worker-1", time.Minute))
	s.NoError(locks.AcquireLock(ctx, key, "worker-1", time.Minute), "owner renews its own lease")

	err := locks.AcquireLock(ctx, key, "worker-2", time.Minute)
	s.True(errors.Is(err, errs.ErrAggregateLocked))

	s.NoError(locks.ReleaseLock(ctx, key, "worker-2"), "foreign release is a no-op")
	s.ErrorIs(locks.AcquireLock(ctx, key, "worker-2", time.Minute), errs.ErrAggregateLocked)

	s.Require().NoError(locks.ReleaseLock(ctx, key, "worker-1"))
	s.Require().NoError(locks.AcquireLock(ctx, key, "worker-2", -time.Second))

	// an expired lease can be taken over and swept
	s.NoError(locks.AcquireLock(ctx, key, "worker-3", -time.Second))
	removed, err := locks.CleanupExpiredLocks(ctx)
	s.NoError(err)
	s.GreaterOrEqual(removed, int64(1))
}

// openAccounts stores a funded source and an empty destination under fresh ids
func (s *PostgresIntegrationSuite) openAccounts(ctx context.Context, prefix, opening string) (string, string) {
	suffix := strconv.FormatInt(time.Now().UnixNano(), 10)
	from, to := prefix+"-FROM-"+suffix, prefix+"-TO-"+suffix

	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		for id, balance := range map[string]string{from: opening, to: "0.00"} {
			account, err := entity.NewAccount(id, entity.MustParseMoney(balance, entity.CurrencyINR), s.timeProvider)
			if err != nil {
				return err
			}
			if err := s.uow.GetAccountRepository(ctx).Create(ctx, account); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)
	return from, to
}

func (s *PostgresIntegrationSuite) balance(ctx context.Context, accountID string) string {
	var out string
	err := persistence.WithinTransaction(ctx, s.uow, func(ctx context.Context) error {
		account, err := s.uow.GetAccountRepository(ctx).Get(ctx, accountID)
		if err != nil {
			return err
		}
		out = account.Balance().StringFixed()
		return nil
	})
	s.Require().NoError(err)
	return out
}

func (s *PostgresIntegrationSuite) ledger() *transaction.Service {
	return transaction.NewService(s.uow, event.NewAuditLogPublisher(s.logger), s.timeProvider, s.logger)
}

func (s *PostgresIntegrationSuite) TestSettleMovesBalancesInOneUnit() {
	ctx := context.Background()
	from, to := s.openAccounts(ctx, "SETTLE", "500.00")
	ledger := s.ledger()

	tx, err := ledger.Create(ctx, entity.NewTransactionParams{
		Type:          entity.TypeTransfer,
		Amount:        entity.MustParseMoney("120.00", entity.CurrencyINR),
		InitiatedBy:   "integration",
		FromAccountID: from,
		ToAccountID:   to,
	})
	s.Require().NoError(err)
	_, err = ledger.BeginProcessing(ctx, tx.ID(), tx.Version())
	s.Require().NoError(err)

	completed, err := ledger.Settle(ctx, tx.ID(), tx.Version()+1, nil)
	s.Require().NoError(err)
	s.Equal(entity.StatusCompleted, completed.Status())
	s.Equal("380.00", s.balance(ctx, from))
	s.Equal("120.00", s.balance(ctx, to))

	stored, err := ledger.Get(ctx, tx.ID())
	s.Require().NoError(err)
	s.Equal(entity.StatusCompleted, stored.Status())
	s.Len(stored.Legs(), 2)
}

func (s *PostgresIntegrationSuite) TestSettleRollsBackBalancesWhenCompletionFails() {
	ctx := context.Background()
	db := s.manager.DB()

	// completing a transaction from this initiator fails after the balances were written
	s.Require().NoError(db.Exec(`
		CREATE OR REPLACE FUNCTION reject_test_completion() RETURNS trigger AS $$
		BEGIN
			IF NEW.status = 'completed' AND NEW.initiated_by = 'reject-completion' THEN
				RAISE EXCEPTION 'completion rejected';
			END IF;
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`).Error)
	s.Require().NoError(db.Exec(`
		CREATE TRIGGER reject_test_completion BEFORE UPDATE ON transactions
		FOR EACH ROW EXECUTE FUNCTION reject_test_completion()`).Error)
	defer func() {
		_ = db.Exec("DROP TRIGGER IF EXISTS reject_test_completion ON transactions").Error
		_ = db.Exec("DROP FUNCTION IF EXISTS reject_test_completion()").Error
	}()

	from, to := s.openAccounts(ctx, "ROLLBACK", "500.00")
	ledger := s.ledger()

	tx, err := ledger.Create(ctx, entity.NewTransactionParams{
		Type:          entity.TypeTransfer,
		Amount:        entity.MustParseMoney("200.00", entity.CurrencyINR),
		InitiatedBy:   "reject-completion",
		FromAccountID: from,
		ToAccountID:   to,
	})
	s.Require().NoError(err)
	_, err = ledger.BeginProcessing(ctx, tx.ID(), tx.Version())
	s.Require().NoError(err)

	_, err = ledger.Settle(ctx, tx.ID(), tx.Version()+1, nil)
	s.Require().Error(err)

	s.Equal("500.00", s.balance(ctx, from))
	s.Equal("0.00", s.balance(ctx, to))

	stored, err := ledger.Get(ctx, tx.ID())
	s.Require().NoError(err)
	s.Equal(entity.StatusProcessing, stored.Status())
	s.Empty(stored.Legs())
}

func (s *PostgresIntegrationSuite) TestReverseRejectedAfterRefund() {
	ctx := context.Background()
	from, to := s.openAccounts(ctx, "REFUND", "1000.00")
	ledger := s.ledger()

	tx, err := ledger.Create(ctx, entity.NewTransactionParams{
		Type:          entity.TypeTransfer,
		Amount:        entity.MustParseMoney("100.00", entity.CurrencyINR),
		InitiatedBy:   "integration",
		FromAccountID: from,
		ToAccountID:   to,
	})
	s.Require().NoError(err)
	_, err = ledger.BeginProcessing(ctx, tx.ID(), tx.Version())
	s.Require().NoError(err)
	completed, err := ledger.Settle(ctx, tx.ID(), tx.Version()+1, nil)
	s.Require().NoError(err)

	_, err = ledger.Refund(ctx, tx.ID(), entity.MustParseMoney("40.00", entity.CurrencyINR), "support")
	s.Require().NoError(err)

	_, err = ledger.Reverse(ctx, tx.ID(), completed.Version(), "ops")
	s.ErrorIs(err, errs.ErrAlreadyRefunded)
	s.Equal("940.00", s.balance(ctx, from))
	s.Equal("60.00", s.balance(ctx, to))
}
