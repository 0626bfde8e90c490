package database

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
	coremocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestErrorMapper(t *testing.T) {
	mapper := NewErrorMapper()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"serialization failure", errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"), errs.ErrAggregateLocked},
		{"deadlock", errors.New("deadlock detected"), errs.ErrAggregateLocked},
		{"duplicate", errors.New(`duplicate key value violates unique constraint "transactions_pkey"`), errs.ErrDuplicateTransaction},
		{"foreign key", errors.New("violates foreign key constraint"), errs.ErrConstraintViolation},
		{"refused", errors.New("dial tcp: connection refused"), errs.ErrDatabaseConnection},
		{"timeout", errors.New("i/o timeout"), errs.ErrDatabaseConnection},
		{"unknown", errors.New("syntax error at or near"), errs.ErrInternalServer},
		{"missing row", gorm.ErrRecordNotFound, errs.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapper.MapError(tt.err, "commit"), tt.want)
		})
	}

	assert.NoError(t, mapper.MapError(nil, "commit"))
	assert.ErrorIs(t, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeUPIPayment), errs.ErrPaymentNotFound)
	assert.ErrorIs(t, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeRTGSTransfer), errs.ErrTransferNotFound)
	assert.ErrorIs(t, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeAccount), errs.ErrAccountNotFound)
}

func TestRetryOnTransientError(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	log := logger.NewNoopLogger()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("connection reset by peer")
			}
			return nil
		}, log)
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), cfg, func() error {
			calls++
			return errors.New(`duplicate key value violates unique constraint`)
		}, log)
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), cfg, func() error {
			calls++
			return errors.New("server closed the connection unexpectedly")
		}, log)
		assert.ErrorContains(t, err, "server closed")
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		slow := RetryConfig{MaxRetries: 3, RetryInterval: time.Hour, MaxInterval: time.Hour}
		err := RetryOnTransientError(ctx, slow, func() error {
			return errors.New("too many connections")
		}, log)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: time.Second, JitterFactor: 0.2}

	for i := 0; i < 20; i++ {
		d := calculateBackoffWithJitter(2, cfg)
		assert.GreaterOrEqual(t, d, 400*time.Millisecond)
		assert.LessOrEqual(t, d, 480*time.Millisecond)
	}
	assert.LessOrEqual(t, calculateBackoffWithJitter(10, cfg), 1200*time.Millisecond)
}

func TestDatabaseLoggerTrace(t *testing.T) {
	tp := timeprovider.NewRealTimeProvider()
	sql := func() (string, int64) { return `SELECT * FROM "accounts" WHERE id = 'ACC-1'`, 1 }

	t.Run("missing rows are not errors", func(t *testing.T) {
		log := coremocks.NewMockLogger(t)
		log.EXPECT().Debug("SQL Query", mock.Anything).Return()

		dbLogger := NewDatabaseLogger(log, tp, "info", time.Second)
		dbLogger.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	})

	t.Run("errors carry the table", func(t *testing.T) {
		log := coremocks.NewMockLogger(t)
		log.EXPECT().Error("SQL Error", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["table"] == "ACCOUNTS" && fields["type"] == "SELECT"
		})).Return()

		dbLogger := NewDatabaseLogger(log, tp, "warn", time.Second)
		dbLogger.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	})

	t.Run("slow queries warn", func(t *testing.T) {
		log := coremocks.NewMockLogger(t)
		log.EXPECT().Warn("Slow SQL Query", mock.Anything).Return()

		dbLogger := NewDatabaseLogger(log, tp, "warn", time.Millisecond)
		dbLogger.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		log := coremocks.NewMockLogger(t)

		dbLogger := NewDatabaseLogger(log, tp, "info", time.Millisecond).LogMode(gormlogger.Silent)
		dbLogger.Trace(context.Background(), time.Now().Add(-time.Second), sql, errors.New("boom"))
	})
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(config.DatabaseConfig{
		Driver:       "postgres",
		Host:         "db",
		Port:         "6543",
		Username:     "ledger",
		Password:     "secret",
		Database:     "payment_ledger",
		MaxOpenConns: 20,
		MaxIdleConns: 10,
		QueryTimeout: 3 * time.Second,
	}, "warn")
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 20, cfg.MaxOpenConns)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "host=db port=6543 user=ledger password=secret dbname=payment_ledger sslmode=disable", cfg.DSN())

	_, err = FromAppConfig(config.DatabaseConfig{Driver: "postgres", Port: "five"}, "")
	assert.ErrorContains(t, err, "invalid database port")

	_, err = FromAppConfig(config.DatabaseConfig{
		Driver: "postgres", Host: "db", Port: "5432", Username: "u", Password: "p", Database: "d",
		MaxOpenConns: 5, MaxIdleConns: 10,
	}, "")
	assert.ErrorContains(t, err, "exceed max open connections")
}
