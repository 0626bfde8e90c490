package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stagingYAML = `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  username: ledger
  database: payment_ledger
  accounts:
    - id: SETTLEMENT-RTGS
      currency: INR
      openingBalance: "0"
settlement:
  workers: 8
  retryInterval: 250ms
rtgs:
  maxEnquiries: 4
upi:
  pendingTimeout: 90s
`

func useConfigDir(t *testing.T, env, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))

	previous := ConfigPaths
	ConfigPaths = []string{dir}
	t.Cleanup(func() { ConfigPaths = previous })
	t.Setenv("PL_ENV", env)
}

func TestLoadConfig(t *testing.T) {
	t.Run("file values over defaults", func(t *testing.T) {
		useConfigDir(t, "staging", stagingYAML)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "5432", cfg.Database.Port)
		require.Len(t, cfg.Database.Accounts, 1)
		assert.Equal(t, "SETTLEMENT-RTGS", cfg.Database.Accounts[0].ID)
		assert.Equal(t, 8, cfg.Settlement.Workers)
		assert.Equal(t, 250*time.Millisecond, cfg.Settlement.RetryInterval)
		assert.Equal(t, 30*time.Second, cfg.Settlement.RailTimeout)
		assert.Equal(t, 4, cfg.RTGS.MaxEnquiries)
		assert.Equal(t, 90*time.Second, cfg.UPI.PendingTimeout)
		assert.Equal(t, "200000.00", cfg.RTGS.MinimumAmount)
		assert.NoError(t, Validate(cfg))
	})

	t.Run("short environment overrides", func(t *testing.T) {
		useConfigDir(t, "staging", stagingYAML)
		t.Setenv("PL_DB_HOST", "db.override")
		t.Setenv("PL_SERVER_PORT", "7070")
		t.Setenv("PL_SETTLEMENT_WORKERS", "not-a-number")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "db.override", cfg.Database.Host)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, 8, cfg.Settlement.Workers)
	})

	t.Run("invalid numeric overrides keep file values", func(t *testing.T) {
		useConfigDir(t, "staging", stagingYAML)
		t.Setenv("PL_SERVER_PORT", "-1")
		t.Setenv("PL_SETTLEMENT_WORKERS", "16")
		t.Setenv("PL_DB_MAX_OPEN_CONNS", "lots")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 16, cfg.Settlement.Workers)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	})

	t.Run("missing file", func(t *testing.T) {
		useConfigDir(t, "staging", stagingYAML)
		t.Setenv("PL_ENV", "nowhere")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "memory"},
		Settlement: SettlementConfig{
			Workers:            2,
			DefaultMaxAttempts: 3,
		},
		RTGS: RTGSConfig{
			Currency:          "INR",
			MinimumAmount:     "200000",
			MaximumAmount:     "1000000",
			DailyLimit:        "5000000",
			SettlementAccount: "SETTLEMENT-RTGS",
			MaxEnquiries:      3,
		},
		UPI: UPIConfig{
			Currency:          "inr",
			AmountCeiling:     "100000",
			PendingTimeout:    5 * time.Minute,
			SettlementAccount: "SETTLEMENT-UPI",
		},
	}
}

func TestRTGSConfigPolicy(t *testing.T) {
	policy, err := validConfig().RTGS.Policy()
	require.NoError(t, err)

	assert.Equal(t, entity.CurrencyINR, policy.Currency)
	assert.True(t, policy.MinimumAmount.Equal(entity.MustParseMoney("200000", entity.CurrencyINR)))
	assert.True(t, policy.DailyLimit.Equal(entity.MustParseMoney("5000000", entity.CurrencyINR)))
	assert.Equal(t, "SETTLEMENT-RTGS", policy.SettlementAccountID)

	bad := validConfig().RTGS
	bad.MinimumAmount = "2000000"
	_, err = bad.Policy()
	assert.ErrorContains(t, err, "exceeds maximumAmount")

	bad = validConfig().RTGS
	bad.Currency = "XYZ"
	_, err = bad.Policy()
	assert.ErrorContains(t, err, "rtgs.currency")
}

func TestUPIConfigPolicy(t *testing.T) {
	policy, err := validConfig().UPI.Policy()
	require.NoError(t, err)

	assert.Equal(t, entity.CurrencyINR, policy.Currency)
	assert.Equal(t, coreport.Duration(5*time.Minute), policy.PendingTimeout)

	bad := validConfig().UPI
	bad.AmountCeiling = "0"
	_, err = bad.Policy()
	assert.ErrorContains(t, err, "must be positive")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))

	cfg := validConfig()
	cfg.Database.Driver = "postgres"
	cfg.Settlement.Workers = 0
	cfg.Database.Accounts = []AccountSeed{{Currency: "INR"}}

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "database.host")
	assert.ErrorContains(t, err, "settlement.workers must be positive")
	assert.ErrorContains(t, err, "database.accounts[0].id")

	cfg = validConfig()
	cfg.Settlement.DistributedLocks = true
	assert.ErrorContains(t, Validate(cfg), "requires the postgres driver")
}
