package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates the PostgreSQL constraints and indexes GORM tags cannot express
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

type statement struct {
	name string
	sql  string
}

var constraints = []statement{
	{"chk_accounts_balance_non_negative", `
		DO $$ BEGIN
			ALTER TABLE accounts ADD CONSTRAINT chk_accounts_balance_non_negative CHECK (balance >= 0);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`},
	{"chk_transactions_amount_positive", `
		DO $$ BEGIN
			ALTER TABLE transactions ADD CONSTRAINT chk_transactions_amount_positive CHECK (amount > 0);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`},
	{"fk_rtgs_transfers_transaction", `
		DO $$ BEGIN
			ALTER TABLE rtgs_transfers ADD CONSTRAINT fk_rtgs_transfers_transaction
				FOREIGN KEY (transaction_id) REFERENCES transactions (id);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`},
	{"fk_upi_payments_transaction", `
		DO $$ BEGIN
			ALTER TABLE upi_payments ADD CONSTRAINT fk_upi_payments_transaction
				FOREIGN KEY (transaction_id) REFERENCES transactions (id);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`},
}

var indexes = []statement{
	// one transfer per customer idempotency key; empty keys are not deduplicated
	{"idx_rtgs_customer_idempotency", `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_rtgs_customer_idempotency
		ON rtgs_transfers (customer_id, idempotency_key)
		WHERE idempotency_key <> ''`},
	{"idx_transactions_open", `
		CREATE INDEX IF NOT EXISTS idx_transactions_open
		ON transactions (status, initiated_at)
		WHERE status IN ('pending', 'processing')`},
	{"idx_transactions_initiated_at_brin", `
		CREATE INDEX IF NOT EXISTS idx_transactions_initiated_at_brin
		ON transactions USING BRIN (initiated_at)
		WITH (pages_per_range = 32)`},
	{"idx_upi_payments_pending_expiry", `
		CREATE INDEX IF NOT EXISTS idx_upi_payments_pending_expiry
		ON upi_payments (expires_at)
		WHERE status = 'pending'`},
}

// CreateConstraints adds check and foreign key constraints
func (m *IndexManager) CreateConstraints(ctx context.Context) error {
	return m.run(ctx, "constraint", constraints)
}

// CreateIndexes adds the partial and BRIN indexes
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	return m.run(ctx, "index", indexes)
}

func (m *IndexManager) run(ctx context.Context, kind string, stmts []statement) error {
	m.logger.Info("Creating PostgreSQL "+kind+"es", map[string]any{"count": len(stmts)})

	for _, stmt := range stmts {
		if err := m.db.WithContext(ctx).Exec(stmt.sql).Error; err != nil {
			m.logger.Error("Failed to create "+kind, map[string]any{
				"name":  stmt.name,
				"error": err.Error(),
			})
			return err
		}
	}
	return nil
}

// ApplyPerformanceTweaks tunes storage of the hot tables. Failures are only logged.
func (m *IndexManager) ApplyPerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	tweaks := []statement{
		// accounts and transactions are updated in place on every settlement
		{"accounts_fillfactor", `ALTER TABLE accounts SET (fillfactor = 80)`},
		{"transactions_fillfactor", `ALTER TABLE transactions SET (fillfactor = 90)`},
		{"transactions_from_account_statistics", `ALTER TABLE transactions ALTER COLUMN from_account_id SET STATISTICS 1000`},
	}
	for _, tweak := range tweaks {
		if err := m.db.WithContext(ctx).Exec(tweak.sql).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"name":  tweak.name,
				"error": err.Error(),
			})
		}
	}
}
