package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const unitKey contextKey = "memory_unit"

type accountRecord struct {
	balance   entity.Money
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

type lease struct {
	owner     string
	expiresAt time.Time
}

// tables holds one copy of every aggregate, as snapshots so that callers
// never share state with the store
type tables struct {
	transactions map[string]entity.TransactionSnapshot
	accounts     map[string]accountRecord
	rtgs         map[string]entity.RTGSTransferSnapshot
	upi          map[string]entity.UPIPaymentSnapshot
}

func newTables() tables {
	return tables{
		transactions: make(map[string]entity.TransactionSnapshot),
		accounts:     make(map[string]accountRecord),
		rtgs:         make(map[string]entity.RTGSTransferSnapshot),
		upi:          make(map[string]entity.UPIPaymentSnapshot),
	}
}

// unit stages the writes of one unit of work until Commit
type unit struct {
	staged tables
	done   bool
}

// Store is an in-memory implementation of the persistence ports used for
// tests and the "memory" database driver. Units of work are serialized and
// their writes become visible atomically on Commit.
type Store struct {
	gate chan struct{}

	mu    sync.RWMutex
	data  tables
	locks map[string]lease
	err   error

	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ persistence.UnitOfWork = (*Store)(nil)

// NewStore creates an empty store
func NewStore(timeProvider coreport.TimeProvider, logger coreport.Logger) *Store {
	return &Store{
		gate:         make(chan struct{}, 1),
		data:         newTables(),
		locks:        make(map[string]lease),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// WithError makes every subsequent repository call fail with err. Pass nil to clear it.
func (s *Store) WithError(err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

func (s *Store) injected() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Begin starts a unit of work. Units are exclusive and do not nest.
func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	if u, ok := ctx.Value(unitKey).(*unit); ok && !u.done {
		return ctx, fmt.Errorf("%w: unit of work already in progress", errs.ErrInternalServer)
	}
	if err := s.injected(); err != nil {
		return ctx, err
	}

	select {
	case s.gate <- struct{}{}:
	case <-ctx.Done():
		return ctx, fmt.Errorf("%w: %v", errs.ErrDatabaseConnection, ctx.Err())
	}

	return context.WithValue(ctx, unitKey, &unit{staged: newTables()}), nil
}

// Commit publishes the staged writes and ends the unit
func (s *Store) Commit(ctx context.Context) error {
	u, ok := ctx.Value(unitKey).(*unit)
	if !ok || u.done {
		return fmt.Errorf("no transaction found in context")
	}

	s.mu.Lock()
	for id, snap := range u.staged.transactions {
		s.data.transactions[id] = snap
	}
	for id, rec := range u.staged.accounts {
		s.data.accounts[id] = rec
	}
	for id, snap := range u.staged.rtgs {
		s.data.rtgs[id] = snap
	}
	for id, snap := range u.staged.upi {
		s.data.upi[id] = snap
	}
	s.mu.Unlock()

	u.done = true
	<-s.gate
	return nil
}

// Rollback discards the staged writes. Rolling back a finished unit is a no-op.
func (s *Store) Rollback(ctx context.Context) error {
	u, ok := ctx.Value(unitKey).(*unit)
	if !ok {
		return fmt.Errorf("no transaction found in context")
	}
	if u.done {
		return nil
	}
	u.done = true
	<-s.gate
	return nil
}

// GetTransactionRepository returns a transaction repository bound to ctx's unit
func (s *Store) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &TransactionRepository{store: s, unit: unitFrom(ctx)}
}

// GetAccountRepository returns an account repository bound to ctx's unit
func (s *Store) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return &AccountRepository{store: s, unit: unitFrom(ctx)}
}

// GetRTGSRepository returns an RTGS repository bound to ctx's unit
func (s *Store) GetRTGSRepository(ctx context.Context) persistence.RTGSTransferRepository {
	return &RTGSTransferRepository{store: s, unit: unitFrom(ctx)}
}

// GetUPIRepository returns a UPI repository bound to ctx's unit
func (s *Store) GetUPIRepository(ctx context.Context) persistence.UPIPaymentRepository {
	return &UPIPaymentRepository{store: s, unit: unitFrom(ctx)}
}

// SettlementLocks returns the lease repository
func (s *Store) SettlementLocks() persistence.SettlementLockRepository {
	return &SettlementLockRepository{store: s}
}

// Ping reports the injected failure, if any
func (s *Store) Ping(_ context.Context) error {
	return s.injected()
}

func unitFrom(ctx context.Context) *unit {
	if u, ok := ctx.Value(unitKey).(*unit); ok && !u.done {
		return u
	}
	return nil
}

// view runs fn with the staged and committed tables. staged is nil outside a unit.
func (s *Store) view(u *unit, fn func(staged *tables, committed *tables) error) error {
	if err := s.injected(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u == nil {
		return fn(nil, &s.data)
	}
	return fn(&u.staged, &s.data)
}

// write runs fn against the tables writes should land in: the unit's
// staging area, or the committed data when there is no unit. Writes
// outside a unit wait for the running unit like an autocommit statement.
func (s *Store) write(u *unit, fn func(target *tables, committed *tables) error) error {
	if err := s.injected(); err != nil {
		return err
	}
	if u != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return fn(&u.staged, &s.data)
	}

	s.gate <- struct{}{}
	defer func() { <-s.gate }()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data, &s.data)
}
