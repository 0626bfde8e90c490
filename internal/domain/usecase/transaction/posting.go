package transaction

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
)

// Posting is one side of a settlement requested by the caller
type Posting struct {
	AccountID   string
	Type        entity.LegType
	Amount      entity.Money
	Description string
}

// defaultPostings moves the full amount from the source to the destination account
func defaultPostings(tx *entity.Transaction) []Posting {
	desc := string(tx.Type()) + " " + tx.ReferenceNumber()
	return []Posting{
		{AccountID: tx.FromAccountID(), Type: entity.LegDebit, Amount: tx.Amount(), Description: desc},
		{AccountID: tx.ToAccountID(), Type: entity.LegCredit, Amount: tx.Amount(), Description: desc},
	}
}

// accountSet tracks the accounts touched inside one unit of work so that
// legs are built from, and applied to, the same loaded balances
type accountSet struct {
	repo         persistence.AccountRepository
	timeProvider coreport.TimeProvider
	loaded       map[string]*entity.Account
	expected     map[string]int64
	order        []string
}

func newAccountSet(repo persistence.AccountRepository, timeProvider coreport.TimeProvider) *accountSet {
	return &accountSet{
		repo:         repo,
		timeProvider: timeProvider,
		loaded:       make(map[string]*entity.Account),
		expected:     make(map[string]int64),
	}
}

func (s *accountSet) get(ctx context.Context, accountID string) (*entity.Account, error) {
	if account, ok := s.loaded[accountID]; ok {
		return account, nil
	}
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.loaded[accountID] = account
	s.expected[accountID] = account.Version()
	s.order = append(s.order, accountID)
	return account, nil
}

// balanceOf adapts the set to the aggregate's balance lookup
func (s *accountSet) balanceOf(ctx context.Context) entity.BalanceLookup {
	return func(accountID string) (entity.Money, error) {
		account, err := s.get(ctx, accountID)
		if err != nil {
			return entity.Money{}, err
		}
		return account.Balance(), nil
	}
}

// post builds a leg from the current balance, adds it to tx and applies it
func (s *accountSet) post(ctx context.Context, tx *entity.Transaction, posting Posting) error {
	account, err := s.get(ctx, posting.AccountID)
	if err != nil {
		return err
	}
	leg, err := entity.NewTransactionLeg(posting.AccountID, posting.Type, posting.Amount, account.Balance(), posting.Description)
	if err != nil {
		return err
	}
	if err := tx.AddLeg(tx.Version(), leg); err != nil {
		return err
	}
	return account.ApplyLeg(leg, s.timeProvider)
}

// apply moves balances along legs that were built ahead of time
func (s *accountSet) apply(ctx context.Context, legs []entity.TransactionLeg) error {
	for _, leg := range legs {
		account, err := s.get(ctx, leg.AccountID)
		if err != nil {
			return err
		}
		if err := account.ApplyLeg(leg, s.timeProvider); err != nil {
			return err
		}
	}
	return nil
}

// save writes every touched account back under its loaded version
func (s *accountSet) save(ctx context.Context) error {
	for _, id := range s.order {
		if err := s.repo.Save(ctx, s.loaded[id], s.expected[id]); err != nil {
			return err
		}
	}
	return nil
}
