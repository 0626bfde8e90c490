package entity

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/google/uuid"
)

// Metadata keys written by the aggregate itself
const (
	MetaReversedBy = "reversed_by"
	MetaReverses   = "reverses"
	MetaRefunds    = "refunds"
)

// ReasonTimeout is the failure reason recorded when a rail call times out
const ReasonTimeout = "timeout"

// DefaultPriority is used when a transaction is created without one
const DefaultPriority = 5

// BalanceLookup returns the current balance of a ledger account
type BalanceLookup func(accountID string) (Money, error)

// NewTransactionParams holds the inputs of NewTransaction
type NewTransactionParams struct {
	Type                  TransactionType
	Amount                Money
	Channel               Channel
	InitiatedBy           string
	FromAccountID         string
	ToAccountID           string
	Priority              int
	OriginalTransactionID string
	Metadata              map[string]any
}

// Transaction is the double-entry aggregate root. State changes only
// through its methods, each guarded by the caller's last observed version.
type Transaction struct {
	mu sync.Mutex

	id                    string
	txType                TransactionType
	status                TransactionStatus
	priority              int
	amount                Money
	referenceNumber       string
	fromAccountID         string
	toAccountID           string
	originalTransactionID string
	legs                  []TransactionLeg
	channel               Channel
	initiatedAt           time.Time
	processedAt           *time.Time
	completedAt           *time.Time
	initiatedBy           string
	authorizedBy          string
	failureReason         string
	retryCount            int
	metadata              map[string]any
	version               int64

	events eventLog
}

// NewTransaction creates a pending transaction at version 0
func NewTransaction(p NewTransactionParams, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if !p.Type.valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", errs.ErrInvalidRequest, p.Type)
	}
	if p.Channel == "" {
		p.Channel = ChannelInternal
	}
	if !p.Channel.valid() {
		return nil, fmt.Errorf("%w: unknown channel %q", errs.ErrInvalidRequest, p.Channel)
	}
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction amount must be positive", errs.ErrInvalidAmount)
	}
	if strings.TrimSpace(p.InitiatedBy) == "" {
		return nil, fmt.Errorf("%w: initiated_by is required", errs.ErrInvalidRequest)
	}
	if p.Priority == 0 {
		p.Priority = DefaultPriority
	}

	id := uuid.NewString()
	now := timeProvider.Now()
	metadata := map[string]any{}
	maps.Copy(metadata, p.Metadata)

	return &Transaction{
		id:                    id,
		txType:                p.Type,
		status:                StatusPending,
		priority:              p.Priority,
		amount:                p.Amount,
		referenceNumber:       GenerateReferenceNumber(id, now),
		fromAccountID:         p.FromAccountID,
		toAccountID:           p.ToAccountID,
		originalTransactionID: p.OriginalTransactionID,
		channel:               p.Channel,
		initiatedAt:           now,
		initiatedBy:           p.InitiatedBy,
		metadata:              metadata,
	}, nil
}

// Getters

func (t *Transaction) ID() string { return t.id }

func (t *Transaction) Type() TransactionType { return t.txType }

func (t *Transaction) Amount() Money { return t.amount }

func (t *Transaction) ReferenceNumber() string { return t.referenceNumber }

func (t *Transaction) Channel() Channel { return t.channel }

func (t *Transaction) FromAccountID() string { return t.fromAccountID }

func (t *Transaction) ToAccountID() string { return t.toAccountID }

func (t *Transaction) OriginalTransactionID() string { return t.originalTransactionID }

func (t *Transaction) InitiatedAt() time.Time { return t.initiatedAt }

func (t *Transaction) InitiatedBy() string { return t.initiatedBy }

func (t *Transaction) Priority() int { return t.priority }

// Status returns the current status
func (t *Transaction) Status() TransactionStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Version returns the optimistic concurrency version
func (t *Transaction) Version() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// Legs returns a copy of the legs in insertion order
func (t *Transaction) Legs() []TransactionLeg {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.legs)
}

// Metadata returns a copy of the metadata map
func (t *Transaction) Metadata() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.metadata)
}

// FailureReason returns the recorded failure reason, if any
func (t *Transaction) FailureReason() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failureReason
}

// RetryCount returns how many settlement retries were recorded
func (t *Transaction) RetryCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.retryCount
}

// Operations

// AddLeg appends a leg while pending or processing. Neither side may
// exceed the transaction amount so the entry stays balanceable.
func (t *Transaction) AddLeg(expectedVersion int64, leg TransactionLeg) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return err
	}
	if t.status != StatusPending && t.status != StatusProcessing {
		return errs.NewTransitionError(AggregateTransaction, t.id, string(t.status), "add leg", true)
	}
	if err := t.checkLeg(leg); err != nil {
		return err
	}

	t.legs = append(t.legs, leg)
	t.version++
	return nil
}

// BeginProcessing moves pending to processing
func (t *Transaction) BeginProcessing(expectedVersion int64, timeProvider coreport.TimeProvider) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return err
	}
	if err := t.transition(actBeginProcessing, "", timeProvider); err != nil {
		return err
	}
	now := timeProvider.Now()
	t.processedAt = &now
	return nil
}

// Complete moves processing to completed once debits equal credits equal the amount
func (t *Transaction) Complete(expectedVersion int64, timeProvider coreport.TimeProvider) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return err
	}
	if _, err := t.next(actComplete); err != nil {
		return err
	}
	if err := t.checkBalanced(); err != nil {
		return err
	}
	if err := t.transition(actComplete, "", timeProvider); err != nil {
		return err
	}
	now := timeProvider.Now()
	t.completedAt = &now
	return nil
}

// Fail moves any non-terminal transaction to failed
func (t *Transaction) Fail(expectedVersion int64, reason string, timeProvider coreport.TimeProvider) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return err
	}
	if err := t.transition(actFail, reason, timeProvider); err != nil {
		return err
	}
	t.failureReason = reason
	return nil
}

// Cancel moves pending to cancelled
func (t *Transaction) Cancel(expectedVersion int64, reason string, timeProvider coreport.TimeProvider) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return err
	}
	if err := t.transition(actCancel, reason, timeProvider); err != nil {
		return err
	}
	t.failureReason = reason
	return nil
}

// Authorize records the approver of a pending transaction
func (t *Transaction) Authorize(expectedVersion int64, approver string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return err
	}
	if t.status != StatusPending {
		return errs.NewTransitionError(AggregateTransaction, t.id, string(t.status), "authorize", t.status.IsTerminal())
	}
	if strings.TrimSpace(approver) == "" {
		return fmt.Errorf("%w: approver is required", errs.ErrInvalidRequest)
	}
	t.authorizedBy = approver
	t.version++
	return nil
}

// RecordRetry counts a settlement retry against a non-terminal transaction
func (t *Transaction) RecordRetry(expectedVersion int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return errs.NewTransitionError(AggregateTransaction, t.id, string(t.status), "record retry", true)
	}
	t.retryCount++
	t.version++
	return nil
}

// Reverse compensates a completed transaction. It returns a new pending
// reversal whose legs mirror the original, and marks the original reversed.
func (t *Transaction) Reverse(
	expectedVersion int64,
	initiatedBy string,
	balanceOf BalanceLookup,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkVersion(expectedVersion); err != nil {
		return nil, err
	}
	if _, err := t.next(actReverse); err != nil {
		return nil, err
	}

	reversal, err := NewTransaction(NewTransactionParams{
		Type:                  TypeReversal,
		Amount:                t.amount,
		Channel:               t.channel,
		InitiatedBy:           initiatedBy,
		FromAccountID:         t.toAccountID,
		ToAccountID:           t.fromAccountID,
		Priority:              t.priority,
		OriginalTransactionID: t.id,
		Metadata:              map[string]any{MetaReverses: t.id},
	}, timeProvider)
	if err != nil {
		return nil, err
	}

	running := make(map[string]Money)
	for _, leg := range t.legs {
		before, ok := running[leg.AccountID]
		if !ok {
			if before, err = balanceOf(leg.AccountID); err != nil {
				return nil, err
			}
		}
		mirrored, err := leg.Mirror(before, "reversal of "+t.referenceNumber)
		if err != nil {
			return nil, err
		}
		reversal.legs = append(reversal.legs, mirrored)
		reversal.version++
		running[leg.AccountID] = mirrored.BalanceAfter
	}

	if err := t.transition(actReverse, "reversed by "+reversal.id, timeProvider); err != nil {
		return nil, err
	}
	t.metadata[MetaReversedBy] = reversal.id
	return reversal, nil
}

// NewRefund builds a pending refund linked to a completed transaction.
// The original is not modified; cumulative limits are the caller's concern.
func NewRefund(
	original *Transaction,
	amount Money,
	initiatedBy string,
	balanceOf BalanceLookup,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	original.mu.Lock()
	status, from, to := original.status, original.fromAccountID, original.toAccountID
	originalAmount, channel, ref := original.amount, original.channel, original.referenceNumber
	original.mu.Unlock()

	if status != StatusCompleted {
		return nil, errs.NewTransitionError(AggregateTransaction, original.id, string(status), "refund", status.IsTerminal())
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: refund needs both accounts on the original", errs.ErrInvalidRequest)
	}
	cmp, err := amount.Compare(originalAmount)
	if err != nil {
		return nil, err
	}
	if cmp > 0 {
		return nil, fmt.Errorf("%w: %s > %s", errs.ErrRefundExceedsAmount, amount, originalAmount)
	}

	refund, err := NewTransaction(NewTransactionParams{
		Type:                  TypeRefund,
		Amount:                amount,
		Channel:               channel,
		InitiatedBy:           initiatedBy,
		FromAccountID:         to,
		ToAccountID:           from,
		Priority:              original.priority,
		OriginalTransactionID: original.id,
		Metadata:              map[string]any{MetaRefunds: original.id},
	}, timeProvider)
	if err != nil {
		return nil, err
	}

	debitBefore, err := balanceOf(to)
	if err != nil {
		return nil, err
	}
	debit, err := NewTransactionLeg(to, LegDebit, amount, debitBefore, "refund of "+ref)
	if err != nil {
		return nil, err
	}
	creditBefore, err := balanceOf(from)
	if err != nil {
		return nil, err
	}
	credit, err := NewTransactionLeg(from, LegCredit, amount, creditBefore, "refund of "+ref)
	if err != nil {
		return nil, err
	}
	refund.legs = append(refund.legs, debit, credit)
	refund.version += 2
	return refund, nil
}

// PullEvents drains the status changes recorded since the last call
func (t *Transaction) PullEvents() []StatusChange {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.events.pull()
}

// DebitTotal returns the sum of debit legs
func (t *Transaction) DebitTotal() Money {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sumLegs(LegDebit)
}

// CreditTotal returns the sum of credit legs
func (t *Transaction) CreditTotal() Money {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sumLegs(LegCredit)
}

// Internal helpers, all called with mu held

func (t *Transaction) checkVersion(expected int64) error {
	if expected != t.version {
		return errs.NewConcurrentModificationError(AggregateTransaction, t.id, expected, t.version)
	}
	return nil
}

// next resolves the target status for action. Every successful mutation,
// each AddLeg included, bumps version exactly once, so create, two legs,
// begin processing and complete ends at version 4.
func (t *Transaction) next(action txAction) (TransactionStatus, error) {
	to, ok := txTransitions[action][t.status]
	if !ok {
		terminal := t.status.IsTerminal()
		return "", errs.NewTransitionError(AggregateTransaction, t.id, string(t.status), string(action), terminal)
	}
	return to, nil
}

func (t *Transaction) transition(action txAction, reason string, timeProvider coreport.TimeProvider) error {
	to, err := t.next(action)
	if err != nil {
		return err
	}
	from := t.status
	t.status = to
	t.version++
	if to.IsTerminal() {
		t.events.record(StatusChange{
			Aggregate:     AggregateTransaction,
			AggregateID:   t.id,
			TransactionID: t.id,
			OldStatus:     string(from),
			NewStatus:     string(to),
			Reason:        reason,
			OccurredAt:    timeProvider.Now(),
		})
	}
	return nil
}

func (t *Transaction) checkLeg(leg TransactionLeg) error {
	if err := leg.Validate(); err != nil {
		return err
	}
	if leg.Amount.Currency() != t.amount.Currency() || leg.BalanceBefore.Currency() != t.amount.Currency() {
		return fmt.Errorf("%w: leg in %s on %s transaction", errs.ErrCurrencyMismatch, leg.Amount.Currency(), t.amount.Currency())
	}
	for _, existing := range t.legs {
		if existing.ID == leg.ID {
			return fmt.Errorf("%w: duplicate leg id %s", errs.ErrInvalidLeg, leg.ID)
		}
	}

	side, err := t.sumLegs(leg.Type).Add(leg.Amount)
	if err != nil {
		return err
	}
	if cmp, _ := side.Compare(t.amount); cmp > 0 {
		return fmt.Errorf("%w: %s total %s would exceed transaction amount %s",
			errs.ErrUnbalancedLegs, leg.Type, side, t.amount)
	}
	return nil
}

func (t *Transaction) checkBalanced() error {
	if len(t.legs) == 0 {
		return fmt.Errorf("%w: transaction has no legs", errs.ErrUnbalancedLegs)
	}
	debits, credits := t.sumLegs(LegDebit), t.sumLegs(LegCredit)
	if !debits.Equal(credits) || !debits.Equal(t.amount) {
		return fmt.Errorf("%w: debits %s, credits %s, amount %s", errs.ErrUnbalancedLegs, debits, credits, t.amount)
	}
	return nil
}

func (t *Transaction) sumLegs(legType LegType) Money {
	total := ZeroMoney(t.amount.Currency())
	for _, leg := range t.legs {
		if leg.Type == legType {
			// currencies were checked on the way in
			total, _ = total.Add(leg.Amount)
		}
	}
	return total
}
