package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/google/uuid"
)

// ReturnReason is the closed set of reasons RBI may return a transfer for
type ReturnReason string

// Return reasons
const (
	ReturnAccountClosed        ReturnReason = "ACCOUNT_CLOSED"
	ReturnInvalidAccount       ReturnReason = "INVALID_ACCOUNT"
	ReturnBeneficiaryDeceased  ReturnReason = "BENEFICIARY_DECEASED"
	ReturnAmountBelowMinimum   ReturnReason = "AMOUNT_BELOW_MINIMUM"
	ReturnAccountTransferred   ReturnReason = "ACCOUNT_TRANSFERRED"
	ReturnIncorrectBeneficiary ReturnReason = "INCORRECT_BENEFICIARY"
	ReturnOther                ReturnReason = "OTHER"
)

// ParseReturnReason accepts only members of the closed enumeration
func ParseReturnReason(s string) (ReturnReason, error) {
	switch r := ReturnReason(s); r {
	case ReturnAccountClosed, ReturnInvalidAccount, ReturnBeneficiaryDeceased,
		ReturnAmountBelowMinimum, ReturnAccountTransferred, ReturnIncorrectBeneficiary, ReturnOther:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", errs.ErrInvalidReturnReason, s)
}

var (
	rtgsAccountPattern = regexp.MustCompile(`^[0-9]{9,18}$`)
	ifscPattern        = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// RTGSPolicy holds the rail limits applied at validation
type RTGSPolicy struct {
	Currency            Currency
	MinimumAmount       Money
	MaximumAmount       Money
	DailyLimit          Money
	SettlementAccountID string
}

// NewRTGSTransferParams holds the inputs of NewRTGSTransfer
type NewRTGSTransferParams struct {
	CustomerID         string
	SenderAccountID    string
	BeneficiaryAccount string
	BeneficiaryIFSC    string
	BeneficiaryName    string
	Amount             Money
	Remarks            string
	IdempotencyKey     string
}

// RTGSTransfer is the RTGS envelope around a ledger Transaction.
// It references the Transaction by id and never owns it.
type RTGSTransfer struct {
	id                 string
	transactionID      string
	customerID         string
	senderAccountID    string
	beneficiaryAccount string
	beneficiaryIFSC    string
	beneficiaryName    string
	amount             Money
	remarks            string
	idempotencyKey     string
	status             RTGSStatus
	utr                string
	returnReason       ReturnReason
	failureReason      string
	createdAt          time.Time
	updatedAt          time.Time
	version            int64

	events eventLog
}

// NewRTGSTransfer creates an initiated transfer. Nothing is checked until Validate.
func NewRTGSTransfer(p NewRTGSTransferParams, timeProvider coreport.TimeProvider) *RTGSTransfer {
	now := timeProvider.Now()
	return &RTGSTransfer{
		id:                 uuid.NewString(),
		customerID:         p.CustomerID,
		senderAccountID:    p.SenderAccountID,
		beneficiaryAccount: strings.TrimSpace(p.BeneficiaryAccount),
		beneficiaryIFSC:    strings.ToUpper(strings.TrimSpace(p.BeneficiaryIFSC)),
		beneficiaryName:    p.BeneficiaryName,
		amount:             p.Amount,
		remarks:            p.Remarks,
		idempotencyKey:     p.IdempotencyKey,
		status:             RTGSInitiated,
		createdAt:          now,
		updatedAt:          now,
	}
}

func (r *RTGSTransfer) ID() string                 { return r.id }
func (r *RTGSTransfer) TransactionID() string      { return r.transactionID }
func (r *RTGSTransfer) CustomerID() string         { return r.customerID }
func (r *RTGSTransfer) SenderAccountID() string    { return r.senderAccountID }
func (r *RTGSTransfer) BeneficiaryAccount() string { return r.beneficiaryAccount }
func (r *RTGSTransfer) BeneficiaryIFSC() string    { return r.beneficiaryIFSC }
func (r *RTGSTransfer) BeneficiaryName() string    { return r.beneficiaryName }
func (r *RTGSTransfer) Amount() Money              { return r.amount }
func (r *RTGSTransfer) Remarks() string            { return r.remarks }
func (r *RTGSTransfer) IdempotencyKey() string     { return r.idempotencyKey }
func (r *RTGSTransfer) Status() RTGSStatus         { return r.status }
func (r *RTGSTransfer) UTR() string                { return r.utr }
func (r *RTGSTransfer) ReturnReason() ReturnReason { return r.returnReason }
func (r *RTGSTransfer) FailureReason() string      { return r.failureReason }
func (r *RTGSTransfer) CreatedAt() time.Time       { return r.createdAt }
func (r *RTGSTransfer) UpdatedAt() time.Time       { return r.updatedAt }
func (r *RTGSTransfer) Version() int64             { return r.version }

// Validate checks the transfer against the rail policy and, on success,
// moves it to validated and creates its ledger Transaction. On failure the
// transfer is untouched and no Transaction exists.
func (r *RTGSTransfer) Validate(
	expectedVersion int64,
	policy RTGSPolicy,
	dailyUsed Money,
	initiatedBy string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if err := r.checkVersion(expectedVersion); err != nil {
		return nil, err
	}
	to, err := r.next(rtgsValidate)
	if err != nil {
		return nil, err
	}
	if err := r.checkPolicy(policy, dailyUsed); err != nil {
		return nil, err
	}

	tx, err := NewTransaction(NewTransactionParams{
		Type:          TypeTransfer,
		Amount:        r.amount,
		Channel:       ChannelRTGS,
		InitiatedBy:   initiatedBy,
		FromAccountID: r.senderAccountID,
		ToAccountID:   policy.SettlementAccountID,
		Metadata: map[string]any{
			"rtgs_transfer_id":    r.id,
			"beneficiary_account": r.beneficiaryAccount,
			"beneficiary_ifsc":    r.beneficiaryIFSC,
		},
	}, timeProvider)
	if err != nil {
		return nil, err
	}

	r.transactionID = tx.ID()
	r.apply(to, "", timeProvider)
	return tx, nil
}

// BeginProcessing moves validated to processing
func (r *RTGSTransfer) BeginProcessing(expectedVersion int64, timeProvider coreport.TimeProvider) error {
	return r.step(expectedVersion, rtgsBeginProcessing, "", timeProvider)
}

// MarkPendingRBI records the UTR assigned by the rail and awaits RBI settlement
func (r *RTGSTransfer) MarkPendingRBI(expectedVersion int64, utr string, timeProvider coreport.TimeProvider) error {
	if err := r.step(expectedVersion, rtgsMarkPendingRBI, "", timeProvider); err != nil {
		return err
	}
	r.utr = utr
	return nil
}

// Complete moves pending_rbi to completed
func (r *RTGSTransfer) Complete(expectedVersion int64, timeProvider coreport.TimeProvider) error {
	return r.step(expectedVersion, rtgsComplete, "", timeProvider)
}

// MarkReturned moves pending_rbi to returned with a reason from the closed set
func (r *RTGSTransfer) MarkReturned(expectedVersion int64, reason string, timeProvider coreport.TimeProvider) error {
	if err := r.checkVersion(expectedVersion); err != nil {
		return err
	}
	to, err := r.next(rtgsMarkReturned)
	if err != nil {
		return err
	}
	parsed, err := ParseReturnReason(reason)
	if err != nil {
		return err
	}
	r.returnReason = parsed
	r.apply(to, string(parsed), timeProvider)
	return nil
}

// Fail moves any non-terminal transfer to failed
func (r *RTGSTransfer) Fail(expectedVersion int64, reason string, timeProvider coreport.TimeProvider) error {
	if err := r.step(expectedVersion, rtgsFail, reason, timeProvider); err != nil {
		return err
	}
	r.failureReason = reason
	return nil
}

// PullEvents drains the status changes recorded since the last call
func (r *RTGSTransfer) PullEvents() []StatusChange {
	return r.events.pull()
}

func (r *RTGSTransfer) checkPolicy(policy RTGSPolicy, dailyUsed Money) error {
	if !rtgsAccountPattern.MatchString(r.beneficiaryAccount) {
		return errs.NewValidationError("rtgs", "beneficiary_account", r.beneficiaryAccount, errs.ErrInvalidAccount)
	}
	if !ifscPattern.MatchString(r.beneficiaryIFSC) {
		return errs.NewValidationError("rtgs", "beneficiary_ifsc", r.beneficiaryIFSC, errs.ErrInvalidIFSC)
	}
	if r.amount.Currency() != policy.Currency {
		return errs.NewValidationError("rtgs", "currency", string(r.amount.Currency()), errs.ErrCurrencyMismatch)
	}

	if cmp, err := r.amount.Compare(policy.MinimumAmount); err != nil || cmp < 0 {
		return errs.NewValidationError("rtgs", "amount", r.amount.String(), errs.ErrAmountBelowMinimum)
	}
	if cmp, err := r.amount.Compare(policy.MaximumAmount); err != nil || cmp > 0 {
		return errs.NewValidationError("rtgs", "amount", r.amount.String(), errs.ErrLimitExceeded)
	}

	total, err := dailyUsed.Add(r.amount)
	if err != nil {
		return errs.NewValidationError("rtgs", "daily_total", dailyUsed.String(), err)
	}
	if cmp, err := total.Compare(policy.DailyLimit); err != nil || cmp > 0 {
		return errs.NewValidationError("rtgs", "daily_total", total.String(), errs.ErrLimitExceeded)
	}
	return nil
}

func (r *RTGSTransfer) step(expectedVersion int64, action rtgsAction, reason string, timeProvider coreport.TimeProvider) error {
	if err := r.checkVersion(expectedVersion); err != nil {
		return err
	}
	to, err := r.next(action)
	if err != nil {
		return err
	}
	r.apply(to, reason, timeProvider)
	return nil
}

func (r *RTGSTransfer) checkVersion(expected int64) error {
	if expected != r.version {
		return errs.NewConcurrentModificationError(AggregateRTGS, r.id, expected, r.version)
	}
	return nil
}

func (r *RTGSTransfer) next(action rtgsAction) (RTGSStatus, error) {
	to, ok := rtgsTransitions[action][r.status]
	if !ok {
		return "", errs.NewTransitionError(AggregateRTGS, r.id, string(r.status), string(action), r.status.IsTerminal())
	}
	return to, nil
}

func (r *RTGSTransfer) apply(to RTGSStatus, reason string, timeProvider coreport.TimeProvider) {
	from := r.status
	r.status = to
	r.version++
	r.updatedAt = timeProvider.Now()
	if to.IsTerminal() {
		r.events.record(StatusChange{
			Aggregate:     AggregateRTGS,
			AggregateID:   r.id,
			TransactionID: r.transactionID,
			OldStatus:     string(from),
			NewStatus:     string(to),
			Reason:        reason,
			OccurredAt:    r.updatedAt,
		})
	}
}

// RTGSTransferSnapshot is the persisted form of an RTGSTransfer
type RTGSTransferSnapshot struct {
	ID                 string
	TransactionID      string
	CustomerID         string
	SenderAccountID    string
	BeneficiaryAccount string
	BeneficiaryIFSC    string
	BeneficiaryName    string
	Amount             Money
	Remarks            string
	IdempotencyKey     string
	Status             RTGSStatus
	UTR                string
	ReturnReason       ReturnReason
	FailureReason      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
}

// Snapshot returns a copy of the current state
func (r *RTGSTransfer) Snapshot() RTGSTransferSnapshot {
	return RTGSTransferSnapshot{
		ID:                 r.id,
		TransactionID:      r.transactionID,
		CustomerID:         r.customerID,
		SenderAccountID:    r.senderAccountID,
		BeneficiaryAccount: r.beneficiaryAccount,
		BeneficiaryIFSC:    r.beneficiaryIFSC,
		BeneficiaryName:    r.beneficiaryName,
		Amount:             r.amount,
		Remarks:            r.remarks,
		IdempotencyKey:     r.idempotencyKey,
		Status:             r.status,
		UTR:                r.utr,
		ReturnReason:       r.returnReason,
		FailureReason:      r.failureReason,
		CreatedAt:          r.createdAt,
		UpdatedAt:          r.updatedAt,
		Version:            r.version,
	}
}

// RestoreRTGSTransfer rebuilds a transfer from persisted state
func RestoreRTGSTransfer(s RTGSTransferSnapshot) *RTGSTransfer {
	return &RTGSTransfer{
		id:                 s.ID,
		transactionID:      s.TransactionID,
		customerID:         s.CustomerID,
		senderAccountID:    s.SenderAccountID,
		beneficiaryAccount: s.BeneficiaryAccount,
		beneficiaryIFSC:    s.BeneficiaryIFSC,
		beneficiaryName:    s.BeneficiaryName,
		amount:             s.Amount,
		remarks:            s.Remarks,
		idempotencyKey:     s.IdempotencyKey,
		status:             s.Status,
		utr:                s.UTR,
		returnReason:       s.ReturnReason,
		failureReason:      s.FailureReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		version:            s.Version,
	}
}
