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

// localpart@psp
var vpaPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z][a-zA-Z0-9]{1,63}$`)

// ValidVPA reports whether s has the shape of a UPI virtual payment address
func ValidVPA(s string) bool {
	return vpaPattern.MatchString(s)
}

// UPIPolicy holds the rail limits applied when a payment is initiated
type UPIPolicy struct {
	Currency            Currency
	AmountCeiling       Money
	PendingTimeout      coreport.Duration
	SettlementAccountID string
}

// NewUPIPaymentParams holds the inputs of InitiateUPIPayment
type NewUPIPaymentParams struct {
	PayerAccountID string
	PayerVPA       string
	PayeeVPA       string
	Amount         Money
	Note           string
	InitiatedBy    string
}

// UPIPayment is the UPI envelope around a ledger Transaction
type UPIPayment struct {
	id             string
	transactionID  string
	payerAccountID string
	payerVPA       string
	payeeVPA       string
	amount         Money
	note           string
	status         UPIStatus
	npciReference  string
	failureReason  string
	expiresAt      *time.Time
	createdAt      time.Time
	updatedAt      time.Time
	version        int64

	events eventLog
}

// InitiateUPIPayment validates the request and creates the payment together
// with its pending ledger Transaction. Nothing is created on failure.
func InitiateUPIPayment(
	p NewUPIPaymentParams,
	policy UPIPolicy,
	timeProvider coreport.TimeProvider,
) (*UPIPayment, *Transaction, error) {
	payer := strings.TrimSpace(p.PayerVPA)
	payee := strings.TrimSpace(p.PayeeVPA)
	if !ValidVPA(payer) {
		return nil, nil, errs.NewValidationError("upi", "payer_vpa", payer, errs.ErrInvalidUPIID)
	}
	if !ValidVPA(payee) {
		return nil, nil, errs.NewValidationError("upi", "payee_vpa", payee, errs.ErrInvalidUPIID)
	}
	if !p.Amount.IsPositive() {
		return nil, nil, errs.NewValidationError("upi", "amount", p.Amount.String(), errs.ErrInvalidAmount)
	}
	if p.Amount.Currency() != policy.Currency {
		return nil, nil, errs.NewValidationError("upi", "currency", string(p.Amount.Currency()), errs.ErrCurrencyMismatch)
	}
	if cmp, err := p.Amount.Compare(policy.AmountCeiling); err != nil || cmp > 0 {
		return nil, nil, errs.NewValidationError("upi", "amount", p.Amount.String(), errs.ErrAmountExceedsCeiling)
	}

	id := uuid.NewString()
	tx, err := NewTransaction(NewTransactionParams{
		Type:          TypePayment,
		Amount:        p.Amount,
		Channel:       ChannelUPI,
		InitiatedBy:   p.InitiatedBy,
		FromAccountID: p.PayerAccountID,
		ToAccountID:   policy.SettlementAccountID,
		Metadata: map[string]any{
			"upi_payment_id": id,
			"payee_vpa":      payee,
		},
	}, timeProvider)
	if err != nil {
		return nil, nil, err
	}

	now := timeProvider.Now()
	return &UPIPayment{
		id:             id,
		transactionID:  tx.ID(),
		payerAccountID: p.PayerAccountID,
		payerVPA:       payer,
		payeeVPA:       payee,
		amount:         p.Amount,
		note:           p.Note,
		status:         UPIInitiated,
		createdAt:      now,
		updatedAt:      now,
	}, tx, nil
}

func (u *UPIPayment) ID() string             { return u.id }
func (u *UPIPayment) TransactionID() string  { return u.transactionID }
func (u *UPIPayment) PayerAccountID() string { return u.payerAccountID }
func (u *UPIPayment) PayerVPA() string       { return u.payerVPA }
func (u *UPIPayment) PayeeVPA() string       { return u.payeeVPA }
func (u *UPIPayment) Amount() Money          { return u.amount }
func (u *UPIPayment) Note() string           { return u.note }
func (u *UPIPayment) Status() UPIStatus      { return u.status }
func (u *UPIPayment) NPCIReference() string  { return u.npciReference }
func (u *UPIPayment) FailureReason() string  { return u.failureReason }
func (u *UPIPayment) ExpiresAt() *time.Time  { return copyTime(u.expiresAt) }
func (u *UPIPayment) CreatedAt() time.Time   { return u.createdAt }
func (u *UPIPayment) UpdatedAt() time.Time   { return u.updatedAt }
func (u *UPIPayment) Version() int64         { return u.version }

// MarkPending records the collect request reference and starts the expiry window
func (u *UPIPayment) MarkPending(
	expectedVersion int64,
	reference string,
	timeout coreport.Duration,
	timeProvider coreport.TimeProvider,
) error {
	if err := u.step(expectedVersion, upiMarkPending, "", timeProvider); err != nil {
		return err
	}
	expires := u.updatedAt.Add(timeout.Std())
	u.expiresAt = &expires
	u.npciReference = reference
	return nil
}

// MarkSuccess moves pending to success
func (u *UPIPayment) MarkSuccess(expectedVersion int64, reference string, timeProvider coreport.TimeProvider) error {
	if err := u.step(expectedVersion, upiMarkSuccess, "", timeProvider); err != nil {
		return err
	}
	if reference != "" {
		u.npciReference = reference
	}
	return nil
}

// Fail moves initiated or pending to failed
func (u *UPIPayment) Fail(expectedVersion int64, reason string, timeProvider coreport.TimeProvider) error {
	if err := u.step(expectedVersion, upiFail, reason, timeProvider); err != nil {
		return err
	}
	u.failureReason = reason
	return nil
}

// Expire moves pending to expired once the expiry window has elapsed
func (u *UPIPayment) Expire(expectedVersion int64, timeProvider coreport.TimeProvider) error {
	if err := u.checkVersion(expectedVersion); err != nil {
		return err
	}
	to, err := u.next(upiExpire)
	if err != nil {
		return err
	}
	if u.expiresAt == nil || timeProvider.Now().Before(*u.expiresAt) {
		return fmt.Errorf("%w: payment %s has not reached its expiry", errs.ErrInvalidStateTransition, u.id)
	}
	u.apply(to, "expired", timeProvider)
	u.failureReason = "expired"
	return nil
}

// Cancel moves pending to cancelled
func (u *UPIPayment) Cancel(expectedVersion int64, reason string, timeProvider coreport.TimeProvider) error {
	if err := u.step(expectedVersion, upiCancel, reason, timeProvider); err != nil {
		return err
	}
	u.failureReason = reason
	return nil
}

// PullEvents drains the status changes recorded since the last call
func (u *UPIPayment) PullEvents() []StatusChange {
	return u.events.pull()
}

func (u *UPIPayment) step(expectedVersion int64, action upiAction, reason string, timeProvider coreport.TimeProvider) error {
	if err := u.checkVersion(expectedVersion); err != nil {
		return err
	}
	to, err := u.next(action)
	if err != nil {
		return err
	}
	u.apply(to, reason, timeProvider)
	return nil
}

func (u *UPIPayment) checkVersion(expected int64) error {
	if expected != u.version {
		return errs.NewConcurrentModificationError(AggregateUPI, u.id, expected, u.version)
	}
	return nil
}

func (u *UPIPayment) next(action upiAction) (UPIStatus, error) {
	to, ok := upiTransitions[action][u.status]
	if !ok {
		return "", errs.NewTransitionError(AggregateUPI, u.id, string(u.status), string(action), u.status.IsTerminal())
	}
	return to, nil
}

func (u *UPIPayment) apply(to UPIStatus, reason string, timeProvider coreport.TimeProvider) {
	from := u.status
	u.status = to
	u.version++
	u.updatedAt = timeProvider.Now()
	if to.IsTerminal() {
		u.events.record(StatusChange{
			Aggregate:     AggregateUPI,
			AggregateID:   u.id,
			TransactionID: u.transactionID,
			OldStatus:     string(from),
			NewStatus:     string(to),
			Reason:        reason,
			OccurredAt:    u.updatedAt,
		})
	}
}

// UPIPaymentSnapshot is the persisted form of a UPIPayment
type UPIPaymentSnapshot struct {
	ID             string
	TransactionID  string
	PayerAccountID string
	PayerVPA       string
	PayeeVPA       string
	Amount         Money
	Note           string
	Status         UPIStatus
	NPCIReference  string
	FailureReason  string
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}

// Snapshot returns a copy of the current state
func (u *UPIPayment) Snapshot() UPIPaymentSnapshot {
	return UPIPaymentSnapshot{
		ID:             u.id,
		TransactionID:  u.transactionID,
		PayerAccountID: u.payerAccountID,
		PayerVPA:       u.payerVPA,
		PayeeVPA:       u.payeeVPA,
		Amount:         u.amount,
		Note:           u.note,
		Status:         u.status,
		NPCIReference:  u.npciReference,
		FailureReason:  u.failureReason,
		ExpiresAt:      copyTime(u.expiresAt),
		CreatedAt:      u.createdAt,
		UpdatedAt:      u.updatedAt,
		Version:        u.version,
	}
}

// RestoreUPIPayment rebuilds a payment from persisted state
func RestoreUPIPayment(s UPIPaymentSnapshot) *UPIPayment {
	return &UPIPayment{
		id:             s.ID,
		transactionID:  s.TransactionID,
		payerAccountID: s.PayerAccountID,
		payerVPA:       s.PayerVPA,
		payeeVPA:       s.PayeeVPA,
		amount:         s.Amount,
		note:           s.Note,
		status:         s.Status,
		npciReference:  s.NPCIReference,
		failureReason:  s.FailureReason,
		expiresAt:      copyTime(s.ExpiresAt),
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		version:        s.Version,
	}
}
