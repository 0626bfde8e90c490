package entity

// TransactionType classifies a ledger transaction
type TransactionType string

// Transaction types
const (
	TypeTransfer   TransactionType = "transfer"
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypePayment    TransactionType = "payment"
	TypeRefund     TransactionType = "refund"
	TypeFee        TransactionType = "fee"
	TypeInterest   TransactionType = "interest"
	TypeReversal   TransactionType = "reversal"
)

func (t TransactionType) valid() bool {
	switch t {
	case TypeTransfer, TypeDeposit, TypeWithdrawal, TypePayment,
		TypeRefund, TypeFee, TypeInterest, TypeReversal:
		return true
	}
	return false
}

// Channel is the rail a transaction settles through
type Channel string

// Channels
const (
	ChannelInternal Channel = "internal"
	ChannelRTGS     Channel = "rtgs"
	ChannelUPI      Channel = "upi"
)

func (c Channel) valid() bool {
	return c == ChannelInternal || c == ChannelRTGS || c == ChannelUPI
}

// TransactionStatus is the generic ledger state machine
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusReversed   TransactionStatus = "reversed"
)

// IsTerminal reports whether the status is final.
// Completed is terminal but still admits the compensating reverse.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusReversed:
		return true
	}
	return false
}

// txAction names an operation on the Transaction state machine
type txAction string

const (
	actBeginProcessing txAction = "begin processing"
	actComplete        txAction = "complete"
	actFail            txAction = "fail"
	actCancel          txAction = "cancel"
	actReverse         txAction = "reverse"
)

// txTransitions is the single source of truth for legal Transaction edges
var txTransitions = map[txAction]map[TransactionStatus]TransactionStatus{
	actBeginProcessing: {StatusPending: StatusProcessing},
	actComplete:        {StatusProcessing: StatusCompleted},
	actFail:            {StatusPending: StatusFailed, StatusProcessing: StatusFailed},
	actCancel:          {StatusPending: StatusCancelled},
	actReverse:         {StatusCompleted: StatusReversed},
}

// RTGSStatus is the RTGS transfer state machine
type RTGSStatus string

// RTGSStatus constants
const (
	RTGSInitiated  RTGSStatus = "initiated"
	RTGSValidated  RTGSStatus = "validated"
	RTGSProcessing RTGSStatus = "processing"
	RTGSPendingRBI RTGSStatus = "pending_rbi"
	RTGSCompleted  RTGSStatus = "completed"
	RTGSFailed     RTGSStatus = "failed"
	RTGSReturned   RTGSStatus = "returned"
)

// IsTerminal reports whether the status is final
func (s RTGSStatus) IsTerminal() bool {
	return s == RTGSCompleted || s == RTGSFailed || s == RTGSReturned
}

type rtgsAction string

const (
	rtgsValidate        rtgsAction = "validate"
	rtgsBeginProcessing rtgsAction = "begin processing"
	rtgsMarkPendingRBI  rtgsAction = "mark pending rbi"
	rtgsComplete        rtgsAction = "complete"
	rtgsMarkReturned    rtgsAction = "mark returned"
	rtgsFail            rtgsAction = "fail"
)

var rtgsTransitions = map[rtgsAction]map[RTGSStatus]RTGSStatus{
	rtgsValidate:        {RTGSInitiated: RTGSValidated},
	rtgsBeginProcessing: {RTGSValidated: RTGSProcessing},
	rtgsMarkPendingRBI:  {RTGSProcessing: RTGSPendingRBI},
	rtgsComplete:        {RTGSPendingRBI: RTGSCompleted},
	rtgsMarkReturned:    {RTGSPendingRBI: RTGSReturned},
	rtgsFail: {
		RTGSInitiated:  RTGSFailed,
		RTGSValidated:  RTGSFailed,
		RTGSProcessing: RTGSFailed,
		RTGSPendingRBI: RTGSFailed,
	},
}

// UPIStatus is the UPI payment state machine
type UPIStatus string

// UPIStatus constants
const (
	UPIInitiated UPIStatus = "initiated"
	UPIPending   UPIStatus = "pending"
	UPISuccess   UPIStatus = "success"
	UPIFailed    UPIStatus = "failed"
	UPIExpired   UPIStatus = "expired"
	UPICancelled UPIStatus = "cancelled"
)

// IsTerminal reports whether the status is final
func (s UPIStatus) IsTerminal() bool {
	switch s {
	case UPISuccess, UPIFailed, UPIExpired, UPICancelled:
		return true
	}
	return false
}

type upiAction string

const (
	upiMarkPending upiAction = "mark pending"
	upiMarkSuccess upiAction = "mark success"
	upiFail        upiAction = "fail"
	upiExpire      upiAction = "expire"
	upiCancel      upiAction = "cancel"
)

var upiTransitions = map[upiAction]map[UPIStatus]UPIStatus{
	upiMarkPending: {UPIInitiated: UPIPending},
	upiMarkSuccess: {UPIPending: UPISuccess},
	upiFail:        {UPIInitiated: UPIFailed, UPIPending: UPIFailed},
	upiExpire:      {UPIPending: UPIExpired},
	upiCancel:      {UPIPending: UPICancelled},
}
