package rail

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Outcome is the result tag a rail gateway returns
type Outcome string

// Outcomes
const (
	OutcomeSuccess  Outcome = "success"
	OutcomePending  Outcome = "pending"
	OutcomeFailure  Outcome = "failure"
	OutcomeReturned Outcome = "returned"
	OutcomeTimeout  Outcome = "timeout"
)

// Response is what a gateway call reports back
type Response struct {
	Outcome Outcome
	// Reference is the UTR for RTGS or the RRN for UPI
	Reference  string
	ReasonCode string
	Message    string
}

// RTGSConnector is the client for the RBI RTGS gateway
type RTGSConnector interface {
	// SubmitTransfer hands the transfer to the rail. A pending outcome
	// carries the UTR to enquire with.
	//
	// Possible errors:
	// - ErrRailUnavailable: If the gateway could not be reached
	// - ErrRailTimeout: If ctx expired before the gateway answered
	SubmitTransfer(ctx context.Context, transfer *entity.RTGSTransfer) (Response, error)

	// EnquireTransfer asks for the settlement status of a UTR
	EnquireTransfer(ctx context.Context, utr string) (Response, error)
}

// UPIConnector is the client for the NPCI UPI switch
type UPIConnector interface {
	// RequestPayment raises a collect request; pending carries the RRN
	RequestPayment(ctx context.Context, payment *entity.UPIPayment) (Response, error)

	// CheckStatus asks for the status of a collect request
	CheckStatus(ctx context.Context, reference string) (Response, error)
}
