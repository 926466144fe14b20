package payment

import (
	"crm/internal/pkg/errs"
)

// Status represents the lifecycle state of a payment. The machine only moves
// forward:
//
//	Pending -> Processing -> Completed -> Refunded
//	Pending/Processing -> Failed
//
// Failed and Refunded are terminal. Completed accepts only Refunded. Webhook
// replays that would move a payment backwards are rejected by the state
// machine, which makes gateway retries idempotent.
type Status int

const (
	// StatusUnknown is the zero value and is never valid.
	StatusUnknown Status = iota
	// StatusPending is a registered payment awaiting the gateway.
	StatusPending
	// StatusProcessing is a payment the gateway has started handling.
	StatusProcessing
	// StatusCompleted is a successfully settled payment.
	StatusCompleted
	// StatusFailed is a payment rejected by the gateway. Terminal.
	StatusFailed
	// StatusRefunded is a settled payment returned to the client. Terminal.
	StatusRefunded
)

const (
	statusUnknownName    = "unknown"
	statusPendingName    = "pending"
	statusProcessingName = "processing"
	statusCompletedName  = "completed"
	statusFailedName     = "failed"
	statusRefundedName   = "refunded"
)

// StatusFromString parses a status name as stored in the database.
func StatusFromString(name string) (Status, error) {
	switch name {
	case statusPendingName:
		return StatusPending, nil
	case statusProcessingName:
		return StatusProcessing, nil
	case statusCompletedName:
		return StatusCompleted, nil
	case statusFailedName:
		return StatusFailed, nil
	case statusRefundedName:
		return StatusRefunded, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidError("status")
	}
}

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return nil
	case StatusUnknown:
		return errs.NewValueIsRequiredError("status")
	default:
		return errs.NewValueIsInvalidError("status")
	}
}

// String returns the canonical name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return statusPendingName
	case StatusProcessing:
		return statusProcessingName
	case StatusCompleted:
		return statusCompletedName
	case StatusFailed:
		return statusFailedName
	case StatusRefunded:
		return statusRefundedName
	default:
		return statusUnknownName
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusFailed || s == StatusRefunded
}

// CanTransitionTo reports whether the machine allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCompleted || next == StatusFailed
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	case StatusCompleted:
		return next == StatusRefunded
	default:
		return false
	}
}
