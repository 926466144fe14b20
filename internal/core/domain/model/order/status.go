package order

import (
	"crm/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The lifecycle only moves forward:
//
//	New -> Assigned -> PickedUp -> InTransit -> Delivered
//
// Any state before Delivered may move to Cancelled. Delivered and Cancelled
// are terminal. Assigned may transition to itself when the order is handed to
// a different courier.
type Status int

const (
	// StatusUnknown is the zero value and is never valid.
	StatusUnknown Status = iota
	// StatusNew is a registered order awaiting a courier.
	StatusNew
	// StatusAssigned is an order handed to a courier.
	StatusAssigned
	// StatusPickedUp is an order collected by its courier.
	StatusPickedUp
	// StatusInTransit is an order on its way to the client.
	StatusInTransit
	// StatusDelivered is a completed order. Terminal.
	StatusDelivered
	// StatusCancelled is an abandoned order. Terminal.
	StatusCancelled
)

const (
	statusUnknownName   = "unknown"
	statusNewName       = "new"
	statusAssignedName  = "assigned"
	statusPickedUpName  = "picked_up"
	statusInTransitName = "in_transit"
	statusDeliveredName = "delivered"
	statusCancelledName = "cancelled"
)

// StatusFromString parses a status name as stored in the database and
// exposed over the API.
func StatusFromString(name string) (Status, error) {
	switch name {
	case statusNewName:
		return StatusNew, nil
	case statusAssignedName:
		return StatusAssigned, nil
	case statusPickedUpName:
		return StatusPickedUp, nil
	case statusInTransitName:
		return StatusInTransit, nil
	case statusDeliveredName:
		return StatusDelivered, nil
	case statusCancelledName:
		return StatusCancelled, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidError("status")
	}
}

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	switch s {
	case StatusNew, StatusAssigned, StatusPickedUp, StatusInTransit, StatusDelivered, StatusCancelled:
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
	case StatusNew:
		return statusNewName
	case StatusAssigned:
		return statusAssignedName
	case StatusPickedUp:
		return statusPickedUpName
	case StatusInTransit:
		return statusInTransitName
	case StatusDelivered:
		return statusDeliveredName
	case StatusCancelled:
		return statusCancelledName
	default:
		return statusUnknownName
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	if next.Validate() != nil {
		return false
	}
	if next == StatusCancelled {
		return !s.IsTerminal()
	}

	switch s {
	case StatusNew:
		return next == StatusAssigned
	case StatusAssigned:
		return next == StatusAssigned || next == StatusPickedUp
	case StatusPickedUp:
		return next == StatusInTransit
	case StatusInTransit:
		return next == StatusDelivered
	default:
		return false
	}
}
