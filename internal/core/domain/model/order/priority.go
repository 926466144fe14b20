package order

import (
	"crm/internal/pkg/errs"
)

// Priority expresses delivery urgency. Urgent orders are dispatched before
// normal ones when the assignment job drains the backlog.
type Priority int

const (
	// PriorityUnknown is the zero value and is never valid.
	PriorityUnknown Priority = iota
	// PriorityLow is a delivery without time pressure.
	PriorityLow
	// PriorityNormal is the default urgency.
	PriorityNormal
	// PriorityHigh is an expedited delivery.
	PriorityHigh
	// PriorityUrgent is a delivery dispatched ahead of everything else.
	PriorityUrgent
)

const (
	priorityUnknownName = "unknown"
	priorityLowName     = "low"
	priorityNormalName  = "normal"
	priorityHighName    = "high"
	priorityUrgentName  = "urgent"
)

// PriorityFromString parses a priority name as stored in the database and
// exposed over the API.
func PriorityFromString(name string) (Priority, error) {
	switch name {
	case priorityLowName:
		return PriorityLow, nil
	case priorityNormalName:
		return PriorityNormal, nil
	case priorityHighName:
		return PriorityHigh, nil
	case priorityUrgentName:
		return PriorityUrgent, nil
	default:
		return PriorityUnknown, errs.NewValueIsInvalidError("priority")
	}
}

// Validate checks that the priority is one of the known urgency levels.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return nil
	case PriorityUnknown:
		return errs.NewValueIsRequiredError("priority")
	default:
		return errs.NewValueIsInvalidError("priority")
	}
}

// String returns the canonical name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return priorityLowName
	case PriorityNormal:
		return priorityNormalName
	case PriorityHigh:
		return priorityHighName
	case PriorityUrgent:
		return priorityUrgentName
	default:
		return priorityUnknownName
	}
}
