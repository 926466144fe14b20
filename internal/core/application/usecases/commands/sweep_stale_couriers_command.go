package commands

import (
	"errors"
	"time"

	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

var ErrSweepStaleCouriersCommandIsNotConstructed = errors.New(
	"SweepStaleCouriersCommand must be created via NewSweepStaleCouriersCommand constructor",
)

// SweepStaleCouriersCommand takes couriers off shift when their last GPS fix
// is older than the given threshold. It is driven by a periodic job.
type SweepStaleCouriersCommand struct {
	guard guard.ConstructorGuard

	staleAfter time.Duration
}

// NewSweepStaleCouriersCommand creates a command to sweep stale couriers off
// shift.
func NewSweepStaleCouriersCommand(staleAfter time.Duration) (SweepStaleCouriersCommand, error) {
	if staleAfter <= 0 {
		return SweepStaleCouriersCommand{}, errs.NewValueIsOutOfRangeError("staleAfter", staleAfter, 1, nil)
	}

	return SweepStaleCouriersCommand{
		guard:      guard.NewConstructorGuard(),
		staleAfter: staleAfter,
	}, nil
}

// StaleAfter returns the age past which a courier's last fix counts as stale.
func (c *SweepStaleCouriersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

// Validate ensures the command was created through the constructor.
func (c *SweepStaleCouriersCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleCouriersCommandIsNotConstructed)
}
