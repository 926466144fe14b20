package commands

import (
	"context"
	"time"
)

// SweepStaleCouriersCommandHandler takes couriers off shift when their GPS
// feed has gone quiet. A courier without a fix newer than the command's
// threshold is no longer a safe dispatch candidate.
type SweepStaleCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSweepStaleCouriersCommandHandler creates a handler for the stale-courier
// sweep.
func NewSweepStaleCouriersCommandHandler(uowFactory CourierUoWFactory) SweepStaleCouriersCommandHandler {
	return SweepStaleCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep command. Returns the number of couriers taken
// off shift.
func (h SweepStaleCouriersCommandHandler) Handle(ctx context.Context, cmd SweepStaleCouriersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-cmd.StaleAfter())
	swept := 0
	for _, aggregate := range couriers {
		locatedAt := aggregate.LocatedAt()
		if locatedAt == nil || locatedAt.After(cutoff) {
			continue
		}

		aggregate.SetAvailable(false)
		if err = uow.CourierRepository().Update(ctx, aggregate); err != nil {
			return 0, err
		}
		swept++
	}

	if swept == 0 {
		return 0, nil
	}

	return swept, uow.Commit(ctx)
}
