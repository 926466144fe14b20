package commands

import (
	"context"
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/tracking"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

// ErrCourierForLocationNotFound is returned when a GPS fix arrives for an
// unregistered courier.
var ErrCourierForLocationNotFound = errors.New("courier not found")

// UpdateCourierLocationCommandHandler ingests courier GPS fixes. Each fix is
// appended to the immutable track, moves the courier's last known position
// and refreshes the live position cache used by the monitoring map. A cache
// outage never fails the ingestion.
type UpdateCourierLocationCommandHandler struct {
	uowFactory TrackingUoWFactory
	cache      ports.LocationCache
}

// NewUpdateCourierLocationCommandHandler creates a handler for GPS ingestion.
func NewUpdateCourierLocationCommandHandler(
	uowFactory TrackingUoWFactory,
	cache ports.LocationCache,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes one GPS fix. Fixes older than the courier's current
// position are rejected by the aggregate and roll the transaction back.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrCourierForLocationNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.UpdateLocation(cmd.Point(), cmd.RecordedAt()); err != nil {
		return err
	}

	ping, err := tracking.NewPing(
		kernel.NewUUID(),
		cmd.CourierID(),
		cmd.Point(),
		cmd.AccuracyM(),
		cmd.SpeedKmh(),
		cmd.BearingDeg(),
		cmd.RecordedAt(),
	)
	if err != nil {
		return err
	}

	if err = uow.PingRepository().Add(ctx, ping); err != nil {
		return err
	}
	if err = uow.CourierRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.cache.SetPosition(ctx, cmd.CourierID(), ports.CourierPosition{
		Point:      cmd.Point(),
		RecordedAt: cmd.RecordedAt(),
	})

	return nil
}
