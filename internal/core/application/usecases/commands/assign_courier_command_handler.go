package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm/internal/core/domain/services"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

var (
	// ErrNoAvailableCouriers is returned when every courier is off shift or
	// lacks capacity for the order.
	ErrNoAvailableCouriers = errors.New("no available couriers found")
	// ErrNoOrderToAssign is returned when the unassigned backlog is empty.
	ErrNoOrderToAssign = errors.New("no order to assign")
)

// AssignCourierCommandHandler orchestrates courier assignment. It re-attempts
// geocoding for orders whose intake geocode failed, then takes the oldest
// unassigned order, ranks the available couriers by estimated travel time and
// commits the assignment of the winner, then notifies the client.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, geocoder, publisher)
//	err := handler.Handle(ctx, NewAssignCourierCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderToAssign):
//	    // backlog is empty, nothing to do
//	case errors.Is(err, ErrNoAvailableCouriers):
//	    // all couriers busy, retry on the next tick
//	case err != nil:
//	    // assignment failed
//	}
type AssignCourierCommandHandler struct {
	uowFactory DispatchUoWFactory
	geocoder   ports.Geocoder
	publisher  ports.NotificationPublisher
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(
	uowFactory DispatchUoWFactory,
	geocoder ports.Geocoder,
	publisher ports.NotificationPublisher,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		publisher:  publisher,
	}
}

// Handle processes the courier assignment command. The winning courier goes
// off shift, the order gets an estimated delivery time derived from the
// courier's travel time, and both aggregates are updated in one transaction.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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

	orderRepo := uow.OrderRepository()

	placed, err := h.geocodeStranded(ctx, orderRepo)
	if err != nil {
		return err
	}

	// Placements must survive an aborted assignment, otherwise the next tick
	// geocodes the same addresses again.
	keepPlacements := func(benign error) error {
		if placed == 0 {
			return benign
		}
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return commitErr
		}
		return benign
	}

	aggregate, err := orderRepo.GetFirstNew(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return keepPlacements(ErrNoOrderToAssign)
	}
	if err != nil {
		return err
	}

	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return keepPlacements(ErrNoAvailableCouriers)
	}

	now := time.Now()
	assigned, err := services.NewOrderDispatcher().Dispatch(aggregate, couriers, now)
	if errors.Is(err, services.ErrCourierNotFound) {
		return keepPlacements(ErrNoAvailableCouriers)
	}
	if err != nil {
		return err
	}

	if assigned.LocationFreshAt(now) {
		if eta, etaErr := assigned.TimeTo(*aggregate.Location()); etaErr == nil {
			if err = aggregate.SetEstimatedDeliveryAt(now.Add(eta)); err != nil {
				return err
			}
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.CourierRepository().Update(ctx, assigned); err != nil {
		return err
	}

	orderClient, err := uow.ClientRepository().Get(ctx, aggregate.ClientID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if orderClient.Email() != "" {
		_ = h.publisher.Publish(ctx, ports.Notification{
			Recipient: orderClient.Email(),
			Subject:   "Courier assigned",
			Body: fmt.Sprintf("Hi %s, courier %s is handling your order for %s.",
				orderClient.Name(), assigned.Name(), aggregate.Product()),
		})
	}

	return nil
}

// geocodeStranded retries geocoding for unassigned orders whose intake
// geocode failed, returning how many got a location. A still-failing address
// is skipped until the next tick.
func (h AssignCourierCommandHandler) geocodeStranded(ctx context.Context, orderRepo ports.OrderRepository) (int, error) {
	stranded, err := orderRepo.GetAllNewWithoutLocation(ctx)
	if err != nil {
		return 0, err
	}

	placed := 0
	for _, unplaced := range stranded {
		point, geocodeErr := h.geocoder.Geocode(ctx, unplaced.Address())
		if geocodeErr != nil {
			continue
		}
		if err = unplaced.SetLocation(point); err != nil {
			return placed, err
		}
		if err = orderRepo.Update(ctx, unplaced); err != nil {
			return placed, err
		}
		placed++
	}

	return placed, nil
}
