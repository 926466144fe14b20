package commands

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var ErrPlanRouteCommandIsNotConstructed = errors.New(
	"PlanRouteCommand must be created via NewPlanRouteCommand constructor",
)

// PlanRouteCommand requests a multi-stop route for a courier's assigned
// orders.
type PlanRouteCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewPlanRouteCommand creates a command to plan a route. The name is an
// optional display label.
func NewPlanRouteCommand(routeID, courierID kernel.UUID, name string) (PlanRouteCommand, error) {
	command := PlanRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setCourierID(courierID),
	); err != nil {
		return PlanRouteCommand{}, err
	}

	command.name = name
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanRouteCommand) Validate() error {
	return c.guard.Validate(ErrPlanRouteCommandIsNotConstructed)
}

// RouteID returns the unique identifier for the new route.
func (c PlanRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// CourierID returns the courier to plan for.
func (c PlanRouteCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the optional display label.
func (c PlanRouteCommand) Name() string {
	return c.name
}

func (c *PlanRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *PlanRouteCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
