package commands

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var ErrCompleteRouteCommandIsNotConstructed = errors.New(
	"CompleteRouteCommand must be created via NewCompleteRouteCommand constructor",
)

// CompleteRouteCommand marks an active route as finished.
type CompleteRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteRouteCommand creates a command to complete a route.
func NewCompleteRouteCommand(routeID kernel.UUID) (CompleteRouteCommand, error) {
	command := CompleteRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRouteID(routeID); err != nil {
		return CompleteRouteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRouteCommandIsNotConstructed)
}

// RouteID returns the route to complete.
func (c CompleteRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c *CompleteRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}
