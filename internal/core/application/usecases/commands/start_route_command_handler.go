package commands

import (
	"context"
	"errors"
	"time"

	"crm/internal/pkg/errs"
)

// ErrRouteNotFound is returned when the referenced route does not exist.
var ErrRouteNotFound = errors.New("route not found")

// StartRouteCommandHandler moves a planned route into the active state.
type StartRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewStartRouteCommandHandler creates a handler for starting routes.
func NewStartRouteCommandHandler(uowFactory RouteUoWFactory) StartRouteCommandHandler {
	return StartRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the route start.
func (h StartRouteCommandHandler) Handle(ctx context.Context, cmd StartRouteCommand) error {
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

	routeRepo := uow.RouteRepository()

	aggregate, err := routeRepo.Get(ctx, cmd.RouteID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRouteNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.Start(time.Now()); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
