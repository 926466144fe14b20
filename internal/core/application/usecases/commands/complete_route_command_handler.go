package commands

import (
	"context"
	"errors"
	"time"

	"crm/internal/pkg/errs"
)

// CompleteRouteCommandHandler moves an active route into the completed
// state.
type CompleteRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewCompleteRouteCommandHandler creates a handler for completing routes.
func NewCompleteRouteCommandHandler(uowFactory RouteUoWFactory) CompleteRouteCommandHandler {
	return CompleteRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the route completion.
func (h CompleteRouteCommandHandler) Handle(ctx context.Context, cmd CompleteRouteCommand) error {
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

	if err = aggregate.Complete(time.Now()); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
