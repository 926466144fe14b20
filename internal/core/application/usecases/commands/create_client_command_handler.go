package commands

import (
	"context"
	"errors"

	"crm/internal/core/domain/model/client"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

// ErrClientAlreadyExists is returned when a client with the same phone
// number is already registered.
var ErrClientAlreadyExists = errors.New("client with this phone already exists")

// CreateClientCommandHandler handles client registration. The address, when
// provided, is geocoded so that later orders for the client can be
// auto-dispatched; a geocoder outage does not fail the registration.
type CreateClientCommandHandler struct {
	uowFactory ClientUoWFactory
	geocoder   ports.Geocoder
}

// NewCreateClientCommandHandler creates a handler for client registration.
func NewCreateClientCommandHandler(uowFactory ClientUoWFactory, geocoder ports.Geocoder) CreateClientCommandHandler {
	return CreateClientCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

// Handle processes the client registration command.
// Rejects duplicates by phone number, geocodes the address best effort and
// persists the client within a transaction.
func (h CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) error {
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

	clientRepo := uow.ClientRepository()

	_, err := clientRepo.GetByPhone(ctx, cmd.Phone())
	if err == nil {
		return ErrClientAlreadyExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := client.NewClient(cmd.ClientID(), cmd.Name(), cmd.Phone(), cmd.Email(), cmd.Address())
	if err != nil {
		return err
	}

	if cmd.Address() != "" {
		if point, geocodeErr := h.geocoder.Geocode(ctx, cmd.Address()); geocodeErr == nil {
			if err = aggregate.SetLocation(point); err != nil {
				return err
			}
		}
	}

	if err = clientRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
