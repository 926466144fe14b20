package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm/internal/core/domain/model/order"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

// ErrOrderNotFound is returned when the referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ChangeOrderStatusCommandHandler moves orders along the delivery lifecycle.
// Reaching a terminal status puts the assigned courier back on shift, and a
// delivered order triggers a notification to the client.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderProgressUoWFactory
	publisher  ports.NotificationPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for order lifecycle
// changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderProgressUoWFactory,
	publisher ports.NotificationPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the lifecycle change. Illegal transitions surface as
// order.InvalidTransitionError and roll the transaction back.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.Status(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if aggregate.Status().IsTerminal() && aggregate.CourierID() != nil {
		if err = h.releaseCourier(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	var delivered *ports.Notification
	if aggregate.Status() == order.StatusDelivered {
		if delivered, err = h.deliveredNotification(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if delivered != nil {
		_ = h.publisher.Publish(ctx, *delivered)
	}

	return nil
}

func (h ChangeOrderStatusCommandHandler) releaseCourier(
	ctx context.Context,
	uow OrderProgressUoW,
	aggregate *order.Order,
) error {
	assigned, err := uow.CourierRepository().Get(ctx, *aggregate.CourierID())
	if err != nil {
		return err
	}

	assigned.SetAvailable(true)
	return uow.CourierRepository().Update(ctx, assigned)
}

func (h ChangeOrderStatusCommandHandler) deliveredNotification(
	ctx context.Context,
	uow OrderProgressUoW,
	aggregate *order.Order,
) (*ports.Notification, error) {
	orderClient, err := uow.ClientRepository().Get(ctx, aggregate.ClientID())
	if err != nil {
		return nil, err
	}
	if orderClient.Email() == "" {
		return nil, nil //nolint:nilnil //no notification to send
	}

	return &ports.Notification{
		Recipient: orderClient.Email(),
		Subject:   "Order delivered",
		Body: fmt.Sprintf("Hi %s, your order for %s was delivered. Thank you!",
			orderClient.Name(), aggregate.Product()),
	}, nil
}
