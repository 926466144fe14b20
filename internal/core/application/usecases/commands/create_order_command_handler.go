package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
	"crm/internal/core/domain/model/payment"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

// ErrOrderClientNotFound is returned when creating an order for an
// unregistered client.
var ErrOrderClientNotFound = errors.New("client not found")

// CreateOrderCommandHandler handles order intake. An order is created
// together with its pending payment (skipped when the total is zero); the
// delivery address is geocoded best
// effort so that the assignment job can rank couriers, and the client gets an
// order confirmation through the notification queue.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, geocoder, publisher)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), clientID, "Flowers", 1,
//	    "Khreschatyk 1, Kyiv", "high", "online", 50000, 5000, 0, "")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order intake failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderIntakeUoWFactory
	geocoder   ports.Geocoder
	publisher  ports.NotificationPublisher
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(
	uowFactory OrderIntakeUoWFactory,
	geocoder ports.Geocoder,
	publisher ports.NotificationPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		publisher:  publisher,
	}
}

// Handle processes the order intake command.
// Verifies the client exists, creates the order and its pending payment in
// one transaction, then enqueues the confirmation email. A failed enqueue
// does not undo the intake.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	orderClient, err := uow.ClientRepository().Get(ctx, cmd.ClientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderClientNotFound
	}
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ClientID(),
		cmd.Product(),
		cmd.Quantity(),
		cmd.Address(),
		cmd.Priority(),
		cmd.BasePrice(),
		cmd.DeliveryFee(),
		cmd.Discount(),
		time.Now(),
	)
	if err != nil {
		return err
	}
	aggregate.SetNotes(cmd.Notes())

	if point, geocodeErr := h.geocoder.Geocode(ctx, cmd.Address()); geocodeErr == nil {
		if err = aggregate.SetLocation(point); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	// A fully discounted order has nothing to collect, so no payment is opened.
	if !aggregate.TotalPrice().IsZero() {
		pendingPayment, paymentErr := payment.NewPayment(
			kernel.NewUUID(),
			cmd.OrderID(),
			cmd.PaymentMethod(),
			aggregate.TotalPrice(),
			time.Now(),
		)
		if paymentErr != nil {
			return paymentErr
		}
		if err = uow.PaymentRepository().Add(ctx, pendingPayment); err != nil {
			return err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if orderClient.Email() != "" {
		_ = h.publisher.Publish(ctx, ports.Notification{
			Recipient: orderClient.Email(),
			Subject:   "Order received",
			Body: fmt.Sprintf("Hi %s, we received your order for %s. Total: %s.",
				orderClient.Name(), aggregate.Product(), aggregate.TotalPrice()),
		})
	}

	return nil
}
