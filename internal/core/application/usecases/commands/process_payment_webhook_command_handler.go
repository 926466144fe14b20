package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/payment"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

// ErrPaymentNotFound is returned when no payment matches the callback.
var ErrPaymentNotFound = errors.New("payment not found")

// Gateway status words the handler understands. Anything else is
// acknowledged and ignored, so a gateway rolling out new statuses does not
// cause retry storms.
const (
	gatewayStatusSuccess = "success"
	gatewayStatusFailed  = "failed"
)

// ProcessPaymentWebhookCommandHandler applies verified gateway callbacks to
// payments. Replays are idempotent: a callback that reports the state the
// payment is already in commits nothing and succeeds, while a callback that
// would move a settled payment backwards is ignored the same way. The
// payment state machine enforces the forward-only rule. A successful
// settlement notifies the client through the notification queue.
type ProcessPaymentWebhookCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.NotificationPublisher
}

// NewProcessPaymentWebhookCommandHandler creates a handler for gateway
// callbacks.
func NewProcessPaymentWebhookCommandHandler(
	uowFactory PaymentUoWFactory,
	publisher ports.NotificationPublisher,
) ProcessPaymentWebhookCommandHandler {
	return ProcessPaymentWebhookCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes one gateway callback. The payment is found by the gateway
// transaction identifier first, falling back to the order for the first
// callback of a transaction.
func (h ProcessPaymentWebhookCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentWebhookCommand) error {
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

	paymentRepo := uow.PaymentRepository()

	aggregate, err := paymentRepo.GetByTransactionID(ctx, cmd.TransactionID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		aggregate, err = paymentRepo.GetByOrderID(ctx, cmd.OrderID())
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now()
	settled := false

	switch cmd.GatewayStatus() {
	case gatewayStatusSuccess:
		err = aggregate.Complete(cmd.TransactionID(), cmd.RawPayload(), now)
		settled = err == nil
	case gatewayStatusFailed:
		err = aggregate.Fail(cmd.RawPayload(), now)
	default:
		return nil
	}

	var transitionErr *payment.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		// Replay or out-of-order callback on a settled payment.
		return nil
	}
	if err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	var payer payerInfo
	if settled {
		if payer, err = h.lookupPayer(ctx, uow, aggregate.OrderID()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if settled && payer.email != "" {
		_ = h.publisher.Publish(ctx, ports.Notification{
			Recipient: payer.email,
			Subject:   "Payment received",
			Body: fmt.Sprintf("Hi %s, we received your payment of %s for your order for %s.",
				payer.name, aggregate.Amount(), payer.product),
		})
	}

	return nil
}

type payerInfo struct {
	name    string
	email   string
	product string
}

func (h ProcessPaymentWebhookCommandHandler) lookupPayer(
	ctx context.Context,
	uow PaymentUoW,
	orderID kernel.UUID,
) (payerInfo, error) {
	paidOrder, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return payerInfo{}, err
	}
	payerClient, err := uow.ClientRepository().Get(ctx, paidOrder.ClientID())
	if err != nil {
		return payerInfo{}, err
	}
	return payerInfo{
		name:    payerClient.Name(),
		email:   payerClient.Email(),
		product: paidOrder.Product(),
	}, nil
}
