package commands

import (
	"context"
	"errors"
	"time"

	"crm/internal/pkg/errs"
)

// RefundPaymentCommandHandler refunds completed payments. Only the
// Completed status accepts a refund; everything else is rejected by the
// state machine.
type RefundPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewRefundPaymentCommandHandler creates a handler for refunds.
func NewRefundPaymentCommandHandler(uowFactory PaymentUoWFactory) RefundPaymentCommandHandler {
	return RefundPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refund.
func (h RefundPaymentCommandHandler) Handle(ctx context.Context, cmd RefundPaymentCommand) error {
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

	aggregate, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.Refund(time.Now()); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
