package commands

import (
	"context"
	"errors"
	"time"

	"crm/internal/pkg/errs"
)

// ProcessCashPaymentCommandHandler settles cash-on-delivery payments,
// computing the change from the received sum.
type ProcessCashPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewProcessCashPaymentCommandHandler creates a handler for cash settlement.
func NewProcessCashPaymentCommandHandler(uowFactory PaymentUoWFactory) ProcessCashPaymentCommandHandler {
	return ProcessCashPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cash settlement. Insufficient cash and non-cash
// payments are rejected by the aggregate.
func (h ProcessCashPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessCashPaymentCommand) error {
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

	aggregate, err := paymentRepo.GetByOrderID(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.SettleCash(cmd.Received(), time.Now()); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
