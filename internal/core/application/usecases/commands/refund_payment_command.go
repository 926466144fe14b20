package commands

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var ErrRefundPaymentCommandIsNotConstructed = errors.New(
	"RefundPaymentCommand must be created via NewRefundPaymentCommand constructor",
)

// RefundPaymentCommand returns a completed payment to the client.
type RefundPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefundPaymentCommand creates a command to refund a payment.
func NewRefundPaymentCommand(paymentID kernel.UUID) (RefundPaymentCommand, error) {
	command := RefundPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setPaymentID(paymentID); err != nil {
		return RefundPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRefundPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to refund.
func (c RefundPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

func (c *RefundPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	c.paymentID = paymentID
	return nil
}
