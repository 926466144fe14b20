package commands

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var ErrProcessCashPaymentCommandIsNotConstructed = errors.New(
	"ProcessCashPaymentCommand must be created via NewProcessCashPaymentCommand constructor",
)

// ProcessCashPaymentCommand settles a cash-on-delivery payment with the sum
// the courier received, in minor units.
type ProcessCashPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	received kernel.Money

	guard guard.ConstructorGuard
}

// NewProcessCashPaymentCommand creates a command to settle a cash payment.
func NewProcessCashPaymentCommand(orderID kernel.UUID, receivedMinor int64) (ProcessCashPaymentCommand, error) {
	command := ProcessCashPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	received, receivedErr := kernel.NewMoney(receivedMinor)

	if err := errors.Join(
		command.setOrderID(orderID),
		receivedErr,
	); err != nil {
		return ProcessCashPaymentCommand{}, err
	}

	command.received = received
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessCashPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessCashPaymentCommandIsNotConstructed)
}

// OrderID returns the order being settled.
func (c ProcessCashPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Received returns the cash handed to the courier.
func (c ProcessCashPaymentCommand) Received() kernel.Money {
	return c.received
}

func (c *ProcessCashPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
