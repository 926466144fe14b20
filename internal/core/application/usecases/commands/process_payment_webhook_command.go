package commands

import (
	"encoding/json"
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var (
	ErrProcessPaymentWebhookCommandIsNotConstructed = errors.New(
		"ProcessPaymentWebhookCommand must be created via NewProcessPaymentWebhookCommand constructor",
	)
	ErrTransactionIDIsRequired = errors.New("transaction id is required")
)

// ProcessPaymentWebhookCommand carries one gateway callback about an online
// payment. The raw payload is kept verbatim for auditing.
type ProcessPaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	transactionID string
	gatewayStatus string
	rawPayload    json.RawMessage

	guard guard.ConstructorGuard
}

// NewProcessPaymentWebhookCommand creates a command from a verified gateway
// callback. The signature must be checked before constructing the command.
func NewProcessPaymentWebhookCommand(
	orderID kernel.UUID,
	transactionID string,
	gatewayStatus string,
	rawPayload json.RawMessage,
) (ProcessPaymentWebhookCommand, error) {
	command := ProcessPaymentWebhookCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTransactionID(transactionID),
	); err != nil {
		return ProcessPaymentWebhookCommand{}, err
	}

	command.gatewayStatus = gatewayStatus
	command.rawPayload = rawPayload
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentWebhookCommandIsNotConstructed)
}

// OrderID returns the order the callback settles.
func (c ProcessPaymentWebhookCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TransactionID returns the gateway transaction identifier.
func (c ProcessPaymentWebhookCommand) TransactionID() string {
	return c.transactionID
}

// GatewayStatus returns the gateway's status word, e.g. "success".
func (c ProcessPaymentWebhookCommand) GatewayStatus() string {
	return c.gatewayStatus
}

// RawPayload returns the verbatim callback body.
func (c ProcessPaymentWebhookCommand) RawPayload() json.RawMessage {
	return c.rawPayload
}

func (c *ProcessPaymentWebhookCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ProcessPaymentWebhookCommand) setTransactionID(transactionID string) error {
	if transactionID == "" {
		return ErrTransactionIDIsRequired
	}
	c.transactionID = transactionID
	return nil
}
