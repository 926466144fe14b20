package commands

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var (
	ErrCreateClientCommandIsNotConstructed = errors.New(
		"CreateClientCommand must be created via NewCreateClientCommand constructor",
	)
	ErrClientNameIsRequired  = errors.New("name is required")
	ErrClientPhoneIsRequired = errors.New("phone is required")
)

// CreateClientCommand represents a request to register a new client.
// The phone number is the business key: a second registration with the same
// phone is rejected.
type CreateClientCommand struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID
	name     string
	phone    string
	email    string
	address  string

	guard guard.ConstructorGuard
}

// NewCreateClientCommand creates a command to register a new client.
// Name and phone are mandatory; email and address may be empty.
func NewCreateClientCommand(clientID kernel.UUID, name, phone, email, address string) (CreateClientCommand, error) {
	command := CreateClientCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setClientID(clientID),
		command.setName(name),
		command.setPhone(phone),
	); err != nil {
		return CreateClientCommand{}, err
	}

	command.email = email
	command.address = address
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

// ClientID returns the unique identifier for the client.
func (c CreateClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Name returns the client's display name.
func (c CreateClientCommand) Name() string {
	return c.name
}

// Phone returns the client's phone number.
func (c CreateClientCommand) Phone() string {
	return c.phone
}

// Email returns the client's email address.
func (c CreateClientCommand) Email() string {
	return c.email
}

// Address returns the client's free-text address.
func (c CreateClientCommand) Address() string {
	return c.address
}

func (c *CreateClientCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	c.clientID = clientID
	return nil
}

func (c *CreateClientCommand) setName(name string) error {
	if name == "" {
		return ErrClientNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateClientCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrClientPhoneIsRequired
	}
	c.phone = phone
	return nil
}
