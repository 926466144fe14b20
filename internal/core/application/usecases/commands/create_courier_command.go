package commands

import (
	"errors"

	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrCourierNameIsRequired  = errors.New("name is required")
	ErrCourierPhoneIsRequired = errors.New("phone is required")
)

// CreateCourierCommand represents a request to register a new courier with
// the vehicle it delivers on.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	phone     string
	transport courier.Transport

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// The transport name must be one of bike, motorcycle, car or van.
func NewCreateCourierCommand(courierID kernel.UUID, name, phone, transportName string) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.setName(name),
		command.setPhone(phone),
		command.setTransport(transportName),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the unique identifier for the courier.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Phone returns the courier's phone number.
func (c CreateCourierCommand) Phone() string {
	return c.phone
}

// Transport returns the courier's vehicle type.
func (c CreateCourierCommand) Transport() courier.Transport {
	return c.transport
}

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrCourierNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateCourierCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrCourierPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *CreateCourierCommand) setTransport(transportName string) error {
	transport, err := courier.TransportFromString(transportName)
	if err != nil {
		return err
	}
	c.transport = transport
	return nil
}
