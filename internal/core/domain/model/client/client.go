package client

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// Domain errors for client operations.
var (
	// ErrNameIsRequired is returned when attempting to create a client without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a client without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrClientIsNotConstructed is returned when using an improperly initialized Client.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")
)

// Client represents a customer of the delivery business. The phone number is
// the business key used for deduplication; email is optional and only needed
// for notifications. The geocoded location is filled in lazily, so a client
// without coordinates is a valid aggregate.
type Client struct {
	id       kernel.UUID
	name     string
	phone    string
	email    string
	address  string
	location *kernel.GeoPoint
	guard    guard.ConstructorGuard
}

// NewClient creates a client with the given contact details. Name and phone
// are mandatory; email and address may be empty.
func NewClient(id kernel.UUID, name string, phone string, email string, address string) (*Client, error) {
	client := &Client{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		client.setID(id),
		client.setName(name),
		client.setPhone(phone),
	); err != nil {
		return nil, err
	}

	client.email = email
	client.address = address
	return client, nil
}

// RestoreClient reconstructs a client from persistence, including the
// optional geocoded location.
func RestoreClient(
	id kernel.UUID,
	name string,
	phone string,
	email string,
	address string,
	location *kernel.GeoPoint,
) (*Client, error) {
	client, err := NewClient(id, name, phone, email, address)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err = client.SetLocation(*location); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// Validate checks that the client was created through a constructor.
func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.guard.Validate(ErrClientIsNotConstructed)
}

// IsEqual compares two clients by identifier.
func (c *Client) IsEqual(other *Client) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the client's unique identifier.
func (c *Client) ID() kernel.UUID {
	return c.id
}

// Name returns the client's display name.
func (c *Client) Name() string {
	return c.name
}

// Phone returns the client's phone number.
func (c *Client) Phone() string {
	return c.phone
}

// Email returns the client's email address, empty when not provided.
func (c *Client) Email() string {
	return c.email
}

// Address returns the client's free-text address.
func (c *Client) Address() string {
	return c.address
}

// Location returns the geocoded position of the client's address.
// Returns nil when the address has not been geocoded.
func (c *Client) Location() *kernel.GeoPoint {
	return c.location
}

// SetLocation records the geocoded position of the client's address.
func (c *Client) SetLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.location = &point
	return nil
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Client) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}
