package commands

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
	"crm/internal/core/domain/model/payment"
	"crm/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderProductIsRequired = errors.New("product is required")
	ErrOrderAddressIsRequired = errors.New("address is required")
	ErrOrderQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// CreateOrderCommand represents a request to register a new order together
// with its pending payment. Monetary amounts are minor units (kopecks).
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	clientID      kernel.UUID
	product       string
	quantity      int
	address       string
	priority      order.Priority
	paymentMethod payment.Method
	basePrice     kernel.Money
	deliveryFee   kernel.Money
	discount      kernel.Money
	notes         string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Priority defaults to normal when the name is empty.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	product string,
	quantity int,
	address string,
	priorityName string,
	paymentMethodName string,
	basePriceMinor int64,
	deliveryFeeMinor int64,
	discountMinor int64,
	notes string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if priorityName == "" {
		priorityName = order.PriorityNormal.String()
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setClientID(clientID),
		command.setProduct(product),
		command.setQuantity(quantity),
		command.setAddress(address),
		command.setPriority(priorityName),
		command.setPaymentMethod(paymentMethodName),
		command.setPricing(basePriceMinor, deliveryFeeMinor, discountMinor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the ordering client's identifier.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Product returns the ordered goods description.
func (c CreateOrderCommand) Product() string {
	return c.product
}

// Quantity returns the number of ordered units.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// Address returns the free-text delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Priority returns the order's urgency.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// PaymentMethod returns how the order will be paid.
func (c CreateOrderCommand) PaymentMethod() payment.Method {
	return c.paymentMethod
}

// BasePrice returns the price of the goods.
func (c CreateOrderCommand) BasePrice() kernel.Money {
	return c.basePrice
}

// DeliveryFee returns the delivery surcharge.
func (c CreateOrderCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// Discount returns the discount applied to the order.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

// Notes returns free-text delivery instructions.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setProduct(product string) error {
	if product == "" {
		return ErrOrderProductIsRequired
	}
	c.product = product
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrOrderQuantityIsInvalid
	}
	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrOrderAddressIsRequired
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPriority(priorityName string) error {
	priority, err := order.PriorityFromString(priorityName)
	if err != nil {
		return err
	}
	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(methodName string) error {
	method, err := payment.MethodFromString(methodName)
	if err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setPricing(basePriceMinor, deliveryFeeMinor, discountMinor int64) error {
	basePrice, basePriceErr := kernel.NewMoney(basePriceMinor)
	deliveryFee, deliveryFeeErr := kernel.NewMoney(deliveryFeeMinor)
	discount, discountErr := kernel.NewMoney(discountMinor)

	if err := errors.Join(basePriceErr, deliveryFeeErr, discountErr); err != nil {
		return err
	}

	c.basePrice = basePrice
	c.deliveryFee = deliveryFee
	c.discount = discount
	return nil
}
