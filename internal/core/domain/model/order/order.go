package order

import (
	"errors"
	"fmt"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrProductIsRequired is returned when attempting to create an order without a product.
	ErrProductIsRequired = errs.NewValueIsRequiredError("product")
	// ErrAddressIsRequired is returned when attempting to create an order without a delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// InvalidTransitionError is returned when an order is moved along a lifecycle
// path the state machine does not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}

// Order is the central aggregate of the delivery flow. An order is created
// for a client, priced, optionally paid, and moved through the delivery
// lifecycle by the courier it was assigned to. The delivery location is
// geocoded lazily from the address, so an order without coordinates is valid
// but cannot be auto-dispatched.
type Order struct {
	id          kernel.UUID
	clientID    kernel.UUID
	courierID   *kernel.UUID
	product     string
	quantity    int
	address     string
	location    *kernel.GeoPoint
	status      Status
	priority    Priority
	basePrice   kernel.Money
	deliveryFee kernel.Money
	discount    kernel.Money
	total       kernel.Money
	notes       string
	createdAt   time.Time
	estimatedAt *time.Time
	deliveredAt *time.Time
	guard       guard.ConstructorGuard
}

// NewOrder creates an order in the New status. Quantity must be positive;
// prices are validated by the Money type before reaching here.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	product string,
	quantity int,
	address string,
	priority Priority,
	basePrice kernel.Money,
	deliveryFee kernel.Money,
	discount kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setClientID(clientID),
		order.setProduct(product),
		order.setQuantity(quantity),
		order.setAddress(address),
		order.setPriority(priority),
		order.setPricing(basePrice, deliveryFee, discount),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	order.status = StatusNew
	return order, nil
}

// RestoreOrder reconstructs an order from persistence in an arbitrary
// lifecycle state.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	courierID *kernel.UUID,
	product string,
	quantity int,
	address string,
	location *kernel.GeoPoint,
	status Status,
	priority Priority,
	basePrice kernel.Money,
	deliveryFee kernel.Money,
	discount kernel.Money,
	notes string,
	createdAt time.Time,
	estimatedAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	order, err := NewOrder(id, clientID, product, quantity, address, priority,
		basePrice, deliveryFee, discount, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err = courierID.Validate(); err != nil {
			return nil, err
		}
	}
	if location != nil {
		if err = order.SetLocation(*location); err != nil {
			return nil, err
		}
	}

	order.status = status
	order.courierID = courierID
	order.notes = notes
	order.estimatedAt = estimatedAt
	order.deliveredAt = deliveredAt
	return order, nil
}

// Validate checks that the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the ordering client's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// CourierID returns the assigned courier's identifier, nil while unassigned.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Product returns the ordered goods description.
func (o *Order) Product() string {
	return o.product
}

// Quantity returns the number of ordered units.
func (o *Order) Quantity() int {
	return o.quantity
}

// Address returns the free-text delivery address.
func (o *Order) Address() string {
	return o.address
}

// Location returns the geocoded delivery position, nil when the address has
// not been geocoded.
func (o *Order) Location() *kernel.GeoPoint {
	return o.location
}

// Status returns the order's lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the order's urgency.
func (o *Order) Priority() Priority {
	return o.priority
}

// BasePrice returns the price of the goods.
func (o *Order) BasePrice() kernel.Money {
	return o.basePrice
}

// DeliveryFee returns the delivery surcharge.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Discount returns the discount applied to the order.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// TotalPrice returns base price plus delivery fee minus discount, floored at
// zero. The total is fixed at construction alongside its components.
func (o *Order) TotalPrice() kernel.Money {
	return o.total
}

// Notes returns free-text delivery instructions.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns when the order was registered.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDeliveryAt returns the promised delivery time, nil when not
// estimated yet.
func (o *Order) EstimatedDeliveryAt() *time.Time {
	return o.estimatedAt
}

// DeliveredAt returns the actual delivery time, nil until delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// SetLocation records the geocoded delivery position.
func (o *Order) SetLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.location = &point
	return nil
}

// SetNotes replaces the delivery instructions.
func (o *Order) SetNotes(notes string) {
	o.notes = notes
}

// SetEstimatedDeliveryAt records the promised delivery time.
func (o *Order) SetEstimatedDeliveryAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	o.estimatedAt = &at
	return nil
}

// Assign hands the order to a courier. Allowed from New, and from Assigned
// when the order is moved to a different courier.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := o.transitionTo(StatusAssigned); err != nil {
		return err
	}
	o.courierID = &courierID
	return nil
}

// PickUp marks the order as collected by its courier.
func (o *Order) PickUp() error {
	return o.transitionTo(StatusPickedUp)
}

// StartTransit marks the order as on its way to the client.
func (o *Order) StartTransit() error {
	return o.transitionTo(StatusInTransit)
}

// Deliver completes the order, recording the actual delivery time.
func (o *Order) Deliver(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if err := o.transitionTo(StatusDelivered); err != nil {
		return err
	}
	o.deliveredAt = &at
	return nil
}

// Cancel abandons the order. Allowed from any state except the terminal
// ones. The courier, if any, stays on record for auditing.
func (o *Order) Cancel() error {
	return o.transitionTo(StatusCancelled)
}

// ChangeStatus moves the order to the named lifecycle state using the
// dedicated transition methods. Transitions that need extra data (assignment,
// delivery time) must be performed through those methods directly.
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	switch next {
	case StatusPickedUp:
		return o.PickUp()
	case StatusInTransit:
		return o.StartTransit()
	case StatusDelivered:
		return o.Deliver(now)
	case StatusCancelled:
		return o.Cancel()
	default:
		return &InvalidTransitionError{From: o.status, To: next}
	}
}

func (o *Order) transitionTo(next Status) error {
	if !o.status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: o.status, To: next}
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setProduct(product string) error {
	if product == "" {
		return ErrProductIsRequired
	}
	o.product = product
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	o.address = address
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setPricing(basePrice, deliveryFee, discount kernel.Money) error {
	if err := errors.Join(
		validateMoney("basePrice", basePrice, &o.basePrice),
		validateMoney("deliveryFee", deliveryFee, &o.deliveryFee),
		validateMoney("discount", discount, &o.discount),
	); err != nil {
		return err
	}

	gross, err := basePrice.Add(deliveryFee)
	if err != nil {
		return err
	}
	total, err := gross.SubFloored(discount)
	if err != nil {
		return err
	}
	o.total = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func validateMoney(name string, value kernel.Money, target *kernel.Money) error {
	if err := value.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	*target = value
	return nil
}
