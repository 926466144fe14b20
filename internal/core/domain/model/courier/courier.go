package courier

import (
	"errors"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// locationFreshness is how long a GPS fix counts as current. A courier whose
// last ping is older is treated as having no known position.
const locationFreshness = 5 * time.Minute

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrNoKnownLocation is returned when a travel-time estimate is requested
	// for a courier that has never reported a position.
	ErrNoKnownLocation = errors.New("courier has no known location")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery worker. The aggregate tracks the last known
// GPS position and its timestamp; the position participates in dispatch only
// while it is fresh. Full position history lives in the tracking model, not
// here.
type Courier struct {
	id           kernel.UUID
	name         string
	phone        string
	transport    Transport
	available    bool
	location     *kernel.GeoPoint
	locatedAt    *time.Time
	registeredAt time.Time
	guard        guard.ConstructorGuard
}

// NewCourier creates a courier. New couriers start unavailable: they become
// dispatch candidates only after explicitly going on shift.
func NewCourier(
	id kernel.UUID,
	name string,
	phone string,
	transport Transport,
	registeredAt time.Time,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
		courier.setTransport(transport),
		courier.setRegisteredAt(registeredAt),
	); err != nil {
		return nil, err
	}
	return courier, nil
}

// RestoreCourier reconstructs a courier from persistence. Location and its
// timestamp must be both present or both absent.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone string,
	transport Transport,
	available bool,
	location *kernel.GeoPoint,
	locatedAt *time.Time,
	registeredAt time.Time,
) (*Courier, error) {
	courier, err := NewCourier(id, name, phone, transport, registeredAt)
	if err != nil {
		return nil, err
	}

	courier.available = available
	if location != nil {
		if locatedAt == nil {
			return nil, errs.NewValueIsRequiredError("locatedAt")
		}
		if err = courier.UpdateLocation(*location, *locatedAt); err != nil {
			return nil, err
		}
	}
	return courier, nil
}

// Validate checks that the courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's phone number.
func (c *Courier) Phone() string {
	return c.phone
}

// Transport returns the courier's vehicle type.
func (c *Courier) Transport() Transport {
	return c.transport
}

// IsAvailable reports whether the courier is on shift and accepting orders.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// RegisteredAt returns when the courier joined. Dispatch uses it to break
// ties between equally ranked candidates in favor of the longest-serving one.
func (c *Courier) RegisteredAt() time.Time {
	return c.registeredAt
}

// Location returns the last reported position, nil when never reported.
// Callers deciding on dispatch should also check LocationFreshAt.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// LocatedAt returns when the last position was reported, nil when never
// reported.
func (c *Courier) LocatedAt() *time.Time {
	return c.locatedAt
}

// SetAvailable puts the courier on or off shift.
func (c *Courier) SetAvailable(available bool) {
	c.available = available
}

// UpdateLocation records a new GPS fix. Stale fixes are rejected: a ping
// older than the one already recorded would move the courier backwards.
func (c *Courier) UpdateLocation(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if c.locatedAt != nil && at.Before(*c.locatedAt) {
		return errs.NewValueIsInvalidError("at")
	}

	c.location = &point
	c.locatedAt = &at
	return nil
}

// LocationFreshAt reports whether the last known position is recent enough
// (five minutes) to use for dispatch decisions at the given moment.
func (c *Courier) LocationFreshAt(now time.Time) bool {
	if c.location == nil || c.locatedAt == nil {
		return false
	}
	return now.Sub(*c.locatedAt) <= locationFreshness
}

// CanCarry reports whether the courier's transport fits the given number of
// order units.
func (c *Courier) CanCarry(quantity int) bool {
	return quantity > 0 && quantity <= c.transport.Capacity()
}

// TimeTo estimates travel time to the destination over the straight-line
// distance at the transport's average speed. Returns ErrNoKnownLocation when
// the courier has never reported a position.
func (c *Courier) TimeTo(destination kernel.GeoPoint) (time.Duration, error) {
	if c.location == nil {
		return 0, ErrNoKnownLocation
	}
	if err := destination.Validate(); err != nil {
		return 0, err
	}

	distanceKm, err := c.location.DistanceKm(destination)
	if err != nil {
		return 0, err
	}
	hours := distanceKm / c.transport.SpeedKmh()
	return time.Duration(hours * float64(time.Hour)), nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *Courier) setTransport(transport Transport) error {
	if err := transport.Validate(); err != nil {
		return err
	}
	c.transport = transport
	return nil
}

func (c *Courier) setRegisteredAt(registeredAt time.Time) error {
	if registeredAt.IsZero() {
		return errs.NewValueIsRequiredError("registeredAt")
	}
	c.registeredAt = registeredAt
	return nil
}
