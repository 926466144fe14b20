package route

import (
	"errors"
	"fmt"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// Domain errors for route operations.
var (
	// ErrNoStops is returned when attempting to create a route without stops.
	ErrNoStops = errors.New("route must contain at least one stop")
	// ErrRouteIsNotConstructed is returned when using an improperly initialized Route.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
)

// Status represents the lifecycle state of a route:
// Planned -> Active -> Completed, with Cancelled reachable from Planned and
// Active.
type Status int

const (
	// StatusUnknown is the zero value and is never valid.
	StatusUnknown Status = iota
	// StatusPlanned is a computed route not yet started.
	StatusPlanned
	// StatusActive is a route the courier is driving.
	StatusActive
	// StatusCompleted is a finished route. Terminal.
	StatusCompleted
	// StatusCancelled is an abandoned route. Terminal.
	StatusCancelled
)

const (
	statusUnknownName   = "unknown"
	statusPlannedName   = "planned"
	statusActiveName    = "active"
	statusCompletedName = "completed"
	statusCancelledName = "cancelled"
)

// StatusFromString parses a status name as stored in the database.
func StatusFromString(name string) (Status, error) {
	switch name {
	case statusPlannedName:
		return StatusPlanned, nil
	case statusActiveName:
		return StatusActive, nil
	case statusCompletedName:
		return StatusCompleted, nil
	case statusCancelledName:
		return StatusCancelled, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidError("status")
	}
}

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	switch s {
	case StatusPlanned, StatusActive, StatusCompleted, StatusCancelled:
		return nil
	case StatusUnknown:
		return errs.NewValueIsRequiredError("status")
	default:
		return errs.NewValueIsInvalidError("status")
	}
}

// String returns the canonical name of the status.
func (s Status) String() string {
	switch s {
	case StatusPlanned:
		return statusPlannedName
	case StatusActive:
		return statusActiveName
	case StatusCompleted:
		return statusCompletedName
	case StatusCancelled:
		return statusCancelledName
	default:
		return statusUnknownName
	}
}

// InvalidTransitionError is returned when a route is moved along a path the
// state machine does not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid route status transition: %s -> %s", e.From, e.To)
}

// Stop is a single visit on a route: the order delivered there, its position
// in the driving sequence and the estimated arrival time.
type Stop struct {
	orderID  kernel.UUID
	sequence int
	point    kernel.GeoPoint
	eta      *time.Time
}

// NewStop creates a route stop. Sequence is zero-based.
func NewStop(orderID kernel.UUID, sequence int, point kernel.GeoPoint, eta *time.Time) (Stop, error) {
	if err := errors.Join(orderID.Validate(), point.Validate()); err != nil {
		return Stop{}, err
	}
	if sequence < 0 {
		return Stop{}, errs.NewValueIsInvalidError("sequence")
	}
	return Stop{orderID: orderID, sequence: sequence, point: point, eta: eta}, nil
}

// OrderID returns the order delivered at this stop.
func (s Stop) OrderID() kernel.UUID { return s.orderID }

// Sequence returns the zero-based position in the driving order.
func (s Stop) Sequence() int { return s.sequence }

// Point returns the stop's coordinates.
func (s Stop) Point() kernel.GeoPoint { return s.point }

// ETA returns the estimated arrival time, nil when not estimated.
func (s Stop) ETA() *time.Time { return s.eta }

// Route is an ordered multi-stop delivery plan for one courier. Stops are
// immutable once the route is created; replanning produces a new route and
// cancels the old one.
type Route struct {
	id          kernel.UUID
	courierID   kernel.UUID
	name        string
	status      Status
	stops       []Stop
	distanceKm  float64
	duration    time.Duration
	geometry    []kernel.GeoPoint
	createdAt   time.Time
	startedAt   *time.Time
	completedAt *time.Time
	guard       guard.ConstructorGuard
}

// NewRoute creates a planned route. Stops must be non-empty and numbered
// contiguously from zero.
func NewRoute(
	id kernel.UUID,
	courierID kernel.UUID,
	name string,
	stops []Stop,
	distanceKm float64,
	duration time.Duration,
	geometry []kernel.GeoPoint,
	createdAt time.Time,
) (*Route, error) {
	route := &Route{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		route.setID(id),
		route.setCourierID(courierID),
		route.setStops(stops),
		route.setDistanceKm(distanceKm),
		route.setDuration(duration),
		route.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	route.name = name
	route.geometry = geometry
	route.status = StatusPlanned
	return route, nil
}

// RestoreRoute reconstructs a route from persistence in an arbitrary
// lifecycle state.
func RestoreRoute(
	id kernel.UUID,
	courierID kernel.UUID,
	name string,
	status Status,
	stops []Stop,
	distanceKm float64,
	duration time.Duration,
	geometry []kernel.GeoPoint,
	createdAt time.Time,
	startedAt *time.Time,
	completedAt *time.Time,
) (*Route, error) {
	route, err := NewRoute(id, courierID, name, stops, distanceKm, duration, geometry, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	route.status = status
	route.startedAt = startedAt
	route.completedAt = completedAt
	return route, nil
}

// Validate checks that the route was created through a constructor.
func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID {
	return r.id
}

// CourierID returns the courier driving the route.
func (r *Route) CourierID() kernel.UUID {
	return r.courierID
}

// Name returns the optional display name of the route.
func (r *Route) Name() string {
	return r.name
}

// Status returns the route's lifecycle state.
func (r *Route) Status() Status {
	return r.status
}

// Stops returns the visits in driving order. The slice must not be mutated.
func (r *Route) Stops() []Stop {
	return r.stops
}

// DistanceKm returns the total driving distance.
func (r *Route) DistanceKm() float64 {
	return r.distanceKm
}

// Duration returns the estimated driving time including service time at each
// stop.
func (r *Route) Duration() time.Duration {
	return r.duration
}

// Geometry returns the route polyline, empty when the routing provider did
// not supply one.
func (r *Route) Geometry() []kernel.GeoPoint {
	return r.geometry
}

// CreatedAt returns when the route was planned.
func (r *Route) CreatedAt() time.Time {
	return r.createdAt
}

// StartedAt returns when the courier started driving, nil until started.
func (r *Route) StartedAt() *time.Time {
	return r.startedAt
}

// CompletedAt returns when the route finished, nil until completed.
func (r *Route) CompletedAt() *time.Time {
	return r.completedAt
}

// Start marks the route as being driven.
func (r *Route) Start(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if r.status != StatusPlanned {
		return &InvalidTransitionError{From: r.status, To: StatusActive}
	}

	r.status = StatusActive
	r.startedAt = &at
	return nil
}

// Complete marks the route as finished.
func (r *Route) Complete(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if r.status != StatusActive {
		return &InvalidTransitionError{From: r.status, To: StatusCompleted}
	}

	r.status = StatusCompleted
	r.completedAt = &at
	return nil
}

// Cancel abandons a route that has not finished.
func (r *Route) Cancel() error {
	if r.status != StatusPlanned && r.status != StatusActive {
		return &InvalidTransitionError{From: r.status, To: StatusCancelled}
	}
	r.status = StatusCancelled
	return nil
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	r.courierID = courierID
	return nil
}

func (r *Route) setStops(stops []Stop) error {
	if len(stops) == 0 {
		return ErrNoStops
	}
	for i, stop := range stops {
		if stop.sequence != i {
			return errs.NewValueIsInvalidError("stops")
		}
	}
	r.stops = stops
	return nil
}

func (r *Route) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidError("distanceKm")
	}
	r.distanceKm = distanceKm
	return nil
}

func (r *Route) setDuration(duration time.Duration) error {
	if duration < 0 {
		return errs.NewValueIsInvalidError("duration")
	}
	r.duration = duration
	return nil
}

func (r *Route) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	r.createdAt = createdAt
	return nil
}
