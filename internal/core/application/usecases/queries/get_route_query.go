package queries

import (
	"errors"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var ErrGetRouteQueryIsNotConstructed = errors.New(
	"GetRouteQuery must be created via NewGetRouteQuery constructor",
)

// GetRouteQuery retrieves one planned route with its ordered stops.
type GetRouteQuery struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRouteQuery creates a query for a single route by its identifier.
func NewGetRouteQuery(routeID kernel.UUID) (GetRouteQuery, error) {
	query := GetRouteQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setRouteID(routeID); err != nil {
		return GetRouteQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

// RouteID returns the requested route identifier.
func (q GetRouteQuery) RouteID() kernel.UUID {
	return q.routeID
}

func (q *GetRouteQuery) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	q.routeID = routeID
	return nil
}

// GetRouteQueryStop represents one delivery stop on the route, in visiting
// order. ETA is nil when the planner could not estimate arrival.
type GetRouteQueryStop struct {
	OrderID  kernel.UUID
	Sequence int
	Point    kernel.GeoPoint
	ETA      *time.Time
}

// GetRouteQueryResponse represents a route in the read model, including its
// ordered stops.
type GetRouteQueryResponse struct {
	ID          kernel.UUID
	CourierID   kernel.UUID
	Name        string
	Status      string
	DistanceKm  float64
	Duration    time.Duration
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	Stops       []GetRouteQueryStop
}
