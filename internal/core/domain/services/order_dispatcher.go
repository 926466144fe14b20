package services

import (
	"errors"
	"math"
	"time"

	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no suitable courier is available for
// order dispatch: either no couriers were provided, or none is on shift with
// enough capacity for the order.
var ErrCourierNotFound = errors.New("courier not found")

// ErrOrderHasNoLocation is returned when dispatching an order whose address
// has not been geocoded yet. Such orders cannot be ranked by travel time and
// must wait for geocoding.
var ErrOrderHasNoLocation = errors.New("order has no geocoded location")

// OrderDispatcher is a domain service that picks the best courier for an
// order and executes the assignment.
//
// Candidates are filtered to couriers that are on shift and whose transport
// fits the order quantity. The remaining candidates are ranked by estimated
// travel time to the delivery point over the straight-line distance at the
// transport's average speed. A courier with a fresh GPS fix always ranks
// ahead of one with a stale or missing fix. Ties break in favor of the
// courier registered earliest.
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch finds the best courier for the order and assigns the order to it.
// The courier is taken off shift so that concurrent dispatches do not double
// book it; it goes back on shift when the order is delivered or cancelled.
//
// Returns ErrCourierNotFound when no candidate passes the filters, and
// ErrOrderHasNoLocation when the order cannot be ranked.
func (d OrderDispatcher) Dispatch(ord *order.Order, couriers []*courier.Courier, now time.Time) (*courier.Courier, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}
	if ord.Location() == nil {
		return nil, ErrOrderHasNoLocation
	}

	best, err := d.findBestCourier(ord, couriers, now)
	if err != nil {
		return nil, err
	}

	if err = ord.Assign(best.ID()); err != nil {
		return nil, err
	}
	best.SetAvailable(false)

	return best, nil
}

// findBestCourier ranks the candidates and returns the winner.
//
// Ranking is two-tiered: couriers with a fresh position are compared by
// estimated travel time; couriers without one all share the worst possible
// rank. Within a tier, the earliest registeredAt wins ties.
func (d OrderDispatcher) findBestCourier(ord *order.Order, couriers []*courier.Courier, now time.Time) (*courier.Courier, error) {
	var (
		best     *courier.Courier
		bestTime = math.Inf(1)
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsAvailable() || !c.CanCarry(ord.Quantity()) {
			continue
		}

		travelTime := math.MaxFloat64
		if c.LocationFreshAt(now) {
			eta, err := c.TimeTo(*ord.Location())
			if err != nil {
				return nil, err
			}
			travelTime = eta.Seconds()
		}

		if best == nil ||
			travelTime < bestTime ||
			(travelTime == bestTime && c.RegisteredAt().Before(best.RegisteredAt())) {
			best = c
			bestTime = travelTime
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}
	return best, nil
}
