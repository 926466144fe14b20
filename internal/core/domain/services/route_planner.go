package services

import (
	"errors"
	"math"
	"time"

	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
)

// StopServiceTime is the handover time budgeted at every delivery stop.
const StopServiceTime = 15 * time.Minute

// ErrNoDeliveryPoints is returned when planning a route without any points.
var ErrNoDeliveryPoints = errors.New("no delivery points to plan")

// PlannedLeg is one ordered visit produced by the planner: the index of the
// point in the caller's input slice and the estimated arrival time offset
// from route start.
type PlannedLeg struct {
	PointIndex int
	ETAOffset  time.Duration
}

// Plan is the outcome of route planning: the visit order, the total
// straight-line driving distance and the total duration including service
// time at each stop.
type Plan struct {
	Legs       []PlannedLeg
	DistanceKm float64
	Duration   time.Duration
}

// RoutePlanner orders delivery points into a drivable sequence using the
// nearest-neighbor heuristic: from the courier's position, repeatedly drive
// to the closest unvisited point. The heuristic is not optimal but is cheap
// and good enough for the route sizes one courier handles in a shift.
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// PlanRoute orders the points starting from origin and estimates arrival
// times at the given transport's average speed. Every stop adds a fixed
// service time before the courier drives on.
func (p RoutePlanner) PlanRoute(origin kernel.GeoPoint, points []kernel.GeoPoint, transport courier.Transport) (Plan, error) {
	if err := origin.Validate(); err != nil {
		return Plan{}, err
	}
	if err := transport.Validate(); err != nil {
		return Plan{}, err
	}
	if len(points) == 0 {
		return Plan{}, ErrNoDeliveryPoints
	}
	for _, point := range points {
		if err := point.Validate(); err != nil {
			return Plan{}, err
		}
	}

	speedKmh := transport.SpeedKmh()
	visited := make([]bool, len(points))
	legs := make([]PlannedLeg, 0, len(points))

	current := origin
	totalKm := 0.0
	elapsed := time.Duration(0)

	for range points {
		nextIdx := -1
		nextKm := math.Inf(1)

		for i, point := range points {
			if visited[i] {
				continue
			}
			km, err := current.DistanceKm(point)
			if err != nil {
				return Plan{}, err
			}
			if km < nextKm {
				nextKm = km
				nextIdx = i
			}
		}

		visited[nextIdx] = true
		totalKm += nextKm
		elapsed += time.Duration(nextKm / speedKmh * float64(time.Hour))

		legs = append(legs, PlannedLeg{PointIndex: nextIdx, ETAOffset: elapsed})

		elapsed += StopServiceTime
		current = points[nextIdx]
	}

	return Plan{Legs: legs, DistanceKm: totalKm, Duration: elapsed}, nil
}
