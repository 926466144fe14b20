package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/services"
)

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func TestRoutePlanner_PlanRoute(t *testing.T) {
	planner := services.NewRoutePlanner()
	origin := point(t, 50.4501, 30.5234)

	t.Run("visits points nearest first", func(t *testing.T) {
		// Points laid north of the origin at increasing distances, given
		// out of order.
		points := []kernel.GeoPoint{
			point(t, 50.4800, 30.5234), // index 0, second closest
			point(t, 50.4600, 30.5234), // index 1, closest
			point(t, 50.5100, 30.5234), // index 2, farthest
		}

		plan, err := planner.PlanRoute(origin, points, courier.TransportBike)

		require.NoError(t, err)
		require.Len(t, plan.Legs, 3)
		assert.Equal(t, 1, plan.Legs[0].PointIndex)
		assert.Equal(t, 0, plan.Legs[1].PointIndex)
		assert.Equal(t, 2, plan.Legs[2].PointIndex)
	})

	t.Run("accumulates distance and duration", func(t *testing.T) {
		points := []kernel.GeoPoint{
			point(t, 50.4600, 30.5234),
			point(t, 50.4700, 30.5234),
		}

		plan, err := planner.PlanRoute(origin, points, courier.TransportBike)

		require.NoError(t, err)
		// ~1.1 km to the first point plus ~1.1 km to the second.
		assert.InDelta(t, 2.2, plan.DistanceKm, 0.2)
		// ~9 min driving plus two 15 min stops.
		assert.InDelta(t, 39, plan.Duration.Minutes(), 3)
	})

	t.Run("etas grow along the route", func(t *testing.T) {
		points := []kernel.GeoPoint{
			point(t, 50.4600, 30.5234),
			point(t, 50.4700, 30.5234),
			point(t, 50.4800, 30.5234),
		}

		plan, err := planner.PlanRoute(origin, points, courier.TransportCar)

		require.NoError(t, err)
		var prev time.Duration
		for _, leg := range plan.Legs {
			assert.Greater(t, leg.ETAOffset, prev)
			prev = leg.ETAOffset
		}
	})

	t.Run("no points", func(t *testing.T) {
		_, err := planner.PlanRoute(origin, nil, courier.TransportBike)
		assert.ErrorIs(t, err, services.ErrNoDeliveryPoints)
	})

	t.Run("invalid transport", func(t *testing.T) {
		_, err := planner.PlanRoute(origin, []kernel.GeoPoint{point(t, 50.46, 30.52)}, courier.TransportUnknown)
		assert.Error(t, err)
	})

	t.Run("invalid point", func(t *testing.T) {
		_, err := planner.PlanRoute(origin, []kernel.GeoPoint{{}}, courier.TransportBike)
		assert.Error(t, err)
	})
}
