package route_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/route"
)

func mustStop(t *testing.T, sequence int, lat, lon float64) route.Stop {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	stop, err := route.NewStop(kernel.NewUUID(), sequence, point, nil)
	require.NoError(t, err)
	return stop
}

func newTestRoute(t *testing.T) *route.Route {
	t.Helper()
	stops := []route.Stop{
		mustStop(t, 0, 50.4501, 30.5234),
		mustStop(t, 1, 50.4547, 30.5238),
		mustStop(t, 2, 50.4601, 30.5100),
	}
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "Morning run", stops,
		4.2, 55*time.Minute, nil, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return r
}

func TestNewRoute(t *testing.T) {
	r := newTestRoute(t)

	assert.NoError(t, r.Validate())
	assert.Equal(t, route.StatusPlanned, r.Status())
	assert.Len(t, r.Stops(), 3)
	assert.InEpsilon(t, 4.2, r.DistanceKm(), 0.001)
	assert.Nil(t, r.StartedAt())
}

func TestNewRoute_RequiresStops(t *testing.T) {
	_, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "", nil,
		0, 0, nil, time.Now())
	assert.ErrorIs(t, err, route.ErrNoStops)
}

func TestNewRoute_RejectsGappedSequence(t *testing.T) {
	stops := []route.Stop{
		mustStop(t, 0, 50.4501, 30.5234),
		mustStop(t, 2, 50.4547, 30.5238),
	}

	_, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "", stops,
		1, time.Minute, nil, time.Now())
	require.Error(t, err)
}

func TestRoute_Lifecycle(t *testing.T) {
	r := newTestRoute(t)
	startAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	endAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Start(startAt))
	assert.Equal(t, route.StatusActive, r.Status())

	require.NoError(t, r.Complete(endAt))
	assert.Equal(t, route.StatusCompleted, r.Status())
	require.NotNil(t, r.CompletedAt())
	assert.Equal(t, endAt, *r.CompletedAt())
}

func TestRoute_InvalidTransitions(t *testing.T) {
	r := newTestRoute(t)

	assert.Error(t, r.Complete(time.Now()), "complete before start")

	require.NoError(t, r.Start(time.Now()))
	assert.Error(t, r.Start(time.Now()), "double start")

	require.NoError(t, r.Complete(time.Now()))
	assert.Error(t, r.Cancel(), "cancel completed")

	var transitionErr *route.InvalidTransitionError
	assert.ErrorAs(t, r.Cancel(), &transitionErr)
}

func TestRoute_Cancel(t *testing.T) {
	planned := newTestRoute(t)
	require.NoError(t, planned.Cancel())
	assert.Equal(t, route.StatusCancelled, planned.Status())

	active := newTestRoute(t)
	require.NoError(t, active.Start(time.Now()))
	require.NoError(t, active.Cancel())
	assert.Equal(t, route.StatusCancelled, active.Status())
}

func TestNewStop(t *testing.T) {
	point, err := kernel.NewGeoPoint(50.4501, 30.5234)
	require.NoError(t, err)

	_, err = route.NewStop(kernel.UUID{}, 0, point, nil)
	assert.Error(t, err, "zero order id")

	_, err = route.NewStop(kernel.NewUUID(), -1, point, nil)
	assert.Error(t, err, "negative sequence")

	eta := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	stop, err := route.NewStop(kernel.NewUUID(), 3, point, &eta)
	require.NoError(t, err)
	assert.Equal(t, 3, stop.Sequence())
	require.NotNil(t, stop.ETA())
	assert.Equal(t, eta, *stop.ETA())
}
