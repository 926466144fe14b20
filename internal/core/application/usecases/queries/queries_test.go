package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/core/application/usecases/queries"
	"crm/internal/core/domain/model/kernel"
)

func TestNewGetAllCouriersQuery_Valid(t *testing.T) {
	query := queries.NewGetAllCouriersQuery()
	require.NoError(t, query.Validate())
}

func TestGetAllCouriersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllCouriersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllCouriersQueryIsNotConstructed)
}

func TestNewGetUndeliveredOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetUndeliveredOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetUndeliveredOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetUndeliveredOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetUndeliveredOrdersQueryIsNotConstructed)
}

func TestNewGetCourierTrackQuery(t *testing.T) {
	courierID := kernel.NewUUID()
	from := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	to := from.Add(4 * time.Hour)

	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewGetCourierTrackQuery(courierID, from, to)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.CourierID().IsEqual(courierID))
		assert.Equal(t, from, query.From())
		assert.Equal(t, to, query.To())
	})

	t.Run("inverted window", func(t *testing.T) {
		_, err := queries.NewGetCourierTrackQuery(courierID, to, from)
		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrTrackWindowIsInverted)
	})

	t.Run("zero window", func(t *testing.T) {
		_, err := queries.NewGetCourierTrackQuery(courierID, time.Time{}, to)
		require.Error(t, err)
	})

	t.Run("invalid courier id", func(t *testing.T) {
		_, err := queries.NewGetCourierTrackQuery(kernel.UUID{}, from, to)
		require.Error(t, err)
	})
}

func TestGetCourierTrackQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCourierTrackQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCourierTrackQueryIsNotConstructed)
}

func TestNewGetRouteQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		routeID := kernel.NewUUID()
		query, err := queries.NewGetRouteQuery(routeID)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.RouteID().IsEqual(routeID))
	})

	t.Run("invalid route id", func(t *testing.T) {
		_, err := queries.NewGetRouteQuery(kernel.UUID{})
		require.Error(t, err)
	})
}

func TestGetRouteQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetRouteQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetRouteQueryIsNotConstructed)
}
