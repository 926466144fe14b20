package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
)

func mustMoney(t *testing.T, minorUnits int64) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoney(minorUnits)
	require.NoError(t, err)
	return money
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Pizza Margherita",
		2,
		"Khreschatyk 1, Kyiv",
		order.PriorityNormal,
		mustMoney(t, 30000),
		mustMoney(t, 5000),
		mustMoney(t, 2000),
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.NoError(t, o.Validate())
	assert.Equal(t, order.StatusNew, o.Status())
	assert.Nil(t, o.CourierID())
	assert.Nil(t, o.Location())
	assert.Nil(t, o.DeliveredAt())
	assert.Equal(t, int64(33000), o.TotalPrice().MinorUnits())
}

func TestNewOrder_CollectsAllErrors(t *testing.T) {
	_, err := order.NewOrder(
		kernel.UUID{},
		kernel.UUID{},
		"",
		0,
		"",
		order.PriorityUnknown,
		kernel.Money{},
		kernel.Money{},
		kernel.Money{},
		time.Time{},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrProductIsRequired)
	assert.ErrorIs(t, err, order.ErrAddressIsRequired)
}

func TestOrder_Lifecycle(t *testing.T) {
	o := newTestOrder(t)
	courierID := kernel.NewUUID()
	deliveredAt := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	require.NoError(t, o.Assign(courierID))
	assert.Equal(t, order.StatusAssigned, o.Status())
	require.NotNil(t, o.CourierID())
	assert.True(t, courierID.IsEqual(*o.CourierID()))

	require.NoError(t, o.PickUp())
	require.NoError(t, o.StartTransit())
	require.NoError(t, o.Deliver(deliveredAt))

	assert.Equal(t, order.StatusDelivered, o.Status())
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, deliveredAt, *o.DeliveredAt())
}

func TestOrder_Reassign(t *testing.T) {
	o := newTestOrder(t)
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, o.Assign(first))
	require.NoError(t, o.Assign(second))

	assert.True(t, second.IsEqual(*o.CourierID()))
}

func TestOrder_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		run  func(o *order.Order) error
	}{
		{name: "pick up unassigned", run: func(o *order.Order) error {
			return o.PickUp()
		}},
		{name: "deliver from new", run: func(o *order.Order) error {
			return o.Deliver(time.Now())
		}},
		{name: "transit before pickup", run: func(o *order.Order) error {
			if err := o.Assign(kernel.NewUUID()); err != nil {
				return err
			}
			return o.StartTransit()
		}},
		{name: "assign delivered", run: func(o *order.Order) error {
			if err := o.Assign(kernel.NewUUID()); err != nil {
				return err
			}
			if err := o.PickUp(); err != nil {
				return err
			}
			if err := o.StartTransit(); err != nil {
				return err
			}
			if err := o.Deliver(time.Now()); err != nil {
				return err
			}
			return o.Assign(kernel.NewUUID())
		}},
		{name: "cancel delivered", run: func(o *order.Order) error {
			if err := o.Assign(kernel.NewUUID()); err != nil {
				return err
			}
			if err := o.PickUp(); err != nil {
				return err
			}
			if err := o.StartTransit(); err != nil {
				return err
			}
			if err := o.Deliver(time.Now()); err != nil {
				return err
			}
			return o.Cancel()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(newTestOrder(t))

			require.Error(t, err)
			var transitionErr *order.InvalidTransitionError
			assert.ErrorAs(t, err, &transitionErr)
		})
	}
}

func TestOrder_CancelKeepsCourier(t *testing.T) {
	o := newTestOrder(t)
	courierID := kernel.NewUUID()
	require.NoError(t, o.Assign(courierID))

	require.NoError(t, o.Cancel())

	assert.Equal(t, order.StatusCancelled, o.Status())
	require.NotNil(t, o.CourierID())
	assert.True(t, courierID.IsEqual(*o.CourierID()))
}

func TestOrder_TotalPriceFloorsAtZero(t *testing.T) {
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Coffee",
		1,
		"Khreschatyk 1, Kyiv",
		order.PriorityLow,
		mustMoney(t, 1000),
		mustMoney(t, 0),
		mustMoney(t, 5000),
		time.Now(),
	)
	require.NoError(t, err)

	assert.True(t, o.TotalPrice().IsZero())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from order.Status
		to   order.Status
		want bool
	}{
		{order.StatusNew, order.StatusAssigned, true},
		{order.StatusNew, order.StatusPickedUp, false},
		{order.StatusAssigned, order.StatusAssigned, true},
		{order.StatusAssigned, order.StatusPickedUp, true},
		{order.StatusPickedUp, order.StatusInTransit, true},
		{order.StatusInTransit, order.StatusDelivered, true},
		{order.StatusInTransit, order.StatusCancelled, true},
		{order.StatusDelivered, order.StatusCancelled, false},
		{order.StatusCancelled, order.StatusNew, false},
		{order.StatusDelivered, order.StatusNew, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStatusFromString(t *testing.T) {
	for _, status := range []order.Status{
		order.StatusNew, order.StatusAssigned, order.StatusPickedUp,
		order.StatusInTransit, order.StatusDelivered, order.StatusCancelled,
	} {
		parsed, err := order.StatusFromString(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := order.StatusFromString("exploded")
	assert.Error(t, err)
}

func TestPriorityFromString(t *testing.T) {
	for _, priority := range []order.Priority{
		order.PriorityLow, order.PriorityNormal, order.PriorityHigh, order.PriorityUrgent,
	} {
		parsed, err := order.PriorityFromString(priority.String())
		require.NoError(t, err)
		assert.Equal(t, priority, parsed)
	}

	_, err := order.PriorityFromString("sometime")
	assert.Error(t, err)
}
