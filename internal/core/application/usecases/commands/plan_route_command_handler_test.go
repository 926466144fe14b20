package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm/internal/core/application/usecases/commands"
	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
	"crm/internal/core/domain/model/route"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

func planCmd(t *testing.T, courierID kernel.UUID) commands.PlanRouteCommand {
	t.Helper()
	cmd, err := commands.NewPlanRouteCommand(kernel.NewUUID(), courierID, "Afternoon run")
	require.NoError(t, err)
	return cmd
}

func TestPlanRouteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driver := testLocatedCourier(t, courier.TransportBike, 50.4501, 30.5234)
	cmd := planCmd(t, driver.ID())

	first := testNewOrder(t, kernel.NewUUID())
	require.NoError(t, first.SetLocation(testPoint(t, 50.4600, 30.5234)))
	second := testNewOrder(t, kernel.NewUUID())
	require.NoError(t, second.SetLocation(testPoint(t, 50.4800, 30.5234)))

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.couriers.On("Get", ctx, driver.ID()).Return(driver, nil).Once()
	uow.orders.On("GetAllNewForCourierPlanning", ctx, driver.ID()).
		Return([]*order.Order{second, first}, nil).Once()
	uow.routes.On("GetActiveByCourierID", ctx, driver.ID()).
		Return(nil, errs.NewObjectNotFoundError("courierID", driver.ID())).Once()

	var planned *route.Route
	uow.routes.On("Add", ctx, mock.AnythingOfType("*route.Route")).
		Run(func(args mock.Arguments) { planned = args.Get(1).(*route.Route) }).
		Return(nil).Once()

	provider := new(MockRouteProvider)
	provider.On("EstimateRoute", ctx, mock.Anything, mock.Anything, "cycling-regular").
		Return(ports.RouteEstimate{DistanceKm: 1.5, Duration: 6 * time.Minute}, nil).Twice()

	handler := commands.NewPlanRouteCommandHandler(routePlanningUoWFactory{uow}, provider)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, planned)
	assert.Equal(t, route.StatusPlanned, planned.Status())
	require.Len(t, planned.Stops(), 2)
	// Nearest first: the closer order comes before the farther one.
	assert.True(t, first.ID().IsEqual(planned.Stops()[0].OrderID()))
	assert.True(t, second.ID().IsEqual(planned.Stops()[1].OrderID()))
	assert.InDelta(t, 3.0, planned.DistanceKm(), 0.001)
	// Two provider legs plus two service stops.
	assert.Equal(t, 42*time.Minute, planned.Duration())
	provider.AssertExpectations(t)
}

func TestPlanRouteCommandHandler_Handle_ProviderDownFallsBack(t *testing.T) {
	ctx := t.Context()
	driver := testLocatedCourier(t, courier.TransportBike, 50.4501, 30.5234)
	cmd := planCmd(t, driver.ID())

	ord := testNewOrder(t, kernel.NewUUID())
	require.NoError(t, ord.SetLocation(testPoint(t, 50.4600, 30.5234)))

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.couriers.On("Get", ctx, driver.ID()).Return(driver, nil).Once()
	uow.orders.On("GetAllNewForCourierPlanning", ctx, driver.ID()).
		Return([]*order.Order{ord}, nil).Once()
	uow.routes.On("GetActiveByCourierID", ctx, driver.ID()).
		Return(nil, errs.NewObjectNotFoundError("courierID", driver.ID())).Once()

	var planned *route.Route
	uow.routes.On("Add", ctx, mock.AnythingOfType("*route.Route")).
		Run(func(args mock.Arguments) { planned = args.Get(1).(*route.Route) }).
		Return(nil).Once()

	provider := new(MockRouteProvider)
	provider.On("EstimateRoute", ctx, mock.Anything, mock.Anything, "cycling-regular").
		Return(ports.RouteEstimate{}, errors.New("all providers down")).Once()

	handler := commands.NewPlanRouteCommandHandler(routePlanningUoWFactory{uow}, provider)

	require.NoError(t, handler.Handle(ctx, cmd))
	require.NotNil(t, planned)
	assert.Greater(t, planned.DistanceKm(), 0.0)
	assert.Greater(t, planned.Duration(), time.Duration(0))
	assert.Empty(t, planned.Geometry())
}

func TestPlanRouteCommandHandler_Handle_ReplacesPreviousRoute(t *testing.T) {
	ctx := t.Context()
	driver := testLocatedCourier(t, courier.TransportCar, 50.4501, 30.5234)
	cmd := planCmd(t, driver.ID())

	ord := testNewOrder(t, kernel.NewUUID())

	stop, err := route.NewStop(kernel.NewUUID(), 0, testPoint(t, 50.4600, 30.5234), nil)
	require.NoError(t, err)
	previous, err := route.NewRoute(kernel.NewUUID(), driver.ID(), "", []route.Stop{stop},
		1.2, 20*time.Minute, nil, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.couriers.On("Get", ctx, driver.ID()).Return(driver, nil).Once()
	uow.orders.On("GetAllNewForCourierPlanning", ctx, driver.ID()).
		Return([]*order.Order{ord}, nil).Once()
	uow.routes.On("GetActiveByCourierID", ctx, driver.ID()).Return(previous, nil).Once()
	uow.routes.On("Update", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once()
	uow.routes.On("Add", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once()

	provider := new(MockRouteProvider)
	provider.On("EstimateRoute", ctx, mock.Anything, mock.Anything, "driving-car").
		Return(ports.RouteEstimate{DistanceKm: 2, Duration: 5 * time.Minute}, nil).Once()

	handler := commands.NewPlanRouteCommandHandler(routePlanningUoWFactory{uow}, provider)

	require.NoError(t, handler.Handle(ctx, cmd))
	assert.Equal(t, route.StatusCancelled, previous.Status())
}

func TestPlanRouteCommandHandler_Handle_NothingToPlan(t *testing.T) {
	ctx := t.Context()
	driver := testLocatedCourier(t, courier.TransportBike, 50.4501, 30.5234)
	cmd := planCmd(t, driver.ID())

	uow := NewMockUoW()
	uow.expectTx(ctx, false)
	uow.couriers.On("Get", ctx, driver.ID()).Return(driver, nil).Once()
	uow.orders.On("GetAllNewForCourierPlanning", ctx, driver.ID()).
		Return([]*order.Order{}, nil).Once()

	handler := commands.NewPlanRouteCommandHandler(routePlanningUoWFactory{uow}, new(MockRouteProvider))

	assert.ErrorIs(t, handler.Handle(ctx, cmd), commands.ErrNothingToPlan)
}

func TestPlanRouteCommandHandler_Handle_NoCourierLocation(t *testing.T) {
	ctx := t.Context()
	driver := testCourier(t, courier.TransportBike)
	cmd := planCmd(t, driver.ID())

	uow := NewMockUoW()
	uow.expectTx(ctx, false)
	uow.couriers.On("Get", ctx, driver.ID()).Return(driver, nil).Once()

	handler := commands.NewPlanRouteCommandHandler(routePlanningUoWFactory{uow}, new(MockRouteProvider))

	assert.ErrorIs(t, handler.Handle(ctx, cmd), commands.ErrCourierLocationUnknown)
}
