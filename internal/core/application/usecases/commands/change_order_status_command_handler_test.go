package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm/internal/core/application/usecases/commands"
	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

func statusCmd(t *testing.T, orderID kernel.UUID, status string) commands.ChangeOrderStatusCommand {
	t.Helper()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	require.NoError(t, err)
	return cmd
}

func TestChangeOrderStatusCommandHandler_Handle_PickUp(t *testing.T) {
	ctx := t.Context()
	orderClient := testClient(t, "olena@example.com")
	assignee := testCourier(t, courier.TransportBike)
	testOrder := testNewOrder(t, orderClient.ID())
	require.NoError(t, testOrder.Assign(assignee.ID()))

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.orders.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(orderProgressUoWFactory{uow}, new(MockPublisher))
	err := handler.Handle(ctx, statusCmd(t, testOrder.ID(), "picked_up"))

	require.NoError(t, err)
	assert.Equal(t, order.StatusPickedUp, testOrder.Status())
	uow.couriers.AssertNotCalled(t, "Get", ctx, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_DeliveredReleasesCourierAndNotifies(t *testing.T) {
	ctx := t.Context()
	orderClient := testClient(t, "olena@example.com")
	assignee := testCourier(t, courier.TransportBike)
	assignee.SetAvailable(false)

	testOrder := testNewOrder(t, orderClient.ID())
	require.NoError(t, testOrder.Assign(assignee.ID()))
	require.NoError(t, testOrder.PickUp())
	require.NoError(t, testOrder.StartTransit())

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.orders.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.couriers.On("Get", ctx, assignee.ID()).Return(assignee, nil).Once()
	uow.couriers.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once()
	uow.clients.On("Get", ctx, orderClient.ID()).Return(orderClient, nil).Once()

	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Subject == "Order delivered"
	})).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(orderProgressUoWFactory{uow}, publisher)
	err := handler.Handle(ctx, statusCmd(t, testOrder.ID(), "delivered"))

	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, testOrder.Status())
	assert.NotNil(t, testOrder.DeliveredAt())
	assert.True(t, assignee.IsAvailable())
	publisher.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CancelReleasesCourier(t *testing.T) {
	ctx := t.Context()
	orderClient := testClient(t, "")
	assignee := testCourier(t, courier.TransportBike)
	assignee.SetAvailable(false)

	testOrder := testNewOrder(t, orderClient.ID())
	require.NoError(t, testOrder.Assign(assignee.ID()))

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.orders.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.couriers.On("Get", ctx, assignee.ID()).Return(assignee, nil).Once()
	uow.couriers.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once()

	publisher := new(MockPublisher)
	handler := commands.NewChangeOrderStatusCommandHandler(orderProgressUoWFactory{uow}, publisher)
	err := handler.Handle(ctx, statusCmd(t, testOrder.ID(), "cancelled"))

	require.NoError(t, err)
	assert.True(t, assignee.IsAvailable())
	publisher.AssertNotCalled(t, "Publish", ctx, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	testOrder := testNewOrder(t, kernel.NewUUID())

	uow := NewMockUoW()
	uow.expectTx(ctx, false)
	uow.orders.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(orderProgressUoWFactory{uow}, new(MockPublisher))
	err := handler.Handle(ctx, statusCmd(t, testOrder.ID(), "delivered"))

	require.Error(t, err)
	var transitionErr *order.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	uow.orders.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_OrderMissing(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	uow := NewMockUoW()
	uow.expectTx(ctx, false)
	uow.orders.On("Get", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(orderProgressUoWFactory{uow}, new(MockPublisher))
	err := handler.Handle(ctx, statusCmd(t, orderID, "cancelled"))

	assert.ErrorIs(t, err, commands.ErrOrderNotFound)
}
