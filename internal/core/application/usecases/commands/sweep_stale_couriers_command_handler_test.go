package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm/internal/core/application/usecases/commands"
	"crm/internal/core/domain/model/courier"
	"crm/internal/pkg/errs"
)

func Test_SweepStaleCouriersCommand_InvalidThreshold(t *testing.T) {
	_, err := commands.NewSweepStaleCouriersCommand(0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewSweepStaleCouriersCommand(-time.Minute)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func Test_SweepStaleCouriersCommandHandler_TakesQuietCouriersOffShift(t *testing.T) {
	ctx := context.Background()

	stale := testCourier(t, courier.TransportBike)
	require.NoError(t, stale.UpdateLocation(testPoint(t, 50.4501, 30.5234), time.Now().Add(-2*time.Hour)))
	fresh := testLocatedCourier(t, courier.TransportCar, 50.4547, 30.5238)
	silent := testCourier(t, courier.TransportMotorcycle)

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.couriers.On("GetAllAvailable", ctx).
		Return([]*courier.Courier{stale, fresh, silent}, nil).Once()
	uow.couriers.On("Update", ctx, stale).Return(nil).Once()

	handler := commands.NewSweepStaleCouriersCommandHandler(courierUoWFactory{uow})
	cmd, err := commands.NewSweepStaleCouriersCommand(15 * time.Minute)
	require.NoError(t, err)

	swept, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, swept)
	assert.False(t, stale.IsAvailable())
	assert.True(t, fresh.IsAvailable())
	assert.True(t, silent.IsAvailable())
	uow.AssertExpectations(t)
	uow.couriers.AssertExpectations(t)
}

func Test_SweepStaleCouriersCommandHandler_NothingStale(t *testing.T) {
	ctx := context.Background()

	fresh := testLocatedCourier(t, courier.TransportCar, 50.4547, 30.5238)

	uow := NewMockUoW()
	uow.expectTx(ctx, false)
	uow.couriers.On("GetAllAvailable", ctx).
		Return([]*courier.Courier{fresh}, nil).Once()

	handler := commands.NewSweepStaleCouriersCommandHandler(courierUoWFactory{uow})
	cmd, err := commands.NewSweepStaleCouriersCommand(15 * time.Minute)
	require.NoError(t, err)

	swept, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, swept)
	uow.couriers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func Test_SweepStaleCouriersCommandHandler_RejectsUnconstructedCommand(t *testing.T) {
	handler := commands.NewSweepStaleCouriersCommandHandler(courierUoWFactory{NewMockUoW()})

	_, err := handler.Handle(context.Background(), commands.SweepStaleCouriersCommand{})

	assert.ErrorIs(t, err, commands.ErrSweepStaleCouriersCommandIsNotConstructed)
}
