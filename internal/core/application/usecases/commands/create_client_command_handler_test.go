package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm/internal/core/application/usecases/commands"
	"crm/internal/core/domain/model/client"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
)

func TestCreateClientCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), "Olena", "+380501112233",
		"olena@example.com", "Khreschatyk 1, Kyiv")
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx, true)
	uow.clients.On("GetByPhone", ctx, "+380501112233").
		Return(nil, errs.NewObjectNotFoundError("phone", "+380501112233")).Once()

	var created *client.Client
	uow.clients.On("Add", ctx, mock.AnythingOfType("*client.Client")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*client.Client) }).
		Return(nil).Once()

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "Khreschatyk 1, Kyiv").Return(testPoint(t, 50.4501, 30.5234), nil).Once()

	handler := commands.NewCreateClientCommandHandler(clientUoWFactory{uow}, geocoder)

	require.NoError(t, handler.Handle(ctx, cmd))
	require.NotNil(t, created)
	assert.Equal(t, "Olena", created.Name())
	require.NotNil(t, created.Location())
	uow.AssertExpectations(t)
	uow.clients.AssertExpectations(t)
}

func TestCreateClientCommandHandler_Handle_DuplicatePhone(t *testing.T) {
	ctx := t.Context()
	existing := testClient(t, "")
	cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), "Someone Else", existing.Phone(), "", "")
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.expectTx(ctx, false)
	uow.clients.On("GetByPhone", ctx, existing.Phone()).Return(existing, nil).Once()

	handler := commands.NewCreateClientCommandHandler(clientUoWFactory{uow}, new(MockGeocoder))

	assert.ErrorIs(t, handler.Handle(ctx, cmd), commands.ErrClientAlreadyExists)
	uow.clients.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func TestNewCreateClientCommand_Invalid(t *testing.T) {
	_, err := commands.NewCreateClientCommand(kernel.NewUUID(), "", "", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrClientNameIsRequired)
	assert.ErrorIs(t, err, commands.ErrClientPhoneIsRequired)
}
