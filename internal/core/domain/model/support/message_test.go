package support_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/support"
)

func TestNewMessage(t *testing.T) {
	clientID := kernel.NewUUID()
	createdAt := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

	message, err := support.NewMessage(kernel.NewUUID(), &clientID,
		"Where is my order?", "Your courier is five minutes away.",
		support.SourceModel, createdAt)

	require.NoError(t, err)
	assert.NoError(t, message.Validate())
	assert.Equal(t, "Where is my order?", message.Question())
	assert.Equal(t, support.SourceModel, message.Source())
	require.NotNil(t, message.ClientID())
	assert.True(t, clientID.IsEqual(*message.ClientID()))
}

func TestNewMessage_AnonymousClient(t *testing.T) {
	message, err := support.NewMessage(kernel.NewUUID(), nil,
		"Do you deliver on Sundays?", "Yes, every day.",
		support.SourceFallback, time.Now())

	require.NoError(t, err)
	assert.Nil(t, message.ClientID())
}

func TestNewMessage_EmptyQuestion(t *testing.T) {
	_, err := support.NewMessage(kernel.NewUUID(), nil, "", "reply",
		support.SourceModel, time.Now())

	assert.ErrorIs(t, err, support.ErrQuestionIsRequired)
}

func TestSourceFromString(t *testing.T) {
	for _, source := range []support.Source{support.SourceModel, support.SourceFallback} {
		parsed, err := support.SourceFromString(source.String())
		require.NoError(t, err)
		assert.Equal(t, source, parsed)
	}

	_, err := support.SourceFromString("oracle")
	assert.Error(t, err)
}
