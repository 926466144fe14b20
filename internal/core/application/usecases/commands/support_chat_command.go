package commands

import (
	"errors"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var (
	ErrSupportChatCommandIsNotConstructed = errors.New(
		"SupportChatCommand must be created via NewSupportChatCommand constructor",
	)
	ErrQuestionIsRequired = errors.New("question is required")
)

// SupportChatCommand carries one support question. The client reference is
// optional; anonymous visitors may ask too.
type SupportChatCommand struct { //nolint:recvcheck //using for validation
	clientID *kernel.UUID
	question string

	guard guard.ConstructorGuard
}

// NewSupportChatCommand creates a command carrying a support question.
func NewSupportChatCommand(clientID *kernel.UUID, question string) (SupportChatCommand, error) {
	command := SupportChatCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setClientID(clientID),
		command.setQuestion(question),
	); err != nil {
		return SupportChatCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SupportChatCommand) Validate() error {
	return c.guard.Validate(ErrSupportChatCommandIsNotConstructed)
}

// ClientID returns the asking client's identifier, nil for anonymous chats.
func (c SupportChatCommand) ClientID() *kernel.UUID {
	return c.clientID
}

// Question returns the client's question.
func (c SupportChatCommand) Question() string {
	return c.question
}

func (c *SupportChatCommand) setClientID(clientID *kernel.UUID) error {
	if clientID == nil {
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}
	c.clientID = clientID
	return nil
}

func (c *SupportChatCommand) setQuestion(question string) error {
	if question == "" {
		return ErrQuestionIsRequired
	}
	c.question = question
	return nil
}
