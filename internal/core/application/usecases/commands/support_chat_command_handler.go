package commands

import (
	"context"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/support"
	"crm/internal/core/ports"
)

// FallbackReply is returned when the language model is unreachable. The
// exchange is still recorded so that operators can follow up.
const FallbackReply = "Our assistant is temporarily unavailable. " +
	"Please call our support line and we will help you right away."

// historyLimit caps how many prior exchanges are handed to the model as
// conversation context.
const historyLimit = 6

// SupportChatCommandHandler answers support questions through the language
// model, handing it the client's recent history for context. Model outages
// degrade to a static reply instead of an error: the client always gets an
// answer, and the exchange is recorded either way.
type SupportChatCommandHandler struct {
	uowFactory SupportUoWFactory
	chat       ports.ChatProvider
}

// NewSupportChatCommandHandler creates a handler for support questions.
func NewSupportChatCommandHandler(uowFactory SupportUoWFactory, chat ports.ChatProvider) SupportChatCommandHandler {
	return SupportChatCommandHandler{
		uowFactory: uowFactory,
		chat:       chat,
	}
}

// Handle answers the question and records the exchange. Returns the reply
// text.
func (h SupportChatCommandHandler) Handle(ctx context.Context, cmd SupportChatCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	supportRepo := uow.SupportRepository()

	var history []ports.ChatTurn
	if cmd.ClientID() != nil {
		messages, err := supportRepo.GetHistory(ctx, *cmd.ClientID(), historyLimit)
		if err != nil {
			return "", err
		}
		// History arrives newest first; the model wants chronological order.
		for i := len(messages) - 1; i >= 0; i-- {
			history = append(history, ports.ChatTurn{
				Question: messages[i].Question(),
				Reply:    messages[i].Reply(),
			})
		}
	}

	reply, source := h.produceReply(ctx, cmd.Question(), history)

	message, err := support.NewMessage(kernel.NewUUID(), cmd.ClientID(), cmd.Question(), reply, source, time.Now())
	if err != nil {
		return "", err
	}

	if err = supportRepo.Add(ctx, message); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return reply, nil
}

func (h SupportChatCommandHandler) produceReply(
	ctx context.Context,
	question string,
	history []ports.ChatTurn,
) (string, support.Source) {
	reply, err := h.chat.Reply(ctx, question, history)
	if err != nil || reply == "" {
		return FallbackReply, support.SourceFallback
	}
	return reply, support.SourceModel
}
