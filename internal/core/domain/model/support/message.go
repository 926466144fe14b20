// Package support holds the support chat history. Each message pairs a
// client question with the reply that was produced for it, either by the
// language model or by the static fallback used when the model is down.
package support

import (
	"errors"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// Domain errors for support operations.
var (
	// ErrQuestionIsRequired is returned when attempting to record a message without a question.
	ErrQuestionIsRequired = errs.NewValueIsRequiredError("question")
	// ErrMessageIsNotConstructed is returned when using an improperly initialized Message.
	ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")
)

// Source identifies what produced the reply.
type Source int

const (
	// SourceUnknown is the zero value and is never valid.
	SourceUnknown Source = iota
	// SourceModel is a reply generated by the language model.
	SourceModel
	// SourceFallback is the static reply used when the model is unreachable.
	SourceFallback
)

const (
	sourceUnknownName  = "unknown"
	sourceModelName    = "model"
	sourceFallbackName = "fallback"
)

// SourceFromString parses a source name as stored in the database.
func SourceFromString(name string) (Source, error) {
	switch name {
	case sourceModelName:
		return SourceModel, nil
	case sourceFallbackName:
		return SourceFallback, nil
	default:
		return SourceUnknown, errs.NewValueIsInvalidError("source")
	}
}

// Validate checks that the source is one of the known reply origins.
func (s Source) Validate() error {
	switch s {
	case SourceModel, SourceFallback:
		return nil
	case SourceUnknown:
		return errs.NewValueIsRequiredError("source")
	default:
		return errs.NewValueIsInvalidError("source")
	}
}

// String returns the canonical name of the source.
func (s Source) String() string {
	switch s {
	case SourceModel:
		return sourceModelName
	case SourceFallback:
		return sourceFallbackName
	default:
		return sourceUnknownName
	}
}

// Message is one question/reply exchange in the support chat. The client
// reference is optional because anonymous visitors may use the chat too.
type Message struct {
	id        kernel.UUID
	clientID  *kernel.UUID
	question  string
	reply     string
	source    Source
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewMessage records a support exchange.
func NewMessage(
	id kernel.UUID,
	clientID *kernel.UUID,
	question string,
	reply string,
	source Source,
	createdAt time.Time,
) (*Message, error) {
	message := &Message{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		message.setID(id),
		message.setClientID(clientID),
		message.setQuestion(question),
		message.setSource(source),
		message.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	message.reply = reply
	return message, nil
}

// RestoreMessage reconstructs a support exchange from persistence.
func RestoreMessage(
	id kernel.UUID,
	clientID *kernel.UUID,
	question string,
	reply string,
	source Source,
	createdAt time.Time,
) (*Message, error) {
	return NewMessage(id, clientID, question, reply, source, createdAt)
}

// Validate checks that the message was created through a constructor.
func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

// ID returns the message's unique identifier.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// ClientID returns the asking client's identifier, nil for anonymous chats.
func (m *Message) ClientID() *kernel.UUID {
	return m.clientID
}

// Question returns the client's question.
func (m *Message) Question() string {
	return m.question
}

// Reply returns the produced answer.
func (m *Message) Reply() string {
	return m.reply
}

// Source returns what produced the reply.
func (m *Message) Source() Source {
	return m.source
}

// CreatedAt returns when the exchange happened.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Message) setClientID(clientID *kernel.UUID) error {
	if clientID == nil {
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}
	m.clientID = clientID
	return nil
}

func (m *Message) setQuestion(question string) error {
	if question == "" {
		return ErrQuestionIsRequired
	}
	m.question = question
	return nil
}

func (m *Message) setSource(source Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	m.source = source
	return nil
}

func (m *Message) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	m.createdAt = createdAt
	return nil
}
