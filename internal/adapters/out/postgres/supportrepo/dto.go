// Package supportrepo provides data transfer objects and mapping functions
// for the support chat history.
package supportrepo

import (
	"time"

	"github.com/google/uuid"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/support"
)

// MessageDTO represents one recorded support exchange. ClientID is NULL for
// anonymous chats.
type MessageDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index"`
	Question  string     `gorm:"type:text;not null"`
	Reply     string     `gorm:"type:text;not null"`
	Source    string     `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time  `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for support messages.
func (MessageDTO) TableName() string {
	return "support_messages"
}

// fromDomain converts a support exchange to its database representation.
func fromDomain(message *support.Message) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID().Bytes(),
		Question:  message.Question(),
		Reply:     message.Reply(),
		Source:    message.Source().String(),
		CreatedAt: message.CreatedAt(),
	}

	if clientID := message.ClientID(); clientID != nil {
		raw := clientID.Bytes()
		dto.ClientID = &raw
	}

	return dto
}

// toDomain converts a database DTO to a support exchange.
func toDomain(dto MessageDTO) (*support.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var clientID *kernel.UUID
	if dto.ClientID != nil {
		asker, idErr := kernel.UUIDFromBytes((*dto.ClientID)[:])
		if idErr != nil {
			return nil, idErr
		}
		clientID = &asker
	}

	source, err := support.SourceFromString(dto.Source)
	if err != nil {
		return nil, err
	}

	return support.RestoreMessage(id, clientID, dto.Question, dto.Reply, source, dto.CreatedAt)
}
