package ports

import (
	"context"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/support"
)

// SupportRepository defines the persistence contract for the support chat
// history.
type SupportRepository interface {
	// Add appends an exchange to the chat history.
	Add(ctx context.Context, message *support.Message) error

	// GetHistory retrieves the client's most recent exchanges, newest
	// first, capped at limit.
	GetHistory(ctx context.Context, clientID kernel.UUID, limit int) ([]*support.Message, error)
}
