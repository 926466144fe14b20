// Package ports defines repository and gateway interfaces for the delivery
// CRM domain. These interfaces establish contracts between the domain layer
// and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"crm/internal/core/domain/model/client"
	"crm/internal/core/domain/model/kernel"
)

// ClientRepository defines the persistence contract for client aggregates.
type ClientRepository interface {
	// Add persists a new client aggregate to storage.
	Add(ctx context.Context, aggregate *client.Client) error

	// Update persists changes to an existing client aggregate.
	Update(ctx context.Context, aggregate *client.Client) error

	// Get retrieves a client aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)

	// GetByPhone retrieves a client by phone number, the business key used
	// for deduplication. Returns errs.ObjectNotFoundError when absent.
	GetByPhone(ctx context.Context, phone string) (*client.Client, error)
}
