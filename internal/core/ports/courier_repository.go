package ports

import (
	"context"

	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll retrieves every registered courier.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAllAvailable retrieves couriers that are on shift. Dispatch uses
	// this as the candidate pool.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
