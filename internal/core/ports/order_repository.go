package ports

import (
	"context"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstNew retrieves the oldest order still awaiting a courier,
	// urgent priorities first. Orders whose address has not been geocoded
	// are skipped: they cannot be ranked against couriers yet. Returns
	// errs.ObjectNotFoundError when the backlog is empty.
	GetFirstNew(ctx context.Context) (*order.Order, error)

	// GetAllNewWithoutLocation retrieves unassigned orders whose address has
	// not been geocoded yet, oldest first. Dispatch re-attempts geocoding for
	// these so that an intake-time geocoder outage does not strand them.
	GetAllNewWithoutLocation(ctx context.Context) ([]*order.Order, error)

	// GetAllUndelivered retrieves orders that have not reached a terminal
	// status, newest first.
	GetAllUndelivered(ctx context.Context) ([]*order.Order, error)

	// GetAllNewForCourierPlanning retrieves assigned orders for the given
	// courier that are not yet picked up. Route planning uses these as stops.
	GetAllNewForCourierPlanning(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)
}
