package ports

import (
	"context"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
type RouteRepository interface {
	// Add persists a new route aggregate to storage.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route aggregate.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetActiveByCourierID retrieves the courier's current planned or active
	// route. Returns errs.ObjectNotFoundError when the courier has none.
	GetActiveByCourierID(ctx context.Context, courierID kernel.UUID) (*route.Route, error)
}
