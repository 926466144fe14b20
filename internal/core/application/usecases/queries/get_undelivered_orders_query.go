package queries

import (
	"errors"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/guard"
)

var ErrGetUndeliveredOrdersQueryIsNotConstructed = errors.New(
	"GetUndeliveredOrdersQuery must be created via NewGetUndeliveredOrdersQuery constructor",
)

// GetUndeliveredOrdersQuery retrieves the active delivery workload: every
// order that has not yet reached a terminal status.
type GetUndeliveredOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUndeliveredOrdersQuery creates a query to retrieve undelivered orders.
func NewGetUndeliveredOrdersQuery() GetUndeliveredOrdersQuery {
	return GetUndeliveredOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUndeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUndeliveredOrdersQueryIsNotConstructed)
}

// GetUndeliveredOrdersQueryResponse represents one undelivered order in the
// read model. CourierID is nil while the order is unassigned; Location is nil
// when the address could not be geocoded.
type GetUndeliveredOrdersQueryResponse struct {
	ID        kernel.UUID
	ClientID  kernel.UUID
	CourierID *kernel.UUID
	Product   string
	Quantity  int
	Address   string
	Status    string
	Priority  string
	Location  *kernel.GeoPoint
	CreatedAt time.Time
}
