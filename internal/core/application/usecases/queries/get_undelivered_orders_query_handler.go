package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
)

// GetUndeliveredOrdersQueryHandler retrieves orders pending delivery from the
// database. Filters out delivered and cancelled orders to provide active
// workload visibility.
type GetUndeliveredOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUndeliveredOrdersQueryHandler creates a handler for pending order queries.
// Requires a GORM database connection for query execution.
func NewGetUndeliveredOrdersQueryHandler(db *gorm.DB) GetUndeliveredOrdersQueryHandler {
	return GetUndeliveredOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all undelivered orders.
// Results are sorted oldest first so the longest-waiting orders surface at
// the top of dashboards.
func (h GetUndeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUndeliveredOrdersQuery,
) ([]GetUndeliveredOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUndeliveredOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			courier_id,
			product,
			quantity,
			address,
			status,
			priority,
			latitude,
			longitude,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, order.StatusDelivered.String(), order.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUndeliveredOrdersQueryResponse
		var id, clientID uuid.UUID
		var courierID uuid.NullUUID
		var latitude, longitude sql.NullFloat64

		err = rows.Scan(
			&id,
			&clientID,
			&courierID,
			&resp.Product,
			&resp.Quantity,
			&resp.Address,
			&resp.Status,
			&resp.Priority,
			&latitude,
			&longitude,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
			return nil, err
		}
		if courierID.Valid {
			assignee, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &assignee
		}
		if latitude.Valid && longitude.Valid {
			point, pointErr := kernel.NewGeoPoint(latitude.Float64, longitude.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			resp.Location = &point
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
