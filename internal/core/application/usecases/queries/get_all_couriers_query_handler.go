package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/ports"
)

// GetAllCouriersQueryHandler retrieves the courier roster from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
// Live positions come from the location cache when present, since the
// couriers table only catches up on the next location push.
type GetAllCouriersQueryHandler struct {
	db        *gorm.DB
	positions ports.LocationCache
}

// NewGetAllCouriersQueryHandler creates a handler for courier roster queries.
// Requires a GORM database connection for query execution.
func NewGetAllCouriersQueryHandler(db *gorm.DB, positions ports.LocationCache) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db, positions: positions}
}

// Handle executes the query to retrieve all couriers.
// Returns a slice of courier read models sorted by name.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			transport,
			available,
			latitude,
			longitude,
			located_at
		FROM couriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courier GetAllCouriersQueryResponse
		var id uuid.UUID
		var latitude, longitude sql.NullFloat64
		var locatedAt sql.NullTime

		err = rows.Scan(
			&id,
			&courier.Name,
			&courier.Phone,
			&courier.Transport,
			&courier.Available,
			&latitude,
			&longitude,
			&locatedAt,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courier.ID = courierID

		if latitude.Valid && longitude.Valid {
			point, pointErr := kernel.NewGeoPoint(latitude.Float64, longitude.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			courier.Location = &point
		}
		courier.LocatedAt = nullableTime(locatedAt)

		if position, cacheErr := h.positions.GetPosition(ctx, courierID); cacheErr == nil {
			point := position.Point
			recordedAt := position.RecordedAt.UTC()
			courier.Location = &point
			courier.LocatedAt = &recordedAt
		}

		couriers = append(couriers, courier)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	at := t.Time.UTC()
	return &at
}
