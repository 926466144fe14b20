package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
)

// GetRouteQueryHandler retrieves a single route and its stops from the
// database.
type GetRouteQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteQueryHandler creates a handler for route detail queries.
// Requires a GORM database connection for query execution.
func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

// Handle executes the query and returns the route with stops in visiting
// order. Returns errs.ErrObjectNotFound when the route does not exist.
func (h GetRouteQueryHandler) Handle(
	ctx context.Context,
	query GetRouteQuery,
) (GetRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteQueryResponse{}, err
	}

	resp, err := h.readRoute(ctx, query.RouteID())
	if err != nil {
		return GetRouteQueryResponse{}, err
	}

	if resp.Stops, err = h.readStops(ctx, query.RouteID()); err != nil {
		return GetRouteQueryResponse{}, err
	}

	return resp, nil
}

func (h GetRouteQueryHandler) readRoute(ctx context.Context, routeID kernel.UUID) (GetRouteQueryResponse, error) {
	var resp GetRouteQueryResponse
	var id, courierID uuid.UUID
	var durationSeconds int64
	var startedAt, completedAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			name,
			status,
			distance_km,
			duration_seconds,
			created_at,
			started_at,
			completed_at
		FROM routes
		WHERE id = ?
	`, routeID.Bytes()).Row()

	err := row.Scan(
		&id,
		&courierID,
		&resp.Name,
		&resp.Status,
		&resp.DistanceKm,
		&durationSeconds,
		&resp.CreatedAt,
		&startedAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetRouteQueryResponse{}, errs.NewObjectNotFoundError("routeID", routeID)
	}
	if err != nil {
		return GetRouteQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetRouteQueryResponse{}, err
	}
	if resp.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
		return GetRouteQueryResponse{}, err
	}
	resp.Duration = time.Duration(durationSeconds) * time.Second
	resp.StartedAt = nullableTime(startedAt)
	resp.CompletedAt = nullableTime(completedAt)

	return resp, nil
}

func (h GetRouteQueryHandler) readStops(ctx context.Context, routeID kernel.UUID) ([]GetRouteQueryStop, error) {
	stops := make([]GetRouteQueryStop, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			sequence,
			latitude,
			longitude,
			eta
		FROM route_stops
		WHERE route_id = ?
		ORDER BY sequence
	`, routeID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stop GetRouteQueryStop
		var orderID uuid.UUID
		var latitude, longitude float64
		var eta sql.NullTime

		err = rows.Scan(
			&orderID,
			&stop.Sequence,
			&latitude,
			&longitude,
			&eta,
		)
		if err != nil {
			return nil, err
		}

		if stop.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if stop.Point, err = kernel.NewGeoPoint(latitude, longitude); err != nil {
			return nil, err
		}
		stop.ETA = nullableTime(eta)

		stops = append(stops, stop)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stops, nil
}
