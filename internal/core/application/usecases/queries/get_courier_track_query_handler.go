package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"crm/internal/core/domain/model/kernel"
)

// GetCourierTrackQueryHandler retrieves courier GPS traces from the database.
type GetCourierTrackQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierTrackQueryHandler creates a handler for courier trace queries.
// Requires a GORM database connection for query execution.
func NewGetCourierTrackQueryHandler(db *gorm.DB) GetCourierTrackQueryHandler {
	return GetCourierTrackQueryHandler{db: db}
}

// Handle executes the query and returns the pings recorded inside the
// window, oldest first. An unknown courier yields an empty trace, not an
// error.
func (h GetCourierTrackQueryHandler) Handle(
	ctx context.Context,
	query GetCourierTrackQuery,
) ([]GetCourierTrackQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	track := make([]GetCourierTrackQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			latitude,
			longitude,
			accuracy_m,
			speed_kmh,
			bearing_deg,
			recorded_at
		FROM courier_pings
		WHERE courier_id = ?
		  AND recorded_at BETWEEN ? AND ?
		ORDER BY recorded_at
	`, query.CourierID().Bytes(), query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ping GetCourierTrackQueryResponse
		var latitude, longitude float64
		var accuracy, speed, bearing sql.NullFloat64

		err = rows.Scan(
			&latitude,
			&longitude,
			&accuracy,
			&speed,
			&bearing,
			&ping.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		if ping.Point, err = kernel.NewGeoPoint(latitude, longitude); err != nil {
			return nil, err
		}
		ping.AccuracyM = nullableFloat(accuracy)
		ping.SpeedKmh = nullableFloat(speed)
		ping.BearingDeg = nullableFloat(bearing)

		track = append(track, ping)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return track, nil
}

func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
