package ports

import (
	"context"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/tracking"
)

// PingRepository defines the persistence contract for the GPS track.
// The track is append-only: pings are added and queried, never changed.
type PingRepository interface {
	// Add appends a GPS fix to the courier's track.
	Add(ctx context.Context, ping *tracking.Ping) error

	// GetTrack retrieves the courier's fixes within the time window,
	// oldest first.
	GetTrack(ctx context.Context, courierID kernel.UUID, from, to time.Time) ([]*tracking.Ping, error)
}
