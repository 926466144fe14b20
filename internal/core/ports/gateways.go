package ports

import (
	"context"
	"time"

	"crm/internal/core/domain/model/kernel"
)

// Geocoder resolves free-text addresses to coordinates and back.
type Geocoder interface {
	// Geocode resolves an address to a point. Returns
	// errs.ObjectNotFoundError when the address cannot be resolved.
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)

	// ReverseGeocode resolves a point to the nearest display address.
	ReverseGeocode(ctx context.Context, point kernel.GeoPoint) (string, error)
}

// RouteEstimate is the road-network result for a single origin/destination
// pair.
type RouteEstimate struct {
	DistanceKm float64
	Duration   time.Duration
	Geometry   []kernel.GeoPoint
}

// RouteProvider computes road-network distances and travel times. An
// implementation may fall back to straight-line estimates when no routing
// backend is reachable; callers cannot tell and should not care.
type RouteProvider interface {
	// EstimateRoute computes the driving route between two points for the
	// given transport profile ("driving-car", "cycling-regular", ...).
	EstimateRoute(ctx context.Context, from, to kernel.GeoPoint, profile string) (RouteEstimate, error)
}

// ChatTurn is one prior exchange handed to the language model as context.
type ChatTurn struct {
	Question string
	Reply    string
}

// ChatProvider produces support chat replies.
type ChatProvider interface {
	// Reply answers the question given the recent conversation history.
	Reply(ctx context.Context, question string, history []ChatTurn) (string, error)
}

// Notification is an outgoing message to a client or courier. Notifications
// travel through a queue so that a slow mail server never blocks a command.
type Notification struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// NotificationPublisher enqueues notifications for asynchronous delivery.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification Notification) error
}

// CourierPosition is the live position entry kept for the dispatch hot path.
type CourierPosition struct {
	Point      kernel.GeoPoint
	RecordedAt time.Time
}

// LocationCache holds the latest courier positions with a short TTL so that
// dispatch and monitoring read them without hitting the ping table.
type LocationCache interface {
	// SetPosition stores the courier's latest position.
	SetPosition(ctx context.Context, courierID kernel.UUID, position CourierPosition) error

	// GetPosition retrieves the courier's latest position. Returns
	// errs.ObjectNotFoundError when expired or never stored.
	GetPosition(ctx context.Context, courierID kernel.UUID) (CourierPosition, error)
}
