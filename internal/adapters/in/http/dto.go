package http

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// Error is the envelope for all non-2xx responses.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateClientRequest registers a new client.
type CreateClientRequest struct {
	Name    string       `json:"name"`
	Phone   string       `json:"phone"`
	Email   *types.Email `json:"email,omitempty"`
	Address string       `json:"address,omitempty"`
}

// CreateClientResponse carries the identifier of the registered client.
type CreateClientResponse struct {
	ID string `json:"id"`
}

// CreateCourierRequest registers a new courier.
type CreateCourierRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Transport string `json:"transport"`
}

// CreateCourierResponse carries the identifier of the registered courier.
type CreateCourierResponse struct {
	ID string `json:"id"`
}

// CreateOrderRequest places a new order for an existing client.
type CreateOrderRequest struct {
	ClientID      string `json:"client_id"`
	Product       string `json:"product"`
	Quantity      int    `json:"quantity"`
	Address       string `json:"address"`
	Priority      string `json:"priority,omitempty"`
	BasePrice     int64  `json:"base_price"`
	DeliveryFee   int64  `json:"delivery_fee"`
	Discount      int64  `json:"discount"`
	Notes         string `json:"notes,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

// CreateOrderResponse carries the identifier of the placed order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// ChangeOrderStatusRequest moves an order along its lifecycle.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// GeoPointDTO is a coordinate pair in responses.
type GeoPointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CourierResponse is one courier in the roster listing.
type CourierResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	Transport string       `json:"transport"`
	Available bool         `json:"available"`
	Location  *GeoPointDTO `json:"location,omitempty"`
	LocatedAt *time.Time   `json:"located_at,omitempty"`
}

// OrderResponse is one order in the undelivered listing.
type OrderResponse struct {
	ID        string       `json:"id"`
	ClientID  string       `json:"client_id"`
	CourierID *string      `json:"courier_id,omitempty"`
	Product   string       `json:"product"`
	Quantity  int          `json:"quantity"`
	Address   string       `json:"address"`
	Status    string       `json:"status"`
	Priority  string       `json:"priority"`
	Location  *GeoPointDTO `json:"location,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// CourierLocationRequest is a GPS push from a courier device.
type CourierLocationRequest struct {
	CourierID  string   `json:"courier_id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	AccuracyM  *float64 `json:"accuracy_m,omitempty"`
	SpeedKmh   *float64 `json:"speed_kmh,omitempty"`
	BearingDeg *float64 `json:"bearing_deg,omitempty"`
	RecordedAt string   `json:"recorded_at,omitempty"`
}

// TrackPointResponse is one recorded GPS fix of a courier's trace.
type TrackPointResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	AccuracyM  *float64  `json:"accuracy_m,omitempty"`
	SpeedKmh   *float64  `json:"speed_kmh,omitempty"`
	BearingDeg *float64  `json:"bearing_deg,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// GeocodeResponse is the geocoding passthrough result.
type GeocodeResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlanRouteRequest plans a delivery route for a courier.
type PlanRouteRequest struct {
	CourierID string `json:"courier_id"`
	Name      string `json:"name,omitempty"`
}

// PlanRouteResponse carries the identifier of the planned route.
type PlanRouteResponse struct {
	ID string `json:"id"`
}

// RouteStopResponse is one delivery stop of a route in visiting order.
type RouteStopResponse struct {
	OrderID   string     `json:"order_id"`
	Sequence  int        `json:"sequence"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	ETA       *time.Time `json:"eta,omitempty"`
}

// RouteResponse is the route detail view.
type RouteResponse struct {
	ID              string              `json:"id"`
	CourierID       string              `json:"courier_id"`
	Name            string              `json:"name,omitempty"`
	Status          string              `json:"status"`
	DistanceKm      float64             `json:"distance_km"`
	DurationSeconds int64               `json:"duration_seconds"`
	CreatedAt       time.Time           `json:"created_at"`
	StartedAt       *time.Time          `json:"started_at,omitempty"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`
	Stops           []RouteStopResponse `json:"stops"`
}

// PaymentWebhookRequest is the payment gateway callback payload.
type PaymentWebhookRequest struct {
	OrderID       string `json:"order_id,omitempty"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// PaymentWebhookResponse acknowledges a gateway callback.
type PaymentWebhookResponse struct {
	Status string `json:"status"`
}

// CashPaymentRequest settles a cash-on-delivery payment.
type CashPaymentRequest struct {
	OrderID       string `json:"order_id"`
	ReceivedMinor int64  `json:"received_minor"`
}

// SupportChatRequest is a support question, optionally tied to a client.
type SupportChatRequest struct {
	ClientID string `json:"client_id,omitempty"`
	Question string `json:"question"`
}

// SupportChatResponse carries the produced reply.
type SupportChatResponse struct {
	Reply string `json:"reply"`
}
