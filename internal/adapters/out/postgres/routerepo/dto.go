// Package routerepo provides data transfer objects and mapping functions
// for route persistence. A route row owns its stops; the road geometry is
// kept as a jsonb array of [lat, lon] pairs.
package routerepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/route"
)

// RouteDTO represents the database structure for persisting route
// aggregates.
type RouteDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CourierID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(255)"`
	Status          string         `gorm:"type:varchar(32);not null;index"`
	DistanceKm      float64        `gorm:"type:double precision;not null"`
	DurationSeconds int64          `gorm:"type:bigint;not null"`
	Geometry        *string        `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"type:timestamptz;not null"`
	StartedAt       *time.Time     `gorm:"type:timestamptz"`
	CompletedAt     *time.Time     `gorm:"type:timestamptz"`
	Stops           []RouteStopDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for route entities.
func (RouteDTO) TableName() string {
	return "routes"
}

// RouteStopDTO represents one delivery stop of a route. The sequence starts
// at zero and follows the visiting order.
type RouteStopDTO struct {
	RouteID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Sequence  int        `gorm:"type:int;primaryKey;autoIncrement:false"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Latitude  float64    `gorm:"type:double precision;not null"`
	Longitude float64    `gorm:"type:double precision;not null"`
	ETA       *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for route stop entities.
func (RouteStopDTO) TableName() string {
	return "route_stops"
}

// fromDomain converts a route domain aggregate to its database
// representation.
func fromDomain(aggregate *route.Route) (RouteDTO, error) {
	routeID := aggregate.ID().Bytes()

	stops := make([]RouteStopDTO, 0, len(aggregate.Stops()))
	for _, stop := range aggregate.Stops() {
		stops = append(stops, RouteStopDTO{
			RouteID:   routeID,
			Sequence:  stop.Sequence(),
			OrderID:   stop.OrderID().Bytes(),
			Latitude:  stop.Point().Latitude(),
			Longitude: stop.Point().Longitude(),
			ETA:       stop.ETA(),
		})
	}

	geometry, err := marshalGeometry(aggregate.Geometry())
	if err != nil {
		return RouteDTO{}, err
	}

	return RouteDTO{
		ID:              routeID,
		CourierID:       aggregate.CourierID().Bytes(),
		Name:            aggregate.Name(),
		Status:          aggregate.Status().String(),
		DistanceKm:      aggregate.DistanceKm(),
		DurationSeconds: int64(aggregate.Duration().Seconds()),
		Geometry:        geometry,
		CreatedAt:       aggregate.CreatedAt(),
		StartedAt:       aggregate.StartedAt(),
		CompletedAt:     aggregate.CompletedAt(),
		Stops:           stops,
	}, nil
}

// toDomain converts a database DTO to a route domain aggregate.
func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := route.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	stops := make([]route.Stop, 0, len(dto.Stops))
	for _, stopDTO := range dto.Stops {
		stop, stopErr := stopToDomain(stopDTO)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	geometry, err := unmarshalGeometry(dto.Geometry)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(id, courierID, dto.Name, status, stops,
		dto.DistanceKm, time.Duration(dto.DurationSeconds)*time.Second,
		geometry, dto.CreatedAt, dto.StartedAt, dto.CompletedAt)
}

func stopToDomain(dto RouteStopDTO) (route.Stop, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return route.Stop{}, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return route.Stop{}, err
	}

	return route.NewStop(orderID, dto.Sequence, point, dto.ETA)
}

func marshalGeometry(points []kernel.GeoPoint) (*string, error) {
	if len(points) == 0 {
		return nil, nil //nolint:nilnil //absent geometry is stored as NULL
	}

	pairs := make([][2]float64, 0, len(points))
	for _, point := range points {
		pairs = append(pairs, [2]float64{point.Latitude(), point.Longitude()})
	}

	raw, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}

	encoded := string(raw)
	return &encoded, nil
}

func unmarshalGeometry(encoded *string) ([]kernel.GeoPoint, error) {
	if encoded == nil || *encoded == "" {
		return nil, nil
	}

	var pairs [][2]float64
	if err := json.Unmarshal([]byte(*encoded), &pairs); err != nil {
		return nil, err
	}

	points := make([]kernel.GeoPoint, 0, len(pairs))
	for _, pair := range pairs {
		point, err := kernel.NewGeoPoint(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}
