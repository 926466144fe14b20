// Package pingrepo provides data transfer objects and mapping functions for
// the append-only GPS track.
package pingrepo

import (
	"time"

	"github.com/google/uuid"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/tracking"
)

// PingDTO represents the database structure for one GPS fix. Rows are only
// inserted and queried, never updated.
type PingDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index:idx_courier_pings_courier_recorded,priority:1"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	AccuracyM  *float64  `gorm:"type:double precision"`
	SpeedKmh   *float64  `gorm:"type:double precision"`
	BearingDeg *float64  `gorm:"type:double precision"`
	RecordedAt time.Time `gorm:"type:timestamptz;not null;index:idx_courier_pings_courier_recorded,priority:2"`
}

// TableName specifies the database table name for ping entities.
func (PingDTO) TableName() string {
	return "courier_pings"
}

// fromDomain converts a ping to its database representation.
func fromDomain(ping *tracking.Ping) PingDTO {
	return PingDTO{
		ID:         ping.ID().Bytes(),
		CourierID:  ping.CourierID().Bytes(),
		Latitude:   ping.Point().Latitude(),
		Longitude:  ping.Point().Longitude(),
		AccuracyM:  ping.AccuracyM(),
		SpeedKmh:   ping.SpeedKmh(),
		BearingDeg: ping.BearingDeg(),
		RecordedAt: ping.RecordedAt(),
	}
}

// toDomain converts a database DTO to a ping.
func toDomain(dto PingDTO) (*tracking.Ping, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestorePing(id, courierID, point,
		dto.AccuracyM, dto.SpeedKmh, dto.BearingDeg, dto.RecordedAt)
}
