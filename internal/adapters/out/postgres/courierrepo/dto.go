// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"time"

	"github.com/google/uuid"

	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Location columns are nullable until the courier reports a
// first GPS fix.
type CourierDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Phone        string     `gorm:"type:varchar(32);not null"`
	Transport    string     `gorm:"type:varchar(32);not null"`
	Available    bool       `gorm:"not null"`
	Latitude     *float64   `gorm:"type:double precision"`
	Longitude    *float64   `gorm:"type:double precision"`
	LocatedAt    *time.Time `gorm:"type:timestamptz"`
	RegisteredAt time.Time  `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Phone:        aggregate.Phone(),
		Transport:    aggregate.Transport().String(),
		Available:    aggregate.IsAvailable(),
		LocatedAt:    aggregate.LocatedAt(),
		RegisteredAt: aggregate.RegisteredAt(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	transport, err := courier.TransportFromString(dto.Transport)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(id, dto.Name, dto.Phone, transport,
		dto.Available, location, dto.LocatedAt, dto.RegisteredAt)
}
