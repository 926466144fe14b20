// Package clientrepo provides data transfer objects and mapping functions
// for client persistence. It implements the repository pattern for the
// client aggregate, converting between domain entities and database rows.
package clientrepo

import (
	"github.com/google/uuid"

	"crm/internal/core/domain/model/client"
	"crm/internal/core/domain/model/kernel"
)

// ClientDTO represents the database structure for persisting client
// aggregates. Latitude and longitude are nullable: they stay empty until
// the address has been geocoded.
type ClientDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Email     string    `gorm:"type:varchar(255)"`
	Address   string    `gorm:"type:varchar(512)"`
	Latitude  *float64  `gorm:"type:double precision"`
	Longitude *float64  `gorm:"type:double precision"`
}

// TableName specifies the database table name for client entities.
func (ClientDTO) TableName() string {
	return "clients"
}

// fromDomain converts a client domain aggregate to its database
// representation.
func fromDomain(aggregate *client.Client) ClientDTO {
	dto := ClientDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Phone:   aggregate.Phone(),
		Email:   aggregate.Email(),
		Address: aggregate.Address(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain converts a database DTO to a client domain aggregate.
func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	return client.RestoreClient(id, dto.Name, dto.Phone, dto.Email, dto.Address, location)
}
