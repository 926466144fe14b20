// Package orderrepo provides data transfer objects and mapping functions
// for order persistence.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Money amounts are stored as integer minor units; the status
// and priority columns carry the canonical string names so the read side
// can query them without decoding.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID           *uuid.UUID `gorm:"type:uuid;index"`
	Product             string     `gorm:"type:varchar(255);not null"`
	Quantity            int        `gorm:"type:int;not null"`
	Address             string     `gorm:"type:varchar(512);not null"`
	Latitude            *float64   `gorm:"type:double precision"`
	Longitude           *float64   `gorm:"type:double precision"`
	Status              string     `gorm:"type:varchar(32);not null;index"`
	Priority            string     `gorm:"type:varchar(32);not null"`
	BasePrice           int64      `gorm:"type:bigint;not null"`
	DeliveryFee         int64      `gorm:"type:bigint;not null"`
	Discount            int64      `gorm:"type:bigint;not null"`
	Notes               string     `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"type:timestamptz;not null"`
	EstimatedDeliveryAt *time.Time `gorm:"type:timestamptz"`
	DeliveredAt         *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		ClientID:            aggregate.ClientID().Bytes(),
		Product:             aggregate.Product(),
		Quantity:            aggregate.Quantity(),
		Address:             aggregate.Address(),
		Status:              aggregate.Status().String(),
		Priority:            aggregate.Priority().String(),
		BasePrice:           aggregate.BasePrice().MinorUnits(),
		DeliveryFee:         aggregate.DeliveryFee().MinorUnits(),
		Discount:            aggregate.Discount().MinorUnits(),
		Notes:               aggregate.Notes(),
		CreatedAt:           aggregate.CreatedAt(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		DeliveredAt:         aggregate.DeliveredAt(),
	}

	if courierID := aggregate.CourierID(); courierID != nil {
		raw := courierID.Bytes()
		dto.CourierID = &raw
	}
	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		assignee, idErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if idErr != nil {
			return nil, idErr
		}
		courierID = &assignee
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := order.PriorityFromString(dto.Priority)
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

	basePrice, err := kernel.NewMoney(dto.BasePrice)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, clientID, courierID, dto.Product, dto.Quantity,
		dto.Address, location, status, priority, basePrice, deliveryFee, discount,
		dto.Notes, dto.CreatedAt, dto.EstimatedDeliveryAt, dto.DeliveredAt)
}
