// Package paymentrepo provides data transfer objects and mapping functions
// for payment persistence.
package paymentrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/payment"
)

// PaymentDTO represents the database structure for persisting payment
// aggregates. The raw gateway payload is kept verbatim as jsonb for audits
// and webhook debugging.
type PaymentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Method         string     `gorm:"type:varchar(32);not null"`
	Status         string     `gorm:"type:varchar(32);not null"`
	Amount         int64      `gorm:"type:bigint;not null"`
	CashReceived   *int64     `gorm:"type:bigint"`
	ChangeDue      *int64     `gorm:"type:bigint"`
	TransactionID  string     `gorm:"type:varchar(128);index"`
	GatewayPayload *string    `gorm:"type:jsonb"`
	CreatedAt      time.Time  `gorm:"type:timestamptz;not null"`
	ProcessedAt    *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment domain aggregate to its database
// representation.
func fromDomain(aggregate *payment.Payment) PaymentDTO {
	dto := PaymentDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		Method:        aggregate.Method().String(),
		Status:        aggregate.Status().String(),
		Amount:        aggregate.Amount().MinorUnits(),
		TransactionID: aggregate.TransactionID(),
		CreatedAt:     aggregate.CreatedAt(),
		ProcessedAt:   aggregate.ProcessedAt(),
	}

	if received := aggregate.CashReceived(); received != nil {
		minor := received.MinorUnits()
		dto.CashReceived = &minor
	}
	if change := aggregate.Change(); change != nil {
		minor := change.MinorUnits()
		dto.ChangeDue = &minor
	}
	if payload := aggregate.GatewayPayload(); len(payload) > 0 {
		raw := string(payload)
		dto.GatewayPayload = &raw
	}

	return dto
}

// toDomain converts a database DTO to a payment domain aggregate.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	method, err := payment.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}
	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	var cashReceived, change *kernel.Money
	if dto.CashReceived != nil {
		money, moneyErr := kernel.NewMoney(*dto.CashReceived)
		if moneyErr != nil {
			return nil, moneyErr
		}
		cashReceived = &money
	}
	if dto.ChangeDue != nil {
		money, moneyErr := kernel.NewMoney(*dto.ChangeDue)
		if moneyErr != nil {
			return nil, moneyErr
		}
		change = &money
	}

	var payload json.RawMessage
	if dto.GatewayPayload != nil {
		payload = json.RawMessage(*dto.GatewayPayload)
	}

	return payment.RestorePayment(id, orderID, method, status, amount,
		cashReceived, change, dto.TransactionID, payload, dto.CreatedAt, dto.ProcessedAt)
}
