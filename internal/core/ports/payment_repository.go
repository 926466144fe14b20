package ports

import (
	"context"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// Add persists a new payment aggregate to storage.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment aggregate.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrderID retrieves the payment settling the given order.
	// Returns errs.ObjectNotFoundError when the order has no payment.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// GetByTransactionID retrieves the payment carrying the given gateway
	// transaction identifier. Webhook processing matches payments this way.
	GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error)
}
