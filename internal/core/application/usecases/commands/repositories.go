// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"crm/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each command depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ClientRepoFactory provides access to the client repository within a transaction.
	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// RouteRepoFactory provides access to the route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// PingRepoFactory provides access to the ping repository within a transaction.
	PingRepoFactory interface {
		PingRepository() ports.PingRepository
	}

	// SupportRepoFactory provides access to the support repository within a transaction.
	SupportRepoFactory interface {
		SupportRepository() ports.SupportRepository
	}

	// ClientUoW manages transactions for client-only operations.
	ClientUoW interface {
		TxManager
		ClientRepoFactory
	}

	// ClientUoWFactory creates new client unit of work instances.
	ClientUoWFactory interface {
		Create() ClientUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// OrderIntakeUoW manages transactions for order creation, which touches
	// the ordering client and the pending payment alongside the order.
	OrderIntakeUoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		PaymentRepoFactory
	}

	// OrderIntakeUoWFactory creates new order intake unit of work instances.
	OrderIntakeUoWFactory interface {
		Create() OrderIntakeUoW
	}

	// DispatchUoW manages transactions for courier assignment, which
	// coordinates order, courier and client aggregates.
	DispatchUoW interface {
		TxManager
		ClientRepoFactory
		CourierRepoFactory
		OrderRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// OrderProgressUoW manages transactions for order lifecycle changes,
	// which may release the courier and notify the client.
	OrderProgressUoW interface {
		TxManager
		ClientRepoFactory
		CourierRepoFactory
		OrderRepoFactory
	}

	// OrderProgressUoWFactory creates new order progress unit of work instances.
	OrderProgressUoWFactory interface {
		Create() OrderProgressUoW
	}

	// TrackingUoW manages transactions for GPS ingestion, which appends a
	// ping and moves the courier's last known position.
	TrackingUoW interface {
		TxManager
		CourierRepoFactory
		PingRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	// PaymentUoW manages transactions for payment settlement, which reads
	// the order and its client to notify about the outcome.
	PaymentUoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		PaymentRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// RoutePlanningUoW manages transactions for route planning, which reads
	// the courier and its assigned orders and writes the route.
	RoutePlanningUoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
		RouteRepoFactory
	}

	// RoutePlanningUoWFactory creates new route planning unit of work instances.
	RoutePlanningUoWFactory interface {
		Create() RoutePlanningUoW
	}

	// RouteUoW manages transactions for route-only lifecycle operations.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
	}

	// RouteUoWFactory creates new route unit of work instances.
	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// SupportUoW manages transactions for support chat operations.
	SupportUoW interface {
		TxManager
		SupportRepoFactory
	}

	// SupportUoWFactory creates new support unit of work instances.
	SupportUoWFactory interface {
		Create() SupportUoW
	}
)
