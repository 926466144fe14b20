// Package services provides domain services that orchestrate business
// operations across multiple domain entities.
//
// The package includes:
//   - OrderDispatcher: finds and assigns the best courier for an order
//   - RoutePlanner: orders delivery stops into a drivable route
//
// Domain services coordinate between aggregates, implementing business logic
// that does not naturally belong to a single aggregate root.
package services
