// Package kernel provides the core domain primitives shared by every model
// package in the CRM:
//
//   - UUID: identifier value object with validation and comparison
//   - GeoPoint: WGS-84 coordinate pair with haversine distance
//   - Money: monetary amounts in integer minor units
//
// All primitives are immutable value objects whose zero values are invalid;
// constructors enforce the invariants and the constructor-guard pattern makes
// bypassing them detectable.
package kernel
