// Package kernel provides the shared value objects of the commissions domain.
//
// The package includes:
//   - UUID: identifier for aggregates and entities
//   - Money: non-negative decimal amount in one currency
//   - Email: normalized client or talent address
//   - ProductLine: voice, music or orchestra
//   - RightsLevel: standard, broadcast or global usage rights, totally ordered
//
// Value objects are immutable; zero values are invalid and fail Validate.
package kernel
