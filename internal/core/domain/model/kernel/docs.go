// Package kernel provides the value objects shared by every aggregate of the
// ordering domain.
//
//   - UUID: time-ordered identifier (version 7) used for all entities
//   - Address: city/street/zipcode value object held by members and deliveries
//
// Both are immutable; their zero values are invalid and fail Validate.
package kernel
