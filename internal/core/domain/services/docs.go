// Package services provides domain services that span several aggregates.
//
// The package includes:
//   - InventoryLedger: reserves and releases item stock on behalf of orders,
//     with all-or-nothing semantics for multi-line reservations
package services
