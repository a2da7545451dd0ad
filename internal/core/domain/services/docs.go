// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the marketplace fulfillment
// system. It implements workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - VendorSplitter: partitions a cart into per-vendor groups with catalog
//     price snapshots
//   - ShippingResolver: resolves a shipping cost, method, and delivery
//     estimate for one vendor group
//   - ShipmentCreator: creates a carrier shipment for one vendor sub-order
//
// Domain services coordinate between aggregates and outbound ports,
// implementing business logic that spans multiple bounded contexts following
// Domain-Driven Design principles.
package services
