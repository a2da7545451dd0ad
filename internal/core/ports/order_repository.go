package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and looking up orders by the
// identifiers external systems hold: the business order id shown to users
// and the gateway order id referenced by payment webhooks.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Uses optimistic locking on the aggregate version: a stale aggregate
	// fails with a version error instead of silently overwriting.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its internal unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderID retrieves an order by its business order id, the value
	// customers and support staff hold.
	GetByOrderID(ctx context.Context, orderID string) (*order.Order, error)

	// GetByGatewayOrderID retrieves an order by the payment gateway's order
	// reference. Payment confirmations identify orders this way.
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error)
}
