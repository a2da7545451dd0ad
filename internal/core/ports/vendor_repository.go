// Package ports defines repository and outbound client interfaces for the
// marketplace domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"
)

// VendorRepository defines the persistence contract for vendor aggregates,
// including the warehouse registration workflow state.
type VendorRepository interface {
	// Add persists a new vendor aggregate to storage.
	Add(ctx context.Context, aggregate *vendor.Vendor) error

	// Update persists changes to an existing vendor aggregate.
	Update(ctx context.Context, aggregate *vendor.Vendor) error

	// Get retrieves a vendor aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error)

	// GetAllAwaitingRegistration retrieves vendors whose warehouse is not yet
	// registered and still has retry budget left. The background registration
	// job drains this set.
	GetAllAwaitingRegistration(ctx context.Context) ([]*vendor.Vendor, error)
}
