package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetWarehouseStatusQueryIsNotConstructed = errors.New(
	"GetWarehouseStatusQuery must be created via NewGetWarehouseStatusQuery constructor",
)

// GetWarehouseStatusQuery retrieves a vendor's warehouse registration state
// for admin tooling.
type GetWarehouseStatusQuery struct {
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWarehouseStatusQuery creates a query for one vendor's warehouse
// state.
func NewGetWarehouseStatusQuery(vendorID kernel.UUID) (GetWarehouseStatusQuery, error) {
	if err := vendorID.Validate(); err != nil {
		return GetWarehouseStatusQuery{}, err
	}

	return GetWarehouseStatusQuery{
		vendorID: vendorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWarehouseStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseStatusQueryIsNotConstructed)
}

// VendorID returns the vendor being inspected.
func (q GetWarehouseStatusQuery) VendorID() kernel.UUID {
	return q.vendorID
}

// GetWarehouseStatusQueryResponse is the admin view of a vendor's warehouse
// registration workflow.
type GetWarehouseStatusQueryResponse struct {
	VendorID     string
	VendorName   string
	Status       string
	RetryCount   int
	MaxRetries   int
	LastAttempt  *time.Time
	ErrorMessage string
	ExternalID   string
}
