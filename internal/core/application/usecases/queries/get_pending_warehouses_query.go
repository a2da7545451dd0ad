package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetPendingWarehousesQueryIsNotConstructed = errors.New(
	"GetPendingWarehousesQuery must be created via NewGetPendingWarehousesQuery constructor",
)

// GetPendingWarehousesQuery retrieves vendors whose warehouse registration is
// incomplete and still has retry budget left. The background registration job
// drains this set.
type GetPendingWarehousesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingWarehousesQuery creates a parameterless query for vendors
// awaiting warehouse registration.
func NewGetPendingWarehousesQuery() GetPendingWarehousesQuery {
	return GetPendingWarehousesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingWarehousesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingWarehousesQueryIsNotConstructed)
}

// GetPendingWarehousesQueryResponse identifies one vendor awaiting
// registration.
type GetPendingWarehousesQueryResponse struct {
	VendorID   kernel.UUID
	RetryCount int
}
