package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"
)

// GetPendingWarehousesQueryHandler lists vendors the registration job should
// attempt: not yet registered, retry budget not exhausted.
type GetPendingWarehousesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingWarehousesQueryHandler creates a handler for the registration
// job's work queue.
func NewGetPendingWarehousesQueryHandler(db *gorm.DB) GetPendingWarehousesQueryHandler {
	return GetPendingWarehousesQueryHandler{db: db}
}

// Handle executes the query. Ordered by retry count so fresh vendors go
// first.
func (h GetPendingWarehousesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingWarehousesQuery,
) ([]GetPendingWarehousesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	vendors := make([]GetPendingWarehousesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			warehouse_retry_count
		FROM vendors
		WHERE warehouse_status != ?
		  AND warehouse_retry_count < warehouse_max_retries
		ORDER BY warehouse_retry_count, id
	`, vendor.WarehouseRegistered).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp GetPendingWarehousesQueryResponse
			id   uuid.UUID
		)

		if err = rows.Scan(&id, &resp.RetryCount); err != nil {
			return nil, err
		}

		vendorID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.VendorID = vendorID
		vendors = append(vendors, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return vendors, nil
}
