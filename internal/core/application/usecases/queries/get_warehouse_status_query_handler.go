package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/pkg/errs"
)

// GetWarehouseStatusQueryHandler reads one vendor's warehouse registration
// columns for admin tooling.
type GetWarehouseStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetWarehouseStatusQueryHandler creates a handler for warehouse status
// reads.
func NewGetWarehouseStatusQueryHandler(db *gorm.DB) GetWarehouseStatusQueryHandler {
	return GetWarehouseStatusQueryHandler{db: db}
}

// Handle executes the query.
func (h GetWarehouseStatusQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseStatusQuery,
) (GetWarehouseStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWarehouseStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			warehouse_status,
			warehouse_retry_count,
			warehouse_max_retries,
			warehouse_last_attempt,
			warehouse_error_message,
			warehouse_external_id
		FROM vendors
		WHERE id = ?
	`, query.VendorID().Bytes()).Row()

	var (
		resp   GetWarehouseStatusQueryResponse
		status int
	)

	err := row.Scan(
		&resp.VendorID,
		&resp.VendorName,
		&status,
		&resp.RetryCount,
		&resp.MaxRetries,
		&resp.LastAttempt,
		&resp.ErrorMessage,
		&resp.ExternalID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetWarehouseStatusQueryResponse{}, errs.NewObjectNotFoundError("vendor_id", query.VendorID())
	}
	if err != nil {
		return GetWarehouseStatusQueryResponse{}, err
	}

	resp.Status = vendor.WarehouseStatus(status).String()
	return resp, nil
}
