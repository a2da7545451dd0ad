package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/order"
)

// GetUserOrdersQueryHandler lists a user's orders for account history views.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for user order listings.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query. Soft-deleted orders are excluded; newest first.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]GetUserOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUserOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			status,
			payment_method,
			payment_status,
			final_order_amount,
			currency,
			jsonb_array_length(vendor_orders),
			created_at
		FROM orders
		WHERE user_id = ? AND is_deleted = false
		ORDER BY created_at DESC
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp          GetUserOrdersQueryResponse
			status        int
			paymentMethod int
			paymentStatus int
		)

		err = rows.Scan(
			&resp.OrderID,
			&status,
			&paymentMethod,
			&paymentStatus,
			&resp.FinalOrderAmount,
			&resp.Currency,
			&resp.VendorOrderCount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.Status = order.Status(status).String()
		resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()
		resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
