package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order row, including the jsonb child
// collections, and maps it into a view response.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Soft-deleted orders stay readable here: support
// staff need cancelled orders for refund reconciliation.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			user_id,
			status,
			payment_method,
			payment_status,
			amount,
			coupon_discount,
			final_order_amount,
			currency,
			gateway_order_id,
			shipping_address,
			status_history,
			refund,
			vendor_orders,
			created_at,
			updated_at
		FROM orders
		WHERE order_id = ?
	`, query.OrderID()).Row()

	var (
		resp            GetOrderQueryResponse
		status          int
		paymentMethod   int
		paymentStatus   int
		addressJSON     []byte
		historyJSON     []byte
		refundJSON      []byte
		vendorOrderJSON []byte
	)

	err := row.Scan(
		&resp.ID,
		&resp.OrderID,
		&resp.UserID,
		&status,
		&paymentMethod,
		&paymentStatus,
		&resp.Amount,
		&resp.CouponDiscount,
		&resp.FinalOrderAmount,
		&resp.Currency,
		&resp.GatewayOrderID,
		&addressJSON,
		&historyJSON,
		&refundJSON,
		&vendorOrderJSON,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Status = order.Status(status).String()
	resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()
	resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()

	if err = json.Unmarshal(addressJSON, &resp.ShippingAddress); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(historyJSON, &resp.StatusHistory); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(refundJSON, &resp.Refund); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(vendorOrderJSON, &resp.VendorOrders); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

// VendorOrderStatusName maps a stored sub-order status to its wire name.
// Kept here so HTTP DTOs can render views without importing the domain.
func VendorOrderStatusName(status int) string {
	return order.VendorOrderStatus(status).String()
}

// ShippingMethodName maps a stored shipping method to its wire name.
func ShippingMethodName(method int) string {
	return order.ShippingMethod(method).String()
}

// ItemStatusName maps a stored line item status to its wire name.
func ItemStatusName(status int) string {
	return order.ItemStatus(status).String()
}

// StatusName maps a stored order status to its wire name.
func StatusName(status int) string {
	return order.Status(status).String()
}

// RefundStatusName maps a stored refund status to its wire name.
func RefundStatusName(status int) string {
	return order.RefundStatus(status).String()
}
