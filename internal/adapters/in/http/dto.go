package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest is the delivery address of an incoming order.
type AddressRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// CartItemRequest is one requested product line.
type CartItemRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	UserID          string            `json:"user_id"`
	PaymentMethod   string            `json:"payment_method"`
	Items           []CartItemRequest `json:"items"`
	ShippingAddress AddressRequest    `json:"shipping_address"`
	CouponCode      string            `json:"coupon_code,omitempty"`
	Currency        string            `json:"currency"`
}

// CreateOrderResponse reports the identifiers of a placed order.
type CreateOrderResponse struct {
	ID               string  `json:"id"`
	OrderID          string  `json:"order_id"`
	GatewayOrderID   string  `json:"gateway_order_id,omitempty"`
	Status           string  `json:"status"`
	Amount           float64 `json:"amount"`
	CouponDiscount   float64 `json:"coupon_discount"`
	FinalOrderAmount float64 `json:"final_order_amount"`
	Currency         string  `json:"currency"`
}

// ConfirmPaymentRequest is the payment gateway callback body.
type ConfirmPaymentRequest struct {
	GatewayOrderID string `json:"gateway_order_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
}

// FanOutOutcomeResponse is the shipment result for one vendor sub-order.
type FanOutOutcomeResponse struct {
	SubOrderID string `json:"sub_order_id"`
	Outcome    string `json:"outcome"`
	WaybillNo  string `json:"waybill_no,omitempty"`
	Note       string `json:"note,omitempty"`
}

// ConfirmPaymentResponse reports the confirmation and all fan-out outcomes.
type ConfirmPaymentResponse struct {
	OrderID  string                  `json:"order_id"`
	Verified bool                    `json:"verified"`
	Status   string                  `json:"status"`
	Outcomes []FanOutOutcomeResponse `json:"outcomes,omitempty"`
}

// CancelRequest is the shared body of the three cancellation endpoints.
type CancelRequest struct {
	Reason       string  `json:"reason"`
	RefundAmount float64 `json:"refund_amount"`
}

// WarehouseAttemptResponse reports one warehouse registration attempt.
type WarehouseAttemptResponse struct {
	Status       string `json:"status"`
	ExternalID   string `json:"external_id,omitempty"`
	RetryCount   int    `json:"retry_count"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// WarehouseStatusResponse is the admin view of a vendor's warehouse
// registration workflow.
type WarehouseStatusResponse struct {
	VendorID     string     `json:"vendor_id"`
	VendorName   string     `json:"vendor_name"`
	Status       string     `json:"status"`
	RetryCount   int        `json:"retry_count"`
	MaxRetries   int        `json:"max_retries"`
	LastAttempt  *time.Time `json:"last_attempt,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	ExternalID   string     `json:"external_id,omitempty"`
}

// OrderSummaryResponse is one row of a user's order list.
type OrderSummaryResponse struct {
	OrderID          string    `json:"order_id"`
	Status           string    `json:"status"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentStatus    string    `json:"payment_status"`
	FinalOrderAmount float64   `json:"final_order_amount"`
	Currency         string    `json:"currency"`
	VendorOrderCount int       `json:"vendor_order_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// StatusEventResponse is one entry of an order's status history.
type StatusEventResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// TrackingEventResponse is one entry of a sub-order's tracking history.
type TrackingEventResponse struct {
	Status string    `json:"status"`
	Note   string    `json:"note,omitempty"`
	At     time.Time `json:"at"`
}

// LineItemResponse is a product line of a vendor sub-order.
type LineItemResponse struct {
	ProductID     string     `json:"product_id"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	ItemCost      float64    `json:"item_cost"`
	WeightKg      float64    `json:"weight_kg"`
	Customization string     `json:"customization,omitempty"`
	Status        string     `json:"status"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
}

// VendorOrderResponse is one vendor sub-order of an order.
type VendorOrderResponse struct {
	VendorID           string                  `json:"vendor_id"`
	SubOrderID         string                  `json:"sub_order_id"`
	ShippingMethod     string                  `json:"shipping_method"`
	ShippingProvider   string                  `json:"shipping_provider,omitempty"`
	ShippingCost       float64                 `json:"shipping_cost"`
	EtaDays            int                     `json:"eta_days"`
	WaybillNo          *string                 `json:"waybill_no,omitempty"`
	Status             string                  `json:"status"`
	Tracking           []TrackingEventResponse `json:"tracking"`
	Note               string                  `json:"note,omitempty"`
	ShipmentRetryCount int                     `json:"shipment_retry_count"`
	Items              []LineItemResponse      `json:"items"`
}

// RefundResponse is the order's refund block.
type RefundResponse struct {
	Requested bool    `json:"requested"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason,omitempty"`
}

// OrderResponse is the full read view of one order.
type OrderResponse struct {
	ID               string                `json:"id"`
	OrderID          string                `json:"order_id"`
	UserID           string                `json:"user_id"`
	Status           string                `json:"status"`
	PaymentMethod    string                `json:"payment_method"`
	PaymentStatus    string                `json:"payment_status"`
	Amount           float64               `json:"amount"`
	CouponDiscount   float64               `json:"coupon_discount"`
	FinalOrderAmount float64               `json:"final_order_amount"`
	Currency         string                `json:"currency"`
	GatewayOrderID   string                `json:"gateway_order_id,omitempty"`
	ShippingAddress  AddressRequest        `json:"shipping_address"`
	StatusHistory    []StatusEventResponse `json:"status_history"`
	Refund           *RefundResponse       `json:"refund,omitempty"`
	VendorOrders     []VendorOrderResponse `json:"vendor_orders"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// orderResponseFromView renders the raw read view into the API shape,
// translating the stored numeric enums to their names.
func orderResponseFromView(view queries.GetOrderQueryResponse) OrderResponse {
	history := make([]StatusEventResponse, len(view.StatusHistory))
	for i, event := range view.StatusHistory {
		history[i] = StatusEventResponse{
			Status: queries.StatusName(event.Status),
			At:     event.At,
		}
	}

	vendorOrders := make([]VendorOrderResponse, len(view.VendorOrders))
	for i, vo := range view.VendorOrders {
		tracking := make([]TrackingEventResponse, len(vo.Tracking))
		for j, event := range vo.Tracking {
			tracking[j] = TrackingEventResponse{
				Status: queries.VendorOrderStatusName(event.Status),
				Note:   event.Note,
				At:     event.At,
			}
		}

		items := make([]LineItemResponse, len(vo.Items))
		for j, item := range vo.Items {
			items[j] = LineItemResponse{
				ProductID:     item.ProductID,
				Name:          item.Name,
				Quantity:      item.Quantity,
				ItemCost:      item.ItemCost,
				WeightKg:      item.WeightKg,
				Customization: item.Customization,
				Status:        queries.ItemStatusName(item.Status),
				CancelledAt:   item.CancelledAt,
				CancelReason:  item.CancelReason,
			}
		}

		vendorOrders[i] = VendorOrderResponse{
			VendorID:           vo.VendorID,
			SubOrderID:         vo.SubOrderID,
			ShippingMethod:     queries.ShippingMethodName(vo.ShippingMethod),
			ShippingProvider:   vo.ShippingProvider,
			ShippingCost:       vo.ShippingCost,
			EtaDays:            vo.EtaDays,
			WaybillNo:          vo.WaybillNo,
			Status:             queries.VendorOrderStatusName(vo.Status),
			Tracking:           tracking,
			Note:               vo.Note,
			ShipmentRetryCount: vo.ShipmentRetryCount,
			Items:              items,
		}
	}

	response := OrderResponse{
		ID:               view.ID,
		OrderID:          view.OrderID,
		UserID:           view.UserID,
		Status:           view.Status,
		PaymentMethod:    view.PaymentMethod,
		PaymentStatus:    view.PaymentStatus,
		Amount:           view.Amount,
		CouponDiscount:   view.CouponDiscount,
		FinalOrderAmount: view.FinalOrderAmount,
		Currency:         view.Currency,
		GatewayOrderID:   view.GatewayOrderID,
		ShippingAddress: AddressRequest{
			Name:    view.ShippingAddress.Name,
			Phone:   view.ShippingAddress.Phone,
			Line1:   view.ShippingAddress.Line1,
			Line2:   view.ShippingAddress.Line2,
			City:    view.ShippingAddress.City,
			State:   view.ShippingAddress.State,
			Pincode: view.ShippingAddress.Pincode,
			Country: view.ShippingAddress.Country,
		},
		StatusHistory: history,
		VendorOrders:  vendorOrders,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	}

	if view.Refund.Requested {
		response.Refund = &RefundResponse{
			Requested: true,
			Status:    queries.RefundStatusName(view.Refund.Status),
			Amount:    view.Refund.Amount,
			Reason:    view.Refund.Reason,
		}
	}

	return response
}
