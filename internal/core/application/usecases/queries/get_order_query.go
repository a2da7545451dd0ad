// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly with raw SQL, bypassing the
// domain model: they produce view responses, never aggregates.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrOrderIDIsRequired = errors.New("order id is required")
)

// GetOrderQuery retrieves one order by its business order id, the value
// customers and support staff hold.
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	if orderID == "" {
		return GetOrderQuery{}, ErrOrderIDIsRequired
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the business order id to look up.
func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

// AddressView is the delivery address snapshot as stored on the order row.
type AddressView struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// StatusEventView is one entry of the order's append-only status history.
type StatusEventView struct {
	Status int       `json:"status"`
	At     time.Time `json:"at"`
}

// TrackingEventView is one entry of a sub-order's tracking history.
type TrackingEventView struct {
	Status int       `json:"status"`
	Note   string    `json:"note"`
	At     time.Time `json:"at"`
}

// LineItemView is a product line of a vendor sub-order.
type LineItemView struct {
	ProductID     string     `json:"product_id"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	ItemCost      float64    `json:"item_cost"`
	WeightKg      float64    `json:"weight_kg"`
	Customization string     `json:"customization,omitempty"`
	Status        int        `json:"status"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
}

// VendorOrderView is one vendor sub-order of the order.
type VendorOrderView struct {
	VendorID           string              `json:"vendor_id"`
	SubOrderID         string              `json:"sub_order_id"`
	ShippingMethod     int                 `json:"shipping_method"`
	ShippingProvider   string              `json:"shipping_provider"`
	ShippingCost       float64             `json:"shipping_cost"`
	EtaDays            int                 `json:"eta_days"`
	WaybillNo          *string             `json:"waybill_no,omitempty"`
	Status             int                 `json:"status"`
	Tracking           []TrackingEventView `json:"tracking"`
	Note               string              `json:"note,omitempty"`
	ShipmentRetryCount int                 `json:"shipment_retry_count"`
	Items              []LineItemView      `json:"items"`
}

// RefundView is the order's refund block.
type RefundView struct {
	Requested bool    `json:"requested"`
	Status    int     `json:"status"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason,omitempty"`
}

// GetOrderQueryResponse is the full read view of one order.
type GetOrderQueryResponse struct {
	ID               string
	OrderID          string
	UserID           string
	Status           string
	PaymentMethod    string
	PaymentStatus    string
	Amount           float64
	CouponDiscount   float64
	FinalOrderAmount float64
	Currency         string
	GatewayOrderID   string
	ShippingAddress  AddressView
	StatusHistory    []StatusEventView
	Refund           RefundView
	VendorOrders     []VendorOrderView
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
