package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// VendorOrderStatus represents the lifecycle state of a single vendor
// sub-order within the aggregate.
//
// State transitions:
//
//	VendorOrderPending ──> VendorOrderConfirmed ──> VendorOrderShipped ──> VendorOrderDelivered
//	        ^                      │
//	        └──────────────────────┘  (shipment creation failed, awaiting retry or manual fulfillment)
//
// VendorOrderCancelled is reachable from any state except Delivered and
// Cancelled itself.
type VendorOrderStatus int

const (
	// VendorOrderStatusUnknown represents an invalid or undefined status.
	VendorOrderStatusUnknown VendorOrderStatus = iota

	// VendorOrderPending indicates the sub-order awaits fulfillment: either a
	// shipment has not been attempted yet, the attempt failed, or the vendor
	// requires manual fulfillment.
	VendorOrderPending

	// VendorOrderConfirmed indicates payment was confirmed for the parent order.
	VendorOrderConfirmed

	// VendorOrderShipped indicates a carrier shipment exists; the sub-order
	// carries a non-empty waybill number.
	VendorOrderShipped

	// VendorOrderDelivered indicates the sub-order reached the customer. Terminal.
	VendorOrderDelivered

	// VendorOrderCancelled indicates the sub-order was cancelled. Terminal.
	VendorOrderCancelled
)

func getVendorOrderStatusStrings() map[VendorOrderStatus]string {
	return map[VendorOrderStatus]string{
		VendorOrderStatusUnknown: "unknown",
		VendorOrderPending:       "pending",
		VendorOrderConfirmed:     "confirmed",
		VendorOrderShipped:       "shipped",
		VendorOrderDelivered:     "delivered",
		VendorOrderCancelled:     "cancelled",
	}
}

// Validate checks if the VendorOrderStatus value is valid.
func (s VendorOrderStatus) Validate() error {
	if s == VendorOrderStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("vendor order status",
			fmt.Errorf("%d is not a valid vendor order status", s))
	}
	if _, ok := getVendorOrderStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vendor order status",
			fmt.Errorf("%d is not a valid vendor order status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
func (s VendorOrderStatus) String() string {
	if str, ok := getVendorOrderStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanCancel checks whether the sub-order may be cancelled from the current
// status. Delivered and already-cancelled sub-orders reject the request.
func (s VendorOrderStatus) CanCancel() error {
	if s == VendorOrderDelivered || s == VendorOrderCancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"vendor order status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return nil
}

// Ship transitions the status to VendorOrderShipped.
//
// Valid transitions:
//   - VendorOrderConfirmed -> VendorOrderShipped
//   - VendorOrderPending -> VendorOrderShipped (retry after an earlier failure)
func (s VendorOrderStatus) Ship() (VendorOrderStatus, error) {
	if s != VendorOrderConfirmed && s != VendorOrderPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"vendor order status",
			fmt.Errorf("%s is not a valid status to ship", s.String()),
		)
	}

	return VendorOrderShipped, nil
}

// Deliver transitions the status to VendorOrderDelivered.
func (s VendorOrderStatus) Deliver() (VendorOrderStatus, error) {
	if s != VendorOrderShipped {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"vendor order status",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}

	return VendorOrderDelivered, nil
}

// IsTerminal reports whether no further transitions are possible.
func (s VendorOrderStatus) IsTerminal() bool {
	return s == VendorOrderDelivered || s == VendorOrderCancelled
}
