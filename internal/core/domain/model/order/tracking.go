package order

import "time"

// StatusEvent is one entry of the order's append-only status history.
// Entries are never mutated or reordered after insertion.
type StatusEvent struct {
	Status Status
	At     time.Time
}

// TrackingEvent is one entry of a vendor sub-order's append-only tracking
// history. Note carries the human-readable explanation recorded with the
// transition (shipment failure reasons, skip reasons, waybill references).
type TrackingEvent struct {
	Status VendorOrderStatus
	Note   string
	At     time.Time
}

// RefundStatus tracks the progress of a refund request on the order.
type RefundStatus int

const (
	// RefundNone means no refund has been requested.
	RefundNone RefundStatus = iota

	// RefundRequested means a refund was recorded during a cancellation and
	// awaits settlement with the gateway.
	RefundRequested

	// RefundProcessed means the refund was settled.
	RefundProcessed
)

// String returns the wire name of the refund status.
func (s RefundStatus) String() string {
	switch s {
	case RefundRequested:
		return "requested"
	case RefundProcessed:
		return "processed"
	default:
		return "none"
	}
}

// RefundInfo records refund state for audit and reconciliation.
// Amount accumulates across partial cancellations; it never exceeds the sum
// of the cancelled scopes' values because every request is validated against
// its scope before being recorded.
type RefundInfo struct {
	Requested bool
	Status    RefundStatus
	Amount    float64
	Reason    string
}
