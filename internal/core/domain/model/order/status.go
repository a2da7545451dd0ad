package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order aggregate.
// It implements a state machine with defined transitions so that orders
// follow the correct fulfillment workflow.
//
// State transitions:
//
//	PaymentPending ──┬──> Confirmed ──> Processing ──> ReadyToShip ──> Shipped ──> Delivered
//	                 │        │
//	                 │        └──> Pending  (all fan-out outcomes failed or skipped)
//	                 └──> PaymentFailed ──> PaymentPending  (fresh payment attempt)
//
// COD orders skip PaymentPending and start at Confirmed. Cancelled and
// Refunded are reachable from the non-terminal states listed in CanCancel.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// PaymentPending is the initial status of a prepaid order awaiting capture.
	PaymentPending

	// Confirmed indicates payment was captured (or the order is COD) and
	// fulfillment may begin.
	Confirmed

	// PaymentFailed indicates the gateway rejected the payment. The order can
	// re-enter PaymentPending only via a fresh payment attempt.
	PaymentFailed

	// Pending indicates payment succeeded but no vendor shipment could be
	// created during fan-out; every sub-order failed or was skipped.
	Pending

	// Processing indicates at least one vendor shipment was created.
	Processing

	// ReadyToShip indicates all packed sub-orders await carrier pickup.
	ReadyToShip

	// Shipped indicates the carrier picked up the shipments.
	Shipped

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal, soft-deleted only.
	Cancelled

	// Refunded indicates a refund was processed for the order. Terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		PaymentPending: "payment_pending",
		Confirmed:      "confirmed",
		PaymentFailed:  "payment_failed",
		Pending:        "pending",
		Processing:     "processing",
		ReadyToShip:    "ready_to_ship",
		Shipped:        "shipped",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Refunded:       "refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		PaymentPending: "payment_pending",
		Confirmed:      "confirmed",
		PaymentFailed:  "payment_failed",
		Pending:        "pending",
		Processing:     "processing",
		ReadyToShip:    "ready_to_ship",
		Shipped:        "shipped",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Refunded:       "refunded",
	}
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ConfirmPayment transitions the status to Confirmed after a successful
// payment capture.
//
// Valid transitions:
//   - PaymentPending -> Confirmed (prepaid capture)
//   - PaymentFailed -> Confirmed (fresh payment attempt succeeded)
func (s Status) ConfirmPayment() (Status, error) {
	if s != PaymentPending && s != PaymentFailed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to confirm payment", s.String()),
		)
	}

	return Confirmed, nil
}

// FailPayment transitions the status to PaymentFailed after the gateway
// rejected the payment.
//
// Valid transitions:
//   - PaymentPending -> PaymentFailed
//   - PaymentFailed -> PaymentFailed (repeated failed attempt)
func (s Status) FailPayment() (Status, error) {
	if s != PaymentPending && s != PaymentFailed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to fail payment", s.String()),
		)
	}

	return PaymentFailed, nil
}

// CanCancel checks whether a whole-order cancellation is allowed from the
// current status without performing the transition.
//
// Cancellation is allowed only from PaymentPending, PaymentFailed, Confirmed
// and Processing. Already-cancelled, delivered, and in-transit orders reject
// the request.
func (s Status) CanCancel() error {
	switch s {
	case PaymentPending, PaymentFailed, Confirmed, Processing:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
}

// Cancel transitions the status to Cancelled.
// Validity is defined by CanCancel.
func (s Status) Cancel() (Status, error) {
	if err := s.CanCancel(); err != nil {
		return 0, err
	}

	return Cancelled, nil
}

// Refund transitions the status to Refunded.
//
// A refund can follow any non-terminal state; in practice it is recorded
// after a cancellation of a paid order.
func (s Status) Refund() (Status, error) {
	switch s {
	case Delivered, Refunded, StatusUnknown:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to refund", s.String()),
		)
	default:
		return Refunded, nil
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}
