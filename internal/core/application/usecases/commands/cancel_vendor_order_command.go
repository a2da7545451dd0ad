package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var (
	ErrCancelVendorOrderCommandIsNotConstructed = errors.New(
		"CancelVendorOrderCommand must be created via NewCancelVendorOrderCommand constructor",
	)
	ErrSubOrderIDIsRequired = errors.New("sub-order id is required")
)

// CancelVendorOrderCommand represents a request to cancel one vendor
// sub-order within an order.
type CancelVendorOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      string
	subOrderID   string
	reason       string
	refundAmount float64

	guard guard.ConstructorGuard
}

// NewCancelVendorOrderCommand creates a command to cancel a vendor sub-order.
// The refund amount is validated against the sub-order's value at handling
// time, never clamped.
func NewCancelVendorOrderCommand(orderID, subOrderID, reason string, refundAmount float64) (CancelVendorOrderCommand, error) {
	cmd := CancelVendorOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSubOrderID(subOrderID),
		cmd.setReason(reason),
		cmd.setRefundAmount(refundAmount),
	); err != nil {
		return CancelVendorOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelVendorOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelVendorOrderCommandIsNotConstructed)
}

// OrderID returns the parent business order id.
func (c CancelVendorOrderCommand) OrderID() string {
	return c.orderID
}

// SubOrderID returns the vendor sub-order id to cancel.
func (c CancelVendorOrderCommand) SubOrderID() string {
	return c.subOrderID
}

// Reason returns the cancellation reason recorded in the tracking history.
func (c CancelVendorOrderCommand) Reason() string {
	return c.reason
}

// RefundAmount returns the requested refund, zero when none.
func (c CancelVendorOrderCommand) RefundAmount() float64 {
	return c.refundAmount
}

func (c *CancelVendorOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return ErrOrderIDIsRequired
	}

	c.orderID = orderID
	return nil
}

func (c *CancelVendorOrderCommand) setSubOrderID(subOrderID string) error {
	if subOrderID == "" {
		return ErrSubOrderIDIsRequired
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *CancelVendorOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *CancelVendorOrderCommand) setRefundAmount(amount float64) error {
	if amount < 0 {
		return ErrRefundAmountIsNegative
	}

	c.refundAmount = amount
	return nil
}
