package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrOrderIDIsRequired      = errors.New("order id is required")
	ErrReasonIsRequired       = errors.New("cancellation reason is required")
	ErrRefundAmountIsNegative = errors.New("refund amount must not be negative")
)

// CancelOrderCommand represents a request to cancel a whole order with a
// reason and an optional refund amount.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      string
	reason       string
	refundAmount float64

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order. The refund
// amount may be zero when no refund is requested; it is validated against the
// order's value at handling time, never clamped.
func NewCancelOrderCommand(orderID, reason string, refundAmount float64) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setRefundAmount(refundAmount),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the business order id to cancel.
func (c CancelOrderCommand) OrderID() string {
	return c.orderID
}

// Reason returns the cancellation reason recorded in the history.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// RefundAmount returns the requested refund, zero when none.
func (c CancelOrderCommand) RefundAmount() float64 {
	return c.refundAmount
}

func (c *CancelOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return ErrOrderIDIsRequired
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *CancelOrderCommand) setRefundAmount(amount float64) error {
	if amount < 0 {
		return ErrRefundAmountIsNegative
	}

	c.refundAmount = amount
	return nil
}
