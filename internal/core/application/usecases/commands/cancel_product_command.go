package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCancelProductCommandIsNotConstructed = errors.New(
	"CancelProductCommand must be created via NewCancelProductCommand constructor",
)

// CancelProductCommand represents a request to cancel one product line item
// within a vendor sub-order.
type CancelProductCommand struct { //nolint:recvcheck //using for validation
	orderID      string
	subOrderID   string
	productID    kernel.UUID
	reason       string
	refundAmount float64

	guard guard.ConstructorGuard
}

// NewCancelProductCommand creates a command to cancel a single line item.
// The refund amount is validated against the item's value at handling time,
// never clamped.
func NewCancelProductCommand(orderID, subOrderID string, productID kernel.UUID, reason string, refundAmount float64) (CancelProductCommand, error) {
	cmd := CancelProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSubOrderID(subOrderID),
		cmd.setProductID(productID),
		cmd.setReason(reason),
		cmd.setRefundAmount(refundAmount),
	); err != nil {
		return CancelProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelProductCommand) Validate() error {
	return c.guard.Validate(ErrCancelProductCommandIsNotConstructed)
}

// OrderID returns the parent business order id.
func (c CancelProductCommand) OrderID() string {
	return c.orderID
}

// SubOrderID returns the vendor sub-order containing the item.
func (c CancelProductCommand) SubOrderID() string {
	return c.subOrderID
}

// ProductID returns the product line item to cancel.
func (c CancelProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Reason returns the cancellation reason recorded in the tracking history.
func (c CancelProductCommand) Reason() string {
	return c.reason
}

// RefundAmount returns the requested refund, zero when none.
func (c CancelProductCommand) RefundAmount() float64 {
	return c.refundAmount
}

func (c *CancelProductCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return ErrOrderIDIsRequired
	}

	c.orderID = orderID
	return nil
}

func (c *CancelProductCommand) setSubOrderID(subOrderID string) error {
	if subOrderID == "" {
		return ErrSubOrderIDIsRequired
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *CancelProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CancelProductCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *CancelProductCommand) setRefundAmount(amount float64) error {
	if amount < 0 {
		return ErrRefundAmountIsNegative
	}

	c.refundAmount = amount
	return nil
}
