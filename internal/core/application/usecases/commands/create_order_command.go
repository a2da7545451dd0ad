package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCartIsEmpty       = errors.New("cart must contain at least one item")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// CreateOrderCommand represents a request to place a new marketplace order
// from a cart of products, a payment method, and a delivery address snapshot.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, items, order.PaymentMethodPrepaid, addr, "WELCOME50", "INR")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	resp, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed, pay via gateway order %s", resp.OrderID, resp.GatewayOrderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID          kernel.UUID
	items           []services.CartItem
	paymentMethod   order.PaymentMethod
	shippingAddress order.Address
	couponCode      string
	currency        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the user id is valid, the cart is not empty with positive
// quantities, the payment method is known, and the address snapshot is
// constructed. The coupon code is optional and validated leniently at
// handling time.
func NewCreateOrderCommand(
	userID kernel.UUID,
	items []services.CartItem,
	paymentMethod order.PaymentMethod,
	shippingAddress order.Address,
	couponCode string,
	currency string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setItems(items),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setShippingAddress(shippingAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.couponCode = couponCode
	cmd.currency = currency
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the ordering user's identifier.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Items returns the requested cart lines.
func (c CreateOrderCommand) Items() []services.CartItem {
	return c.items
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// ShippingAddress returns the delivery address snapshot.
func (c CreateOrderCommand) ShippingAddress() order.Address {
	return c.shippingAddress
}

// CouponCode returns the optional coupon code, empty when none was applied.
func (c CreateOrderCommand) CouponCode() string {
	return c.couponCode
}

// Currency returns the requested currency code, empty for the default.
func (c CreateOrderCommand) Currency() string {
	return c.currency
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setItems(items []services.CartItem) error {
	if len(items) == 0 {
		return ErrCartIsEmpty
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(addr order.Address) error {
	if err := addr.Validate(); err != nil {
		return err
	}

	c.shippingAddress = addr
	return nil
}
