package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrGatewayOrderIDIsRequired = errors.New("gateway order id is required")
	ErrPaymentIDIsRequired      = errors.New("payment id is required")
	ErrSignatureIsRequired      = errors.New("signature is required")
)

// ConfirmPaymentCommand represents a payment gateway callback: the gateway's
// order reference, the captured payment id, and the callback signature to
// verify.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	gatewayOrderID string
	paymentID      string
	signature      string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm a captured payment.
// All three callback fields are required.
func NewConfirmPaymentCommand(gatewayOrderID, paymentID, signature string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGatewayOrderID(gatewayOrderID),
		cmd.setPaymentID(paymentID),
		cmd.setSignature(signature),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmPaymentCommandIsNotConstructed if validation fails.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// GatewayOrderID returns the payment gateway's order reference.
func (c ConfirmPaymentCommand) GatewayOrderID() string {
	return c.gatewayOrderID
}

// PaymentID returns the gateway's captured payment identifier.
func (c ConfirmPaymentCommand) PaymentID() string {
	return c.paymentID
}

// Signature returns the callback signature to verify.
func (c ConfirmPaymentCommand) Signature() string {
	return c.signature
}

func (c *ConfirmPaymentCommand) setGatewayOrderID(id string) error {
	if id == "" {
		return ErrGatewayOrderIDIsRequired
	}

	c.gatewayOrderID = id
	return nil
}

func (c *ConfirmPaymentCommand) setPaymentID(id string) error {
	if id == "" {
		return ErrPaymentIDIsRequired
	}

	c.paymentID = id
	return nil
}

func (c *ConfirmPaymentCommand) setSignature(signature string) error {
	if signature == "" {
		return ErrSignatureIsRequired
	}

	c.signature = signature
	return nil
}
