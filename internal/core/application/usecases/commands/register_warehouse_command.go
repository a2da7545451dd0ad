package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterWarehouseCommandIsNotConstructed = errors.New(
	"RegisterWarehouseCommand must be created via NewRegisterWarehouseCommand constructor",
)

// RegisterWarehouseCommand represents a request to attempt warehouse
// registration with the carrier for one vendor. Used both by the operator
// retry endpoint and the background registration job.
type RegisterWarehouseCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterWarehouseCommand creates a command to attempt warehouse
// registration for the given vendor.
func NewRegisterWarehouseCommand(vendorID kernel.UUID) (RegisterWarehouseCommand, error) {
	cmd := RegisterWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setVendorID(vendorID); err != nil {
		return RegisterWarehouseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWarehouseCommandIsNotConstructed)
}

// VendorID returns the vendor whose warehouse should be registered.
func (c RegisterWarehouseCommand) VendorID() kernel.UUID {
	return c.vendorID
}

func (c *RegisterWarehouseCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}
