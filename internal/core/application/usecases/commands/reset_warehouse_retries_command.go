package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrResetWarehouseRetriesCommandIsNotConstructed = errors.New(
	"ResetWarehouseRetriesCommand must be created via NewResetWarehouseRetriesCommand constructor",
)

// ResetWarehouseRetriesCommand represents an operator request to clear a
// vendor's exhausted warehouse registration retry budget.
type ResetWarehouseRetriesCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResetWarehouseRetriesCommand creates a command to reset the retry
// counter for the given vendor.
func NewResetWarehouseRetriesCommand(vendorID kernel.UUID) (ResetWarehouseRetriesCommand, error) {
	cmd := ResetWarehouseRetriesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setVendorID(vendorID); err != nil {
		return ResetWarehouseRetriesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetWarehouseRetriesCommand) Validate() error {
	return c.guard.Validate(ErrResetWarehouseRetriesCommandIsNotConstructed)
}

// VendorID returns the vendor whose retry counter should be cleared.
func (c ResetWarehouseRetriesCommand) VendorID() kernel.UUID {
	return c.vendorID
}

func (c *ResetWarehouseRetriesCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}
