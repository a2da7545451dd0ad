package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

func vendorUoWFactory(vnd *vendor.Vendor, transactions int) (*MockVendorUoWFactory, *MockVendorRepository) {
	vendorRepo := new(MockVendorRepository)
	vendorRepo.On("Get", mock.Anything, vnd.ID()).Return(vnd, nil).Times(transactions)
	vendorRepo.On("Update", mock.Anything, vnd).Return(nil).Times(transactions)

	uow := new(MockVendorUoW)
	uow.On("Begin", mock.Anything).Return(nil).Times(transactions)
	uow.On("VendorRepository").Return(vendorRepo)
	uow.On("Commit", mock.Anything).Return(nil).Times(transactions)
	uow.On("Rollback", mock.Anything).Return(nil).Times(transactions)

	factory := new(MockVendorUoWFactory)
	factory.On("Create").Return(uow).Times(transactions)
	return factory, vendorRepo
}

func TestRegisterWarehouseCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	vnd, err := vendor.NewVendor(kernel.NewUUID(), "Acme Crafts", "560001", nil)
	require.NoError(t, err)

	factory, vendorRepo := vendorUoWFactory(vnd, 2)

	carrier := new(MockCarrierClient)
	carrier.On("RegisterWarehouse", mock.Anything, mock.MatchedBy(func(req ports.WarehouseRegistration) bool {
		return req.Name == "Acme Crafts" && req.Pincode == "560001"
	})).Return("WH-8842", nil).Once()

	h := commands.NewRegisterWarehouseCommandHandler(factory, carrier)
	cmd, err := commands.NewRegisterWarehouseCommand(vnd.ID())
	require.NoError(t, err)

	resp, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "registered", resp.Status)
	assert.Equal(t, "WH-8842", resp.ExternalID)
	assert.Equal(t, 1, resp.RetryCount)
	assert.True(t, vnd.Warehouse().IsRegistered())
	carrier.AssertExpectations(t)
	vendorRepo.AssertExpectations(t)
}

func TestRegisterWarehouseCommandHandler_Handle_CarrierRejectionIsRecorded(t *testing.T) {
	ctx := context.Background()
	vnd, err := vendor.NewVendor(kernel.NewUUID(), "Acme Crafts", "560001", nil)
	require.NoError(t, err)

	factory, _ := vendorUoWFactory(vnd, 2)

	carrier := new(MockCarrierClient)
	carrier.On("RegisterWarehouse", mock.Anything, mock.Anything).
		Return("", &ports.CarrierError{Op: "register_warehouse", StatusCode: 422, Message: "address rejected"}).Once()

	h := commands.NewRegisterWarehouseCommandHandler(factory, carrier)
	cmd, err := commands.NewRegisterWarehouseCommand(vnd.ID())
	require.NoError(t, err)

	// Rejection is an outcome, not an error: the vendor stays usable.
	resp, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, 1, resp.RetryCount)
	assert.Contains(t, resp.ErrorMessage, "address rejected")
	assert.False(t, vnd.Warehouse().IsRegistered())
}

func TestRegisterWarehouseCommandHandler_Handle_ExhaustedBudgetNeverCallsCarrier(t *testing.T) {
	ctx := context.Background()
	vnd, err := vendor.NewVendor(kernel.NewUUID(), "Acme Crafts", "560001", nil)
	require.NoError(t, err)
	for i := 0; i < vendor.DefaultMaxWarehouseRetries; i++ {
		require.NoError(t, vnd.BeginWarehouseAttempt(time.Now()))
		vnd.FailWarehouseRegistration("carrier timeout")
	}

	vendorRepo := new(MockVendorRepository)
	vendorRepo.On("Get", mock.Anything, vnd.ID()).Return(vnd, nil).Once()

	uow := new(MockVendorUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("VendorRepository").Return(vendorRepo)
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockVendorUoWFactory)
	factory.On("Create").Return(uow).Once()

	carrier := new(MockCarrierClient)
	h := commands.NewRegisterWarehouseCommandHandler(factory, carrier)
	cmd, err := commands.NewRegisterWarehouseCommand(vnd.ID())
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	carrier.AssertNotCalled(t, "RegisterWarehouse", mock.Anything, mock.Anything)
	vendorRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResetWarehouseRetriesCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	vnd, err := vendor.NewVendor(kernel.NewUUID(), "Acme Crafts", "560001", nil)
	require.NoError(t, err)
	for i := 0; i < vendor.DefaultMaxWarehouseRetries; i++ {
		require.NoError(t, vnd.BeginWarehouseAttempt(time.Now()))
		vnd.FailWarehouseRegistration("carrier timeout")
	}

	factory, vendorRepo := vendorUoWFactory(vnd, 1)

	h := commands.NewResetWarehouseRetriesCommandHandler(factory)
	cmd, err := commands.NewResetWarehouseRetriesCommand(vnd.ID())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, 0, vnd.Warehouse().RetryCount())
	assert.Equal(t, vendor.WarehousePending, vnd.Warehouse().Status())
	vendorRepo.AssertExpectations(t)
}
