package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/core/ports"
)

// RegisterWarehouseResponse reports the outcome of one registration attempt.
type RegisterWarehouseResponse struct {
	Status       string
	ExternalID   string
	RetryCount   int
	ErrorMessage string
}

// RegisterWarehouseCommandHandler drives one warehouse registration attempt
// for a vendor.
//
// The attempt is accounted before the carrier is called: the retry budget
// check, the counter increment, and the attempt timestamp are committed in a
// first transaction, then the carrier call happens, then the outcome is
// committed in a second transaction. A crash mid-call can cost an attempt but
// can never exceed the budget.
type RegisterWarehouseCommandHandler struct {
	uowFactory VendorUoWFactory
	carrier    ports.CarrierClient
}

// NewRegisterWarehouseCommandHandler creates a handler for warehouse
// registration attempts.
func NewRegisterWarehouseCommandHandler(uowFactory VendorUoWFactory, carrier ports.CarrierClient) RegisterWarehouseCommandHandler {
	return RegisterWarehouseCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
	}
}

// Handle processes the registration attempt. An exhausted retry budget or an
// already registered warehouse is rejected here, before any carrier call.
func (h *RegisterWarehouseCommandHandler) Handle(ctx context.Context, cmd RegisterWarehouseCommand) (RegisterWarehouseResponse, error) {
	if err := cmd.Validate(); err != nil {
		return RegisterWarehouseResponse{}, err
	}

	vnd, err := h.beginAttempt(ctx, cmd)
	if err != nil {
		return RegisterWarehouseResponse{}, err
	}

	externalID, carrierErr := h.carrier.RegisterWarehouse(ctx, ports.WarehouseRegistration{
		Name:    vnd.Warehouse().Name(),
		Pincode: vnd.Pincode(),
		Country: "India",
	})

	return h.recordOutcome(ctx, cmd, externalID, carrierErr)
}

// beginAttempt commits the attempt accounting in its own transaction so the
// retry counter survives a crash during the carrier call.
func (h *RegisterWarehouseCommandHandler) beginAttempt(ctx context.Context, cmd RegisterWarehouseCommand) (*vendor.Vendor, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vnd, err := uow.VendorRepository().Get(ctx, cmd.VendorID())
	if err != nil {
		return nil, err
	}

	if err = vnd.BeginWarehouseAttempt(time.Now()); err != nil {
		return nil, err
	}

	if err = uow.VendorRepository().Update(ctx, vnd); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return vnd, nil
}

// recordOutcome re-reads the vendor and commits the carrier result.
// Registration failure is recorded, never returned as an error: the vendor
// stays usable for manual fulfillment.
func (h *RegisterWarehouseCommandHandler) recordOutcome(ctx context.Context, cmd RegisterWarehouseCommand, externalID string, carrierErr error) (RegisterWarehouseResponse, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RegisterWarehouseResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vnd, err := uow.VendorRepository().Get(ctx, cmd.VendorID())
	if err != nil {
		return RegisterWarehouseResponse{}, err
	}

	if carrierErr != nil {
		slog.Warn("warehouse registration rejected by carrier",
			"vendor_id", cmd.VendorID().String(), "error", carrierErr)
		vnd.FailWarehouseRegistration(carrierErr.Error())
	} else if err = vnd.CompleteWarehouseRegistration(externalID); err != nil {
		return RegisterWarehouseResponse{}, err
	}

	if err = uow.VendorRepository().Update(ctx, vnd); err != nil {
		return RegisterWarehouseResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RegisterWarehouseResponse{}, err
	}

	w := vnd.Warehouse()
	return RegisterWarehouseResponse{
		Status:       w.Status().String(),
		ExternalID:   w.ExternalID(),
		RetryCount:   w.RetryCount(),
		ErrorMessage: w.ErrorMessage(),
	}, nil
}
