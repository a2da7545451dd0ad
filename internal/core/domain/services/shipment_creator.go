package services

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// Carrier-accepted package dimension bounds in centimeters.
const (
	minDimensionCm = 1.0
	maxDimensionCm = 120.0
)

// Default package dimensions used when no explicit box size is configured.
const (
	defaultLengthCm  = 20.0
	defaultBreadthCm = 15.0
	defaultHeightCm  = 10.0
)

// ShipmentCreator assembles a carrier shipment payload for one vendor
// sub-order and makes a single creation attempt.
//
// Preconditions, checked before any carrier call:
//   - the sub-order has no waybill yet
//   - the shipping method permits automatic fulfillment
//   - the owning vendor's warehouse is registered
//
// It never retries internally. Failures come back as the carrier's structured
// error; the caller decides how to record them.
type ShipmentCreator struct {
	carrier   ports.CarrierClient
	lengthCm  float64
	breadthCm float64
	heightCm  float64
}

// NewShipmentCreator creates a shipment creator with the configured package
// dimensions, clamped to the carrier-accepted bounds. Zero dimensions take
// the defaults.
func NewShipmentCreator(carrier ports.CarrierClient, lengthCm, breadthCm, heightCm float64) (ShipmentCreator, error) {
	if carrier == nil {
		return ShipmentCreator{}, errs.NewValueIsRequiredError("carrier client")
	}
	if lengthCm == 0 {
		lengthCm = defaultLengthCm
	}
	if breadthCm == 0 {
		breadthCm = defaultBreadthCm
	}
	if heightCm == 0 {
		heightCm = defaultHeightCm
	}

	return ShipmentCreator{
		carrier:   carrier,
		lengthCm:  clampDimension(lengthCm),
		breadthCm: clampDimension(breadthCm),
		heightCm:  clampDimension(heightCm),
	}, nil
}

// Create makes one shipment-creation attempt for the given sub-order of the
// order. On success the carrier's waybill and provider come back; recording
// them on the aggregate is the caller's job.
func (c ShipmentCreator) Create(
	ctx context.Context,
	ord *order.Order,
	subOrderID string,
	vnd *vendor.Vendor,
) (ports.Shipment, error) {
	if err := ord.Validate(); err != nil {
		return ports.Shipment{}, err
	}
	if err := vnd.Validate(); err != nil {
		return ports.Shipment{}, err
	}

	vo, err := ord.VendorOrder(subOrderID)
	if err != nil {
		return ports.Shipment{}, err
	}

	if vo.WaybillNo() != nil {
		return ports.Shipment{}, errs.NewValueIsInvalidErrorWithCause("waybill",
			fmt.Errorf("sub-order %s already has waybill %s", subOrderID, *vo.WaybillNo()))
	}
	if !vo.ShippingMethod().AllowsAutomatic() {
		return ports.Shipment{}, errs.NewValueIsInvalidErrorWithCause("shipping method",
			fmt.Errorf("sub-order %s requires manual fulfillment", subOrderID))
	}
	if !vnd.Warehouse().IsRegistered() {
		return ports.Shipment{}, errs.NewValueIsInvalidErrorWithCause("warehouse status",
			fmt.Errorf("vendor %s warehouse is %s, not registered", vnd.ID(), vnd.Warehouse().Status()))
	}

	return c.carrier.CreateShipment(ctx, c.buildRequest(ord, vo, vnd))
}

func (c ShipmentCreator) buildRequest(ord *order.Order, vo *order.VendorOrder, vnd *vendor.Vendor) ports.ShipmentRequest {
	addr := ord.ShippingAddress()

	items := make([]ports.ShipmentItem, 0, len(vo.Items()))
	for _, item := range vo.Items() {
		if !item.IsActive() {
			continue
		}
		items = append(items, ports.ShipmentItem{
			Name:     item.Name(),
			SKU:      item.ProductID().String(),
			Quantity: item.Quantity(),
			Price:    item.ItemCost(),
		})
	}

	declaredValue := vo.ActiveItemsValue()
	cod := ord.PaymentMethod() == order.PaymentMethodCOD

	var codAmount float64
	if cod {
		codAmount = declaredValue + vo.ShippingCost()
	}

	return ports.ShipmentRequest{
		SubOrderID:     vo.SubOrderID(),
		WarehouseID:    vnd.Warehouse().ExternalID(),
		ConsigneeName:  addr.Name(),
		ConsigneePhone: addr.Phone(),
		AddressLine1:   addr.Line1(),
		AddressLine2:   addr.Line2(),
		City:           addr.City(),
		State:          addr.State(),
		Pincode:        addr.Pincode(),
		Country:        addr.Country(),
		Items:          items,
		WeightKg:       chargeableWeight(vo.ActiveWeightKg()),
		LengthCm:       c.lengthCm,
		BreadthCm:      c.breadthCm,
		HeightCm:       c.heightCm,
		DeclaredValue:  declaredValue,
		CODAmount:      codAmount,
		PaymentModeCOD: cod,
	}
}

func clampDimension(cm float64) float64 {
	if cm < minDimensionCm {
		return minDimensionCm
	}
	if cm > maxDimensionCm {
		return maxDimensionCm
	}
	return cm
}
