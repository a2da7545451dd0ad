package order

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// VendorOrder is one vendor's share of an order: the line items owned by a
// single vendor plus the shipping resolution and tracking state for that
// group. It is owned by the Order aggregate and has no lifecycle of its own.
//
// The vendor reference is weak: it is used for lookups only, and deleting a
// vendor never cascades into placed orders.
type VendorOrder struct {
	vendorID           kernel.UUID
	subOrderID         string
	shippingMethod     ShippingMethod
	shippingProvider   string
	shippingCost       float64
	etaDays            int
	waybillNo          *string
	status             VendorOrderStatus
	tracking           []TrackingEvent
	note               string
	shipmentRetryCount int
	items              []*LineItem
}

// NewVendorOrder creates a vendor sub-order in pending status with its
// resolved shipping quote. The sub-order id is assigned later, once the
// parent order id exists (see assignSubOrderID).
func NewVendorOrder(
	vendorID kernel.UUID,
	items []*LineItem,
	shippingMethod ShippingMethod,
	shippingProvider string,
	shippingCost float64,
	etaDays int,
) (*VendorOrder, error) {
	if err := vendorID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("line items")
	}
	if err := shippingMethod.Validate(); err != nil {
		return nil, err
	}
	if shippingCost < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipping cost",
			fmt.Errorf("%f is negative", shippingCost))
	}

	return &VendorOrder{
		vendorID:         vendorID,
		shippingMethod:   shippingMethod,
		shippingProvider: shippingProvider,
		shippingCost:     shippingCost,
		etaDays:          etaDays,
		status:           VendorOrderPending,
		items:            items,
	}, nil
}

// RestoreVendorOrder reconstructs a vendor sub-order from persistence.
func RestoreVendorOrder(
	vendorID kernel.UUID,
	subOrderID string,
	shippingMethod ShippingMethod,
	shippingProvider string,
	shippingCost float64,
	etaDays int,
	waybillNo *string,
	status VendorOrderStatus,
	tracking []TrackingEvent,
	note string,
	shipmentRetryCount int,
	items []*LineItem,
) *VendorOrder {
	return &VendorOrder{
		vendorID:           vendorID,
		subOrderID:         subOrderID,
		shippingMethod:     shippingMethod,
		shippingProvider:   shippingProvider,
		shippingCost:       shippingCost,
		etaDays:            etaDays,
		waybillNo:          waybillNo,
		status:             status,
		tracking:           tracking,
		note:               note,
		shipmentRetryCount: shipmentRetryCount,
		items:              items,
	}
}

// VendorID returns the weak reference to the owning vendor.
func (v *VendorOrder) VendorID() kernel.UUID { return v.vendorID }

// SubOrderID returns the sub-order identifier, empty until the parent order
// id has been generated.
func (v *VendorOrder) SubOrderID() string { return v.subOrderID }

// ShippingMethod returns the resolved shipping method.
func (v *VendorOrder) ShippingMethod() ShippingMethod { return v.shippingMethod }

// ShippingProvider returns the resolved shipping provider name.
func (v *VendorOrder) ShippingProvider() string { return v.shippingProvider }

// ShippingCost returns the resolved shipping cost for this vendor group.
func (v *VendorOrder) ShippingCost() float64 { return v.shippingCost }

// EtaDays returns the estimated delivery days from the shipping resolution.
func (v *VendorOrder) EtaDays() int { return v.etaDays }

// WaybillNo returns the carrier tracking number, nil until a shipment exists.
func (v *VendorOrder) WaybillNo() *string { return v.waybillNo }

// Status returns the current sub-order status.
func (v *VendorOrder) Status() VendorOrderStatus { return v.status }

// Tracking returns the append-only tracking history.
func (v *VendorOrder) Tracking() []TrackingEvent { return v.tracking }

// Note returns the last failure or explanation recorded on the sub-order.
func (v *VendorOrder) Note() string { return v.note }

// ShipmentRetryCount returns how many shipment creation attempts failed.
func (v *VendorOrder) ShipmentRetryCount() int { return v.shipmentRetryCount }

// Items returns the owned line items.
func (v *VendorOrder) Items() []*LineItem { return v.items }

// Item finds an owned line item by product id.
func (v *VendorOrder) Item(productID kernel.UUID) (*LineItem, error) {
	for _, item := range v.items {
		if item.ProductID().IsEqual(productID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("productId", productID.String())
}

// ActiveItemsValue returns the sum of active line totals.
func (v *VendorOrder) ActiveItemsValue() float64 {
	var total float64
	for _, item := range v.items {
		if item.IsActive() {
			total += item.Value()
		}
	}
	return total
}

// ActiveWeightKg returns the summed weight of active line items.
func (v *VendorOrder) ActiveWeightKg() float64 {
	var total float64
	for _, item := range v.items {
		if item.IsActive() {
			total += item.TotalWeightKg()
		}
	}
	return total
}

// AllItemsCancelled reports whether every owned line item is cancelled.
func (v *VendorOrder) AllItemsCancelled() bool {
	for _, item := range v.items {
		if item.IsActive() {
			return false
		}
	}
	return true
}

// assignSubOrderID derives and sets the sub-order id from the parent order id
// and the 1-based vendor index. Called by the aggregate once the parent's
// sequential id exists.
func (v *VendorOrder) assignSubOrderID(orderID string, vendorIndex int) error {
	subOrderID, err := ComposeSubOrderID(orderID, vendorIndex)
	if err != nil {
		return err
	}
	v.subOrderID = subOrderID
	return nil
}

// setStatus transitions the sub-order and appends exactly one tracking entry.
// Every status change funnels through here to keep the history append-only
// and complete.
func (v *VendorOrder) setStatus(status VendorOrderStatus, note string, at time.Time) {
	v.status = status
	v.note = note
	v.tracking = append(v.tracking, TrackingEvent{Status: status, Note: note, At: at})
}

// appendNote records a tracking entry without changing the status.
func (v *VendorOrder) appendNote(note string, at time.Time) {
	v.note = note
	v.tracking = append(v.tracking, TrackingEvent{Status: v.status, Note: note, At: at})
}

// confirm moves the sub-order to confirmed after payment capture. Sub-orders
// already past pending (a shipment created before confirmation, a cancelled
// line) keep their status and only record the note.
func (v *VendorOrder) confirm(note string, at time.Time) {
	if v.status != VendorOrderPending {
		v.appendNote(note, at)
		return
	}
	v.setStatus(VendorOrderConfirmed, note, at)
}

// ship records the carrier waybill and moves the sub-order to shipped.
// A sub-order can only reach shipped with a non-empty waybill.
func (v *VendorOrder) ship(waybillNo, provider string, at time.Time) error {
	if waybillNo == "" {
		return errs.NewValueIsRequiredError("waybill number")
	}

	newStatus, err := v.status.Ship()
	if err != nil {
		return err
	}

	v.waybillNo = &waybillNo
	if provider != "" {
		v.shippingProvider = provider
	}
	v.setStatus(newStatus, fmt.Sprintf("shipment created, waybill %s", waybillNo), at)
	return nil
}

// markFulfillmentPending records a failed or skipped shipment attempt.
// The sub-order returns to pending with the explanation; failed attempts
// increment the retry counter.
func (v *VendorOrder) markFulfillmentPending(note string, countRetry bool, at time.Time) {
	if countRetry {
		v.shipmentRetryCount++
	}
	v.setStatus(VendorOrderPending, note, at)
}

// cancel cancels the sub-order and every still-active line item under it.
func (v *VendorOrder) cancel(reason string, at time.Time) error {
	if err := v.status.CanCancel(); err != nil {
		return err
	}

	for _, item := range v.items {
		if item.IsActive() {
			if err := item.Cancel(reason, at); err != nil {
				return err
			}
		}
	}

	v.setStatus(VendorOrderCancelled, reason, at)
	return nil
}

// cancelItem cancels a single line item and recomputes the sub-order status:
// when the last active item goes, the sub-order becomes cancelled. The
// upward propagation is computed, never set directly by a caller.
func (v *VendorOrder) cancelItem(productID kernel.UUID, reason string, at time.Time) error {
	if v.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("vendor order status",
			fmt.Errorf("%s does not allow item cancellation", v.status))
	}

	item, err := v.Item(productID)
	if err != nil {
		return err
	}
	if err = item.Cancel(reason, at); err != nil {
		return err
	}

	if v.AllItemsCancelled() {
		v.setStatus(VendorOrderCancelled, "all products cancelled", at)
	} else {
		v.appendNote(fmt.Sprintf("product %s cancelled: %s", productID, reason), at)
	}
	return nil
}
