package order

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ItemStatus is the per-line-item state within a vendor sub-order.
type ItemStatus int

const (
	// ItemActive means the line item counts toward the order totals.
	ItemActive ItemStatus = iota + 1

	// ItemCancelled means the line item was cancelled and is excluded from
	// the order totals.
	ItemCancelled
)

// String returns the wire name of the item status.
func (s ItemStatus) String() string {
	switch s {
	case ItemActive:
		return "active"
	case ItemCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// LineItem is a product line within a vendor sub-order. Name, price, and
// weight are snapshots taken from the catalog at order time and are never
// re-read from the live catalog afterwards.
type LineItem struct {
	productID     kernel.UUID
	name          string
	quantity      int
	itemCost      float64
	weightKg      float64
	customization string
	status        ItemStatus
	cancelledAt   *time.Time
	cancelReason  string
}

// NewLineItem creates an active line item with catalog snapshots.
// Quantity must be positive; the price and weight snapshots must not be
// negative.
func NewLineItem(
	productID kernel.UUID,
	name string,
	quantity int,
	itemCost float64,
	weightKg float64,
	customization string,
) (*LineItem, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if itemCost < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("item cost",
			fmt.Errorf("%f is negative", itemCost))
	}
	if weightKg < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%f is negative", weightKg))
	}

	return &LineItem{
		productID:     productID,
		name:          name,
		quantity:      quantity,
		itemCost:      itemCost,
		weightKg:      weightKg,
		customization: customization,
		status:        ItemActive,
	}, nil
}

// RestoreLineItem reconstructs a line item from persistence without
// re-running creation-time validation.
func RestoreLineItem(
	productID kernel.UUID,
	name string,
	quantity int,
	itemCost float64,
	weightKg float64,
	customization string,
	status ItemStatus,
	cancelledAt *time.Time,
	cancelReason string,
) *LineItem {
	return &LineItem{
		productID:     productID,
		name:          name,
		quantity:      quantity,
		itemCost:      itemCost,
		weightKg:      weightKg,
		customization: customization,
		status:        status,
		cancelledAt:   cancelledAt,
		cancelReason:  cancelReason,
	}
}

// ProductID returns the catalog product reference.
func (i *LineItem) ProductID() kernel.UUID { return i.productID }

// Name returns the product name snapshot.
func (i *LineItem) Name() string { return i.name }

// Quantity returns the ordered quantity.
func (i *LineItem) Quantity() int { return i.quantity }

// ItemCost returns the per-unit price snapshot taken at order time.
func (i *LineItem) ItemCost() float64 { return i.itemCost }

// WeightKg returns the per-unit weight snapshot taken at order time.
func (i *LineItem) WeightKg() float64 { return i.weightKg }

// Customization returns the optional customization payload.
func (i *LineItem) Customization() string { return i.customization }

// Status returns the current item status.
func (i *LineItem) Status() ItemStatus { return i.status }

// CancelledAt returns when the item was cancelled, nil while active.
func (i *LineItem) CancelledAt() *time.Time { return i.cancelledAt }

// CancelReason returns the recorded cancellation reason.
func (i *LineItem) CancelReason() string { return i.cancelReason }

// IsActive reports whether the item still counts toward order totals.
func (i *LineItem) IsActive() bool {
	return i.status == ItemActive
}

// Value returns the line total: price snapshot times quantity.
func (i *LineItem) Value() float64 {
	return i.itemCost * float64(i.quantity)
}

// TotalWeightKg returns the line weight: weight snapshot times quantity.
func (i *LineItem) TotalWeightKg() float64 {
	return i.weightKg * float64(i.quantity)
}

// Cancel marks the item cancelled with a reason and timestamp.
// Rejects if the item is already cancelled.
func (i *LineItem) Cancel(reason string, at time.Time) error {
	if i.status == ItemCancelled {
		return errs.NewValueIsInvalidErrorWithCause("item status",
			fmt.Errorf("product %s is already cancelled", i.productID))
	}

	i.status = ItemCancelled
	i.cancelledAt = &at
	i.cancelReason = reason
	return nil
}
