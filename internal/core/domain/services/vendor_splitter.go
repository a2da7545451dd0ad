package services

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrProductNotShippable is returned when a cart product cannot be fulfilled:
// it is missing from the catalog or has no owning vendor. The whole order is
// rejected before any persistence happens.
var ErrProductNotShippable = errors.New("product is not shippable")

// CartItem is one requested line of an incoming cart.
type CartItem struct {
	ProductID     kernel.UUID
	Quantity      int
	Customization string
}

// GroupItem is a cart line resolved against the catalog: quantity plus the
// price/weight/vendor snapshot taken at this instant. Later catalog edits
// never change it.
type GroupItem struct {
	Product       ports.ProductInfo
	Quantity      int
	Customization string
}

// VendorGroup is the slice of a cart owned by a single vendor. Groups are
// ordered by first appearance of the vendor in the cart, which fixes the
// 1-based vendor index used for sub-order ids.
type VendorGroup struct {
	VendorID kernel.UUID
	Items    []GroupItem
}

// TotalWeightKg sums the group's item weights across quantities.
func (g VendorGroup) TotalWeightKg() float64 {
	var total float64
	for _, item := range g.Items {
		total += item.Product.WeightKg * float64(item.Quantity)
	}
	return total
}

// TotalValue sums the group's snapshotted prices across quantities.
func (g VendorGroup) TotalValue() float64 {
	var total float64
	for _, item := range g.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// anyManual reports whether any product in the group is configured for
// vendor-managed manual delivery.
func (g VendorGroup) anyManual() bool {
	for _, item := range g.Items {
		if item.Product.ManualDelivery {
			return true
		}
	}
	return false
}

// anyAutomatic reports whether any product in the group permits carrier
// fulfillment.
func (g VendorGroup) anyAutomatic() bool {
	for _, item := range g.Items {
		if item.Product.AutomaticDelivery {
			return true
		}
	}
	return false
}

// VendorSplitter partitions a cart by owning vendor, snapshotting catalog
// prices into the groups.
//
// Business rules:
//   - Every product must exist in the catalog snapshot and have a vendor
//     assignment; a violation aborts the whole cart (ErrProductNotShippable).
//   - Group order follows first appearance in the cart, so sub-order ids are
//     deterministic for a given cart.
type VendorSplitter struct{}

// NewVendorSplitter creates a new VendorSplitter instance.
func NewVendorSplitter() VendorSplitter {
	return VendorSplitter{}
}

// Split groups the cart items by their owning vendor using the given catalog
// snapshot.
func (VendorSplitter) Split(items []CartItem, products map[kernel.UUID]ports.ProductInfo) ([]VendorGroup, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("cart items")
	}

	groups := make([]VendorGroup, 0)
	indexByVendor := make(map[kernel.UUID]int)

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0 for product %s", item.Quantity, item.ProductID))
		}

		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s not found in catalog", ErrProductNotShippable, item.ProductID)
		}
		if !product.HasVendor {
			return nil, fmt.Errorf("%w: product %s has no vendor assignment", ErrProductNotShippable, item.ProductID)
		}

		idx, seen := indexByVendor[product.VendorID]
		if !seen {
			idx = len(groups)
			indexByVendor[product.VendorID] = idx
			groups = append(groups, VendorGroup{VendorID: product.VendorID})
		}

		groups[idx].Items = append(groups[idx].Items, GroupItem{
			Product:       product,
			Quantity:      item.Quantity,
			Customization: item.Customization,
		})
	}

	return groups, nil
}
