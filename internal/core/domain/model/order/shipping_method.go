package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ShippingMethod describes how a vendor sub-order is fulfilled.
//
// The combined variants declare both capabilities; they are treated as
// synonyms — manual pricing is preferred when both resolve, because manual
// pricing is vendor-configured and authoritative for cost control, and
// automatic carrier fulfillment remains available as the fallback.
type ShippingMethod int

const (
	// ShippingMethodUnknown represents an invalid or undefined method.
	ShippingMethodUnknown ShippingMethod = iota

	// ShippingManual means the vendor fulfills the sub-order itself with
	// distance-tiered pricing. Automatic shipment creation is skipped.
	ShippingManual

	// ShippingAutomatic means fulfillment goes through the external carrier.
	ShippingAutomatic

	// ShippingAutomaticManual declares both capabilities (manual preferred).
	ShippingAutomaticManual

	// ShippingManualAutomatic declares both capabilities (manual preferred).
	ShippingManualAutomatic
)

func getShippingMethodStrings() map[ShippingMethod]string {
	return map[ShippingMethod]string{
		ShippingMethodUnknown:   "unknown",
		ShippingManual:          "manual",
		ShippingAutomatic:       "automatic",
		ShippingAutomaticManual: "automatic+manual",
		ShippingManualAutomatic: "manual+automatic",
	}
}

// Validate checks if the ShippingMethod value is valid.
func (m ShippingMethod) Validate() error {
	switch m {
	case ShippingManual, ShippingAutomatic, ShippingAutomaticManual, ShippingManualAutomatic:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("shipping method",
			fmt.Errorf("%d is not a valid shipping method", m))
	}
}

// String returns the wire name of the shipping method.
func (m ShippingMethod) String() string {
	if str, ok := getShippingMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// IsManualOnly reports whether the sub-order must be fulfilled manually.
// Manual-only sub-orders are skipped by automatic shipment creation.
func (m ShippingMethod) IsManualOnly() bool {
	return m == ShippingManual
}

// AllowsAutomatic reports whether carrier shipment creation is permitted.
func (m ShippingMethod) AllowsAutomatic() bool {
	return m == ShippingAutomatic || m == ShippingAutomaticManual || m == ShippingManualAutomatic
}
