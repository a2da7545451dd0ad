package services

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// MinChargeableWeightKg is the weight floor applied to carrier rate lookups
// and shipment payloads. Carriers bill at least half a kilogram.
const MinChargeableWeightKg = 0.5

// ShippingQuote is the resolved shipping decision for one vendor group.
type ShippingQuote struct {
	Method   order.ShippingMethod
	Provider string
	Cost     float64
	EtaDays  int
}

// ShippingResolver resolves the shipping cost, method, and delivery estimate
// for one vendor group.
//
// Resolution order:
//  1. Manual pricing when any product supports it: the vendor-to-customer
//     distance is matched against the vendor's configured distance tiers and
//     the maximum matched cost across manual-capable products wins.
//     Vendor-configured pricing is authoritative, so a resolved manual price
//     always beats an automatic rate.
//  2. Automatic carrier rate using the group's total weight (floored at
//     MinChargeableWeightKg) and total value.
//  3. A configured default cost. Shipping resolution never blocks order
//     creation.
type ShippingResolver struct {
	carrier        ports.CarrierClient
	geo            ports.GeoClient
	defaultCost    float64
	defaultEtaDays int
}

// NewShippingResolver creates a resolver with the degraded-service defaults
// used when neither manual nor carrier pricing resolves.
func NewShippingResolver(carrier ports.CarrierClient, geo ports.GeoClient, defaultCost float64, defaultEtaDays int) (ShippingResolver, error) {
	if carrier == nil {
		return ShippingResolver{}, errs.NewValueIsRequiredError("carrier client")
	}
	if geo == nil {
		return ShippingResolver{}, errs.NewValueIsRequiredError("geo client")
	}

	return ShippingResolver{
		carrier:        carrier,
		geo:            geo,
		defaultCost:    defaultCost,
		defaultEtaDays: defaultEtaDays,
	}, nil
}

// Resolve computes the shipping quote for a vendor group delivered to the
// given pincode. It never fails on external-dependency errors; those degrade
// to the fallback cost.
func (r ShippingResolver) Resolve(
	ctx context.Context,
	vnd *vendor.Vendor,
	group VendorGroup,
	deliveryPincode string,
	cod bool,
) (ShippingQuote, error) {
	if err := vnd.Validate(); err != nil {
		return ShippingQuote{}, err
	}
	if len(group.Items) == 0 {
		return ShippingQuote{}, errs.NewValueIsRequiredError("group items")
	}

	method := resolveMethod(group)

	if group.anyManual() {
		distanceKm := r.geo.DistanceKm(ctx, vnd.Pincode(), deliveryPincode)
		if cost, etaDays, ok := manualPrice(vnd, group, distanceKm); ok {
			return ShippingQuote{
				Method:   method,
				Provider: "vendor",
				Cost:     cost,
				EtaDays:  etaDays,
			}, nil
		}
	}

	if group.anyAutomatic() {
		quote, err := r.carrier.Rate(ctx, ports.RateRequest{
			PickupPincode:   vnd.Pincode(),
			DeliveryPincode: deliveryPincode,
			WeightKg:        chargeableWeight(group.TotalWeightKg()),
			DeclaredValue:   group.TotalValue(),
			COD:             cod,
		})
		if err == nil {
			return ShippingQuote{
				Method:   method,
				Provider: quote.Courier,
				Cost:     quote.Cost,
				EtaDays:  quote.EtaDays,
			}, nil
		}
		slog.Warn("carrier rate lookup failed, falling back to default shipping cost",
			"vendor_id", vnd.ID().String(), "error", err)
	}

	return ShippingQuote{
		Method:  method,
		Cost:    r.defaultCost,
		EtaDays: r.defaultEtaDays,
	}, nil
}

// resolveMethod derives the sub-order's shipping method from the group's
// product capabilities. A group with no declared capability requires manual
// handling.
func resolveMethod(group VendorGroup) order.ShippingMethod {
	manual, automatic := group.anyManual(), group.anyAutomatic()
	switch {
	case manual && automatic:
		return order.ShippingManualAutomatic
	case automatic:
		return order.ShippingAutomatic
	default:
		return order.ShippingManual
	}
}

// manualPrice matches each manual-capable product against the vendor's
// distance tiers and returns the maximum matched cost. Conservative pricing:
// when products disagree, the most expensive match wins.
func manualPrice(vnd *vendor.Vendor, group VendorGroup, distanceKm float64) (float64, int, bool) {
	var (
		cost    float64
		etaDays int
		found   bool
	)
	for _, item := range group.Items {
		if !item.Product.ManualDelivery {
			continue
		}
		r, ok := vnd.MatchDistanceRange(distanceKm)
		if !ok {
			continue
		}
		if !found || r.Cost > cost {
			cost = r.Cost
			etaDays = r.EtaDays
		}
		found = true
	}
	return cost, etaDays, found
}

func chargeableWeight(weightKg float64) float64 {
	if weightKg < MinChargeableWeightKg {
		return MinChargeableWeightKg
	}
	return weightKg
}
