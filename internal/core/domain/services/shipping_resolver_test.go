package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/vendor"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

func newTestVendor(t *testing.T, ranges []vendor.DistanceRange) *vendor.Vendor {
	t.Helper()
	v, err := vendor.NewVendor(kernel.NewUUID(), "Acme Crafts", "560001", ranges)
	require.NoError(t, err)
	return v
}

func groupOf(items ...services.GroupItem) services.VendorGroup {
	return services.VendorGroup{VendorID: kernel.NewUUID(), Items: items}
}

func manualItem(price, weight float64, qty int) services.GroupItem {
	return services.GroupItem{
		Product: ports.ProductInfo{
			ID: kernel.NewUUID(), Name: "manual product", Price: price, WeightKg: weight,
			ManualDelivery: true,
		},
		Quantity: qty,
	}
}

func automaticItem(price, weight float64, qty int) services.GroupItem {
	return services.GroupItem{
		Product: ports.ProductInfo{
			ID: kernel.NewUUID(), Name: "automatic product", Price: price, WeightKg: weight,
			AutomaticDelivery: true,
		},
		Quantity: qty,
	}
}

func TestResolveManualDistanceTier(t *testing.T) {
	ctx := context.Background()
	vnd := newTestVendor(t, []vendor.DistanceRange{{MinKm: 0, MaxKm: 20, Cost: 40, EtaDays: 2}})
	carrier := new(MockCarrierClient)

	resolver, err := services.NewShippingResolver(carrier, stubGeo{km: 10}, 99, 7)
	require.NoError(t, err)

	quote, err := resolver.Resolve(ctx, vnd, groupOf(manualItem(500, 1, 1)), "110001", false)
	require.NoError(t, err)

	assert.Equal(t, order.ShippingManual, quote.Method)
	assert.InDelta(t, 40, quote.Cost, 1e-9)
	assert.Equal(t, 2, quote.EtaDays)
	assert.Equal(t, "vendor", quote.Provider)
	carrier.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything)
}

func TestResolveManualPreferredOverAutomatic(t *testing.T) {
	ctx := context.Background()
	vnd := newTestVendor(t, []vendor.DistanceRange{{MinKm: 0, MaxKm: 20, Cost: 40, EtaDays: 2}})
	carrier := new(MockCarrierClient)

	resolver, err := services.NewShippingResolver(carrier, stubGeo{km: 10}, 99, 7)
	require.NoError(t, err)

	group := groupOf(manualItem(500, 1, 1), automaticItem(300, 0.2, 1))
	quote, err := resolver.Resolve(ctx, vnd, group, "110001", false)
	require.NoError(t, err)

	assert.Equal(t, order.ShippingManualAutomatic, quote.Method)
	assert.InDelta(t, 40, quote.Cost, 1e-9)
	carrier.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything)
}

func TestResolveAutomaticRate(t *testing.T) {
	ctx := context.Background()
	vnd := newTestVendor(t, nil)
	carrier := new(MockCarrierClient)
	carrier.On("Rate", mock.Anything, ports.RateRequest{
		PickupPincode:   "560001",
		DeliveryPincode: "110001",
		WeightKg:        1.2,
		DeclaredValue:   900,
		COD:             true,
	}).Return(ports.RateQuote{Cost: 85, EtaDays: 4, Courier: "delhivery"}, nil).Once()

	resolver, err := services.NewShippingResolver(carrier, stubGeo{km: 10}, 99, 7)
	require.NoError(t, err)

	quote, err := resolver.Resolve(ctx, vnd, groupOf(automaticItem(900, 1.2, 1)), "110001", true)
	require.NoError(t, err)

	assert.Equal(t, order.ShippingAutomatic, quote.Method)
	assert.InDelta(t, 85, quote.Cost, 1e-9)
	assert.Equal(t, 4, quote.EtaDays)
	assert.Equal(t, "delhivery", quote.Provider)
	carrier.AssertExpectations(t)
}

func TestResolveAppliesWeightFloor(t *testing.T) {
	ctx := context.Background()
	vnd := newTestVendor(t, nil)
	carrier := new(MockCarrierClient)
	carrier.On("Rate", mock.Anything, mock.MatchedBy(func(req ports.RateRequest) bool {
		return req.WeightKg == services.MinChargeableWeightKg
	})).Return(ports.RateQuote{Cost: 30, EtaDays: 3, Courier: "delhivery"}, nil).Once()

	resolver, err := services.NewShippingResolver(carrier, stubGeo{km: 10}, 99, 7)
	require.NoError(t, err)

	_, err = resolver.Resolve(ctx, vnd, groupOf(automaticItem(100, 0.1, 1)), "110001", false)
	require.NoError(t, err)
	carrier.AssertExpectations(t)
}

func TestResolveManualFallsBackToAutomaticWhenNoTierMatches(t *testing.T) {
	ctx := context.Background()
	vnd := newTestVendor(t, []vendor.DistanceRange{{MinKm: 0, MaxKm: 20, Cost: 40, EtaDays: 2}})
	carrier := new(MockCarrierClient)
	carrier.On("Rate", mock.Anything, mock.Anything).
		Return(ports.RateQuote{Cost: 120, EtaDays: 5, Courier: "delhivery"}, nil).Once()

	resolver, err := services.NewShippingResolver(carrier, stubGeo{km: 400}, 99, 7)
	require.NoError(t, err)

	group := groupOf(manualItem(500, 1, 1), automaticItem(300, 0.2, 1))
	quote, err := resolver.Resolve(ctx, vnd, group, "110001", false)
	require.NoError(t, err)

	assert.InDelta(t, 120, quote.Cost, 1e-9)
	carrier.AssertExpectations(t)
}

func TestResolveDegradesToDefaultCost(t *testing.T) {
	ctx := context.Background()
	vnd := newTestVendor(t, nil)
	carrier := new(MockCarrierClient)
	carrier.On("Rate", mock.Anything, mock.Anything).
		Return(ports.RateQuote{}, &ports.CarrierError{Op: "rate", StatusCode: 503, Message: "unavailable"}).Once()

	resolver, err := services.NewShippingResolver(carrier, stubGeo{km: 10}, 99, 7)
	require.NoError(t, err)

	quote, err := resolver.Resolve(ctx, vnd, groupOf(automaticItem(900, 1.2, 1)), "110001", false)
	require.NoError(t, err)

	assert.InDelta(t, 99, quote.Cost, 1e-9)
	assert.Equal(t, 7, quote.EtaDays)
	assert.Empty(t, quote.Provider)
	carrier.AssertExpectations(t)
}

func TestResolveManualOnlyGroupWithoutTierUsesDefault(t *testing.T) {
	ctx := context.Background()
	vnd := newTestVendor(t, nil)
	carrier := new(MockCarrierClient)

	resolver, err := services.NewShippingResolver(carrier, stubGeo{km: 10}, 99, 7)
	require.NoError(t, err)

	quote, err := resolver.Resolve(ctx, vnd, groupOf(manualItem(500, 1, 1)), "110001", false)
	require.NoError(t, err)

	assert.Equal(t, order.ShippingManual, quote.Method)
	assert.InDelta(t, 99, quote.Cost, 1e-9)
	carrier.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything)
}
