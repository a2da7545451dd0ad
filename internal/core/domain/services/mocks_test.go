package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/core/ports"
)

type MockCarrierClient struct{ mock.Mock }

func (m *MockCarrierClient) CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error) {
	args := m.Called(ctx, pickupPincode, deliveryPincode)
	return args.Bool(0), args.Error(1)
}

func (m *MockCarrierClient) Rate(ctx context.Context, req ports.RateRequest) (ports.RateQuote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.RateQuote), args.Error(1)
}

func (m *MockCarrierClient) CreateShipment(ctx context.Context, req ports.ShipmentRequest) (ports.Shipment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.Shipment), args.Error(1)
}

func (m *MockCarrierClient) RegisterWarehouse(ctx context.Context, req ports.WarehouseRegistration) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockCarrierClient) Track(ctx context.Context, waybillNo string) (ports.TrackingInfo, error) {
	args := m.Called(ctx, waybillNo)
	return args.Get(0).(ports.TrackingInfo), args.Error(1)
}

// stubGeo always reports the same distance.
type stubGeo struct{ km float64 }

func (s stubGeo) DistanceKm(_ context.Context, _, _ string) float64 { return s.km }
