package carrier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/adapters/out/carrier"
	"marketplace/internal/core/ports"
)

func TestClient_Rate_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rates", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cost": 85.5, "eta_days": 4, "courier": "surface"}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, "secret-token", time.Second)

	quote, err := client.Rate(context.Background(), ports.RateRequest{
		PickupPincode:   "560001",
		DeliveryPincode: "110001",
		WeightKg:        1.2,
		DeclaredValue:   800,
		COD:             true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Token secret-token", gotAuth)
	assert.Equal(t, "560001", gotBody["pickup_pincode"])
	assert.Equal(t, true, gotBody["cod"])
	assert.InDelta(t, 85.5, quote.Cost, 0.001)
	assert.Equal(t, 4, quote.EtaDays)
	assert.Equal(t, "surface", quote.Courier)
}

func TestClient_CreateShipment_SendsCODPaymentMode(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/shipments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"waybill_no": "WB123", "provider": "carrier", "label_url": "https://labels/wb123"}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, "t", time.Second)

	shipment, err := client.CreateShipment(context.Background(), ports.ShipmentRequest{
		SubOrderID:     "ODR20250901AB0007-1",
		WarehouseID:    "WH-1",
		ConsigneeName:  "Asha Rao",
		ConsigneePhone: "9876543210",
		AddressLine1:   "12 MG Road",
		City:           "Bengaluru",
		Pincode:        "560001",
		Items:          []ports.ShipmentItem{{Name: "Clay Mug", Quantity: 2, Price: 250}},
		WeightKg:       0.8,
		LengthCm:       20,
		BreadthCm:      15,
		HeightCm:       10,
		DeclaredValue:  500,
		CODAmount:      560,
		PaymentModeCOD: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "WB123", shipment.WaybillNo)
	assert.Equal(t, "carrier", shipment.Provider)
	assert.Equal(t, "COD", gotBody["payment_mode"])
	assert.InDelta(t, 560, gotBody["cod_amount"].(float64), 0.001)
	assert.Equal(t, "ODR20250901AB0007-1", gotBody["order_id"])
}

func TestClient_CreateShipment_PrepaidOmitsCODAmount(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"waybill_no": "WB124", "provider": "carrier"}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, "t", time.Second)

	_, err := client.CreateShipment(context.Background(), ports.ShipmentRequest{
		SubOrderID:     "ODR20250901AB0007-1",
		WarehouseID:    "WH-1",
		ConsigneeName:  "Asha Rao",
		ConsigneePhone: "9876543210",
		AddressLine1:   "12 MG Road",
		City:           "Bengaluru",
		Pincode:        "560001",
		CODAmount:      560,
		PaymentModeCOD: false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Prepaid", gotBody["payment_mode"])
	_, present := gotBody["cod_amount"]
	assert.False(t, present)
}

func TestClient_RegisterWarehouse_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/warehouses", r.URL.Path)
		_, _ = w.Write([]byte(`{"warehouse_id": "WH-777"}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, "t", time.Second)

	id, err := client.RegisterWarehouse(context.Background(), ports.WarehouseRegistration{
		Name:    "Pottery Studio",
		Pincode: "560001",
		Country: "India",
	})
	require.NoError(t, err)
	assert.Equal(t, "WH-777", id)
}

func TestClient_NonSuccessStatus_ReturnsCarrierError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "pincode not serviceable"}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, "t", time.Second)

	_, err := client.RegisterWarehouse(context.Background(), ports.WarehouseRegistration{
		Name:    "Pottery Studio",
		Pincode: "000000",
	})
	require.Error(t, err)

	var carrierErr *ports.CarrierError
	require.ErrorAs(t, err, &carrierErr)
	assert.Equal(t, "register warehouse", carrierErr.Op)
	assert.Equal(t, http.StatusUnprocessableEntity, carrierErr.StatusCode)
	assert.Equal(t, "pincode not serviceable", carrierErr.Message)
}

func TestClient_Timeout_ReturnsCarrierError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"serviceable": true}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, "t", 50*time.Millisecond)

	_, err := client.CheckServiceability(context.Background(), "560001", "110001")
	require.Error(t, err)

	var carrierErr *ports.CarrierError
	require.ErrorAs(t, err, &carrierErr)
	assert.Equal(t, "serviceability", carrierErr.Op)
	assert.Zero(t, carrierErr.StatusCode)
}

func TestClient_Track_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/track/WB123", r.URL.Path)
		_, _ = w.Write([]byte(`{"waybill_no": "WB123", "status": "in_transit", "location": "Bengaluru"}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, "t", time.Second)

	info, err := client.Track(context.Background(), "WB123")
	require.NoError(t, err)
	assert.Equal(t, "in_transit", info.Status)
	assert.Equal(t, "Bengaluru", info.Location)
}
