package ports

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// ProductInfo is the catalog snapshot of a product at order time. Prices and
// weights are copied into the order so later catalog edits never change a
// placed order.
type ProductInfo struct {
	ID                kernel.UUID
	Name              string
	Price             float64
	WeightKg          float64
	VendorID          kernel.UUID
	HasVendor         bool
	ManualDelivery    bool
	AutomaticDelivery bool
}

// CatalogReader resolves product details for cart validation and price
// snapshotting.
type CatalogReader interface {
	// GetProducts fetches catalog info for the given product ids. Every
	// requested id must be present in the result or an error is returned.
	GetProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ProductInfo, error)
}

// CouponInfo is the resolved discount for a coupon code.
type CouponInfo struct {
	Code        string
	Discount    float64
	ExpiresAt   time.Time
	MinPurchase float64
}

// CouponReader resolves coupon codes to discounts. Coupon lookups are
// advisory: a failed lookup yields a zero discount, never a failed order.
type CouponReader interface {
	GetCoupon(ctx context.Context, code string) (CouponInfo, error)
}

// GatewayOrder is the payment gateway's record for a pending prepaid payment.
type GatewayOrder struct {
	ID       string
	Amount   float64
	Currency string
}

// PaymentVerification carries the gateway callback fields to be verified.
type PaymentVerification struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// PaymentGateway is the outbound contract with the payment provider.
type PaymentGateway interface {
	// CreateOrder registers a pending payment with the gateway and returns
	// the gateway order reference the client-side checkout needs.
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (GatewayOrder, error)

	// Verify checks the callback signature. Returns false for a bad
	// signature; an error only for verification being impossible.
	Verify(v PaymentVerification) bool
}

// CarrierError is a structured failure from the shipping carrier. Fan-out
// orchestration inspects it to record failure notes without aborting.
type CarrierError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *CarrierError) Error() string {
	return fmt.Sprintf("carrier %s failed: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// RateRequest asks the carrier for a shipping estimate between two pincodes.
type RateRequest struct {
	PickupPincode   string
	DeliveryPincode string
	WeightKg        float64
	DeclaredValue   float64
	COD             bool
}

// RateQuote is the carrier's shipping estimate.
type RateQuote struct {
	Cost    float64
	EtaDays int
	Courier string
}

// ShipmentItem is one line of a carrier shipment payload.
type ShipmentItem struct {
	Name     string
	SKU      string
	Quantity int
	Price    float64
}

// ShipmentRequest is the payload for creating a carrier shipment for one
// vendor sub-order.
type ShipmentRequest struct {
	SubOrderID      string
	WarehouseID     string
	ConsigneeName   string
	ConsigneePhone  string
	AddressLine1    string
	AddressLine2    string
	City            string
	State           string
	Pincode         string
	Country         string
	Items           []ShipmentItem
	WeightKg        float64
	LengthCm        float64
	BreadthCm       float64
	HeightCm        float64
	DeclaredValue   float64
	CODAmount       float64
	PaymentModeCOD  bool
}

// Shipment is the carrier's confirmation of a created shipment.
type Shipment struct {
	WaybillNo string
	Provider  string
	LabelURL  string
}

// WarehouseRegistration is the carrier payload for registering a vendor
// pickup location.
type WarehouseRegistration struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
	Country string
}

// TrackingInfo is the carrier's current view of a shipment.
type TrackingInfo struct {
	WaybillNo string
	Status    string
	Location  string
}

// CarrierClient is the outbound contract with the shipping carrier. Every
// method makes a single attempt; retry policy belongs to the caller.
type CarrierClient interface {
	CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error)
	Rate(ctx context.Context, req RateRequest) (RateQuote, error)
	CreateShipment(ctx context.Context, req ShipmentRequest) (Shipment, error)
	RegisterWarehouse(ctx context.Context, req WarehouseRegistration) (string, error)
	Track(ctx context.Context, waybillNo string) (TrackingInfo, error)
}

// GeoClient estimates driving distance between two pincodes. Implementations
// must degrade to a fallback estimate instead of failing: distance only
// affects manual shipping price, never order acceptance.
type GeoClient interface {
	DistanceKm(ctx context.Context, fromPincode, toPincode string) float64
}
