// Package carrier implements the shipping carrier client over its JSON HTTP
// API. Every call is a single attempt; failures come back as structured
// CarrierError values the fan-out orchestration records without aborting.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"marketplace/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the shipping carrier's HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a carrier client. A zero timeout falls back to ten
// seconds; carrier calls sit on the payment confirmation path and must not
// hang it.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type serviceabilityResponse struct {
	Serviceable bool `json:"serviceable"`
}

// CheckServiceability reports whether the carrier delivers between the two
// pincodes.
func (c *Client) CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error) {
	q := url.Values{}
	q.Set("pickup_pincode", pickupPincode)
	q.Set("delivery_pincode", deliveryPincode)

	var resp serviceabilityResponse
	if err := c.get(ctx, "serviceability", "/serviceability?"+q.Encode(), &resp); err != nil {
		return false, err
	}

	return resp.Serviceable, nil
}

type rateRequest struct {
	PickupPincode   string  `json:"pickup_pincode"`
	DeliveryPincode string  `json:"delivery_pincode"`
	WeightKg        float64 `json:"weight_kg"`
	DeclaredValue   float64 `json:"declared_value"`
	COD             bool    `json:"cod"`
}

type rateResponse struct {
	Cost    float64 `json:"cost"`
	EtaDays int     `json:"eta_days"`
	Courier string  `json:"courier"`
}

// Rate fetches the carrier's shipping estimate for a vendor group.
func (c *Client) Rate(ctx context.Context, req ports.RateRequest) (ports.RateQuote, error) {
	var resp rateResponse
	err := c.post(ctx, "rate", "/rates", rateRequest{
		PickupPincode:   req.PickupPincode,
		DeliveryPincode: req.DeliveryPincode,
		WeightKg:        req.WeightKg,
		DeclaredValue:   req.DeclaredValue,
		COD:             req.COD,
	}, &resp)
	if err != nil {
		return ports.RateQuote{}, err
	}

	return ports.RateQuote{
		Cost:    resp.Cost,
		EtaDays: resp.EtaDays,
		Courier: resp.Courier,
	}, nil
}

type shipmentItem struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type shipmentRequest struct {
	OrderID        string         `json:"order_id"`
	WarehouseID    string         `json:"warehouse_id"`
	ConsigneeName  string         `json:"consignee_name"`
	ConsigneePhone string         `json:"consignee_phone"`
	AddressLine1   string         `json:"address_line1"`
	AddressLine2   string         `json:"address_line2,omitempty"`
	City           string         `json:"city"`
	State          string         `json:"state,omitempty"`
	Pincode        string         `json:"pincode"`
	Country        string         `json:"country,omitempty"`
	Items          []shipmentItem `json:"items"`
	WeightKg       float64        `json:"weight_kg"`
	LengthCm       float64        `json:"length_cm"`
	BreadthCm      float64        `json:"breadth_cm"`
	HeightCm       float64        `json:"height_cm"`
	DeclaredValue  float64        `json:"declared_value"`
	PaymentMode    string         `json:"payment_mode"`
	CODAmount      float64        `json:"cod_amount,omitempty"`
}

type shipmentResponse struct {
	WaybillNo string `json:"waybill_no"`
	Provider  string `json:"provider"`
	LabelURL  string `json:"label_url"`
}

// CreateShipment books a shipment for one vendor sub-order and returns the
// carrier waybill.
func (c *Client) CreateShipment(ctx context.Context, req ports.ShipmentRequest) (ports.Shipment, error) {
	items := make([]shipmentItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, shipmentItem{
			Name:     item.Name,
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	paymentMode := "Prepaid"
	var codAmount float64
	if req.PaymentModeCOD {
		paymentMode = "COD"
		codAmount = req.CODAmount
	}

	var resp shipmentResponse
	err := c.post(ctx, "create shipment", "/shipments", shipmentRequest{
		OrderID:        req.SubOrderID,
		WarehouseID:    req.WarehouseID,
		ConsigneeName:  req.ConsigneeName,
		ConsigneePhone: req.ConsigneePhone,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		State:          req.State,
		Pincode:        req.Pincode,
		Country:        req.Country,
		Items:          items,
		WeightKg:       req.WeightKg,
		LengthCm:       req.LengthCm,
		BreadthCm:      req.BreadthCm,
		HeightCm:       req.HeightCm,
		DeclaredValue:  req.DeclaredValue,
		PaymentMode:    paymentMode,
		CODAmount:      codAmount,
	}, &resp)
	if err != nil {
		return ports.Shipment{}, err
	}

	return ports.Shipment{
		WaybillNo: resp.WaybillNo,
		Provider:  resp.Provider,
		LabelURL:  resp.LabelURL,
	}, nil
}

type warehouseRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

type warehouseResponse struct {
	WarehouseID string `json:"warehouse_id"`
}

// RegisterWarehouse registers a vendor pickup location and returns the
// carrier-issued warehouse identifier.
func (c *Client) RegisterWarehouse(ctx context.Context, req ports.WarehouseRegistration) (string, error) {
	var resp warehouseResponse
	err := c.post(ctx, "register warehouse", "/warehouses", warehouseRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
		Country: req.Country,
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.WarehouseID, nil
}

type trackResponse struct {
	WaybillNo string `json:"waybill_no"`
	Status    string `json:"status"`
	Location  string `json:"location"`
}

// Track fetches the carrier's current view of a shipment.
func (c *Client) Track(ctx context.Context, waybillNo string) (ports.TrackingInfo, error) {
	var resp trackResponse
	if err := c.get(ctx, "track", "/track/"+url.PathEscape(waybillNo), &resp); err != nil {
		return ports.TrackingInfo{}, err
	}

	return ports.TrackingInfo{
		WaybillNo: resp.WaybillNo,
		Status:    resp.Status,
		Location:  resp.Location,
	}, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(op, req, out)
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ports.CarrierError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &ports.CarrierError{Op: op, StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ports.CarrierError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if err = json.Unmarshal(body, out); err != nil {
		return &ports.CarrierError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", err),
		}
	}

	return nil
}

// errorMessage extracts the carrier's error field when present, otherwise
// returns the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(body)
}
