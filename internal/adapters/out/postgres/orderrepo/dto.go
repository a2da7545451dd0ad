// Package orderrepo persists the order aggregate. The aggregate is stored as
// a single row: scalar fields in regular columns, the owned child collections
// (vendor sub-orders, status history, refund block) as jsonb documents. The
// jsonb field names are a storage contract shared with the read-side queries.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column carries the optimistic-concurrency token checked on
// every update.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          string    `gorm:"uniqueIndex"`
	UserID           uuid.UUID `gorm:"type:uuid;index"`
	Status           int
	PaymentMethod    int
	PaymentStatus    int
	Amount           float64
	Discount         float64
	CouponDiscount   float64
	FinalOrderAmount float64
	Currency         string
	GatewayOrderID   string            `gorm:"index"`
	ShippingAddress  AddressDTO        `gorm:"type:jsonb;serializer:json"`
	StatusHistory    []StatusEventDTO  `gorm:"type:jsonb;serializer:json"`
	Refund           RefundDTO         `gorm:"type:jsonb;serializer:json"`
	ExtraData        map[string]string `gorm:"type:jsonb;serializer:json"`
	VendorOrders     []VendorOrderDTO  `gorm:"type:jsonb;serializer:json"`
	IsDeleted        bool
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the shipping address snapshot stored inside the order row.
type AddressDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// StatusEventDTO is one entry of the order's append-only status history.
type StatusEventDTO struct {
	Status int       `json:"status"`
	At     time.Time `json:"at"`
}

// TrackingEventDTO is one entry of a sub-order's tracking history.
type TrackingEventDTO struct {
	Status int       `json:"status"`
	Note   string    `json:"note"`
	At     time.Time `json:"at"`
}

// LineItemDTO is a product line stored inside a vendor sub-order document.
type LineItemDTO struct {
	ProductID     string     `json:"product_id"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	ItemCost      float64    `json:"item_cost"`
	WeightKg      float64    `json:"weight_kg"`
	Customization string     `json:"customization,omitempty"`
	Status        int        `json:"status"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
}

// VendorOrderDTO is one vendor sub-order document of the order row.
type VendorOrderDTO struct {
	VendorID           string             `json:"vendor_id"`
	SubOrderID         string             `json:"sub_order_id"`
	ShippingMethod     int                `json:"shipping_method"`
	ShippingProvider   string             `json:"shipping_provider"`
	ShippingCost       float64            `json:"shipping_cost"`
	EtaDays            int                `json:"eta_days"`
	WaybillNo          *string            `json:"waybill_no,omitempty"`
	Status             int                `json:"status"`
	Tracking           []TrackingEventDTO `json:"tracking"`
	Note               string             `json:"note,omitempty"`
	ShipmentRetryCount int                `json:"shipment_retry_count"`
	Items              []LineItemDTO      `json:"items"`
}

// RefundDTO is the order's refund bookkeeping document.
type RefundDTO struct {
	Requested bool    `json:"requested"`
	Status    int     `json:"status"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason,omitempty"`
}

// fromDomain converts an order domain aggregate to its database
// representation. The version column is not set here: Add and Update manage
// it explicitly.
func fromDomain(aggregate *order.Order) OrderDTO {
	addr := aggregate.ShippingAddress()

	history := make([]StatusEventDTO, 0, len(aggregate.StatusHistory()))
	for _, ev := range aggregate.StatusHistory() {
		history = append(history, StatusEventDTO{Status: int(ev.Status), At: ev.At})
	}

	vendorOrders := make([]VendorOrderDTO, 0, len(aggregate.VendorOrders()))
	for _, vo := range aggregate.VendorOrders() {
		vendorOrders = append(vendorOrders, vendorOrderFromDomain(vo))
	}

	refund := aggregate.Refund()

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID(),
		UserID:           aggregate.UserID().Bytes(),
		Status:           int(aggregate.Status()),
		PaymentMethod:    int(aggregate.PaymentMethod()),
		PaymentStatus:    int(aggregate.PaymentStatus()),
		Amount:           aggregate.Amount(),
		Discount:         aggregate.Discount(),
		CouponDiscount:   aggregate.CouponDiscount(),
		FinalOrderAmount: aggregate.FinalOrderAmount(),
		Currency:         aggregate.Currency(),
		GatewayOrderID:   aggregate.GatewayOrderID(),
		ShippingAddress: AddressDTO{
			Name:    addr.Name(),
			Phone:   addr.Phone(),
			Line1:   addr.Line1(),
			Line2:   addr.Line2(),
			City:    addr.City(),
			State:   addr.State(),
			Pincode: addr.Pincode(),
			Country: addr.Country(),
		},
		StatusHistory: history,
		Refund: RefundDTO{
			Requested: refund.Requested,
			Status:    int(refund.Status),
			Amount:    refund.Amount,
			Reason:    refund.Reason,
		},
		ExtraData:    aggregate.ExtraData(),
		VendorOrders: vendorOrders,
		IsDeleted:    aggregate.IsDeleted(),
	}
}

func vendorOrderFromDomain(vo *order.VendorOrder) VendorOrderDTO {
	tracking := make([]TrackingEventDTO, 0, len(vo.Tracking()))
	for _, ev := range vo.Tracking() {
		tracking = append(tracking, TrackingEventDTO{Status: int(ev.Status), Note: ev.Note, At: ev.At})
	}

	items := make([]LineItemDTO, 0, len(vo.Items()))
	for _, item := range vo.Items() {
		items = append(items, LineItemDTO{
			ProductID:     item.ProductID().String(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			ItemCost:      item.ItemCost(),
			WeightKg:      item.WeightKg(),
			Customization: item.Customization(),
			Status:        int(item.Status()),
			CancelledAt:   item.CancelledAt(),
			CancelReason:  item.CancelReason(),
		})
	}

	return VendorOrderDTO{
		VendorID:           vo.VendorID().String(),
		SubOrderID:         vo.SubOrderID(),
		ShippingMethod:     int(vo.ShippingMethod()),
		ShippingProvider:   vo.ShippingProvider(),
		ShippingCost:       vo.ShippingCost(),
		EtaDays:            vo.EtaDays(),
		WaybillNo:          vo.WaybillNo(),
		Status:             int(vo.Status()),
		Tracking:           tracking,
		Note:               vo.Note(),
		ShipmentRetryCount: vo.ShipmentRetryCount(),
		Items:              items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including child collections using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	addr, err := order.NewAddress(
		dto.ShippingAddress.Name,
		dto.ShippingAddress.Phone,
		dto.ShippingAddress.Line1,
		dto.ShippingAddress.Line2,
		dto.ShippingAddress.City,
		dto.ShippingAddress.State,
		dto.ShippingAddress.Pincode,
		dto.ShippingAddress.Country,
	)
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusEvent, 0, len(dto.StatusHistory))
	for _, ev := range dto.StatusHistory {
		history = append(history, order.StatusEvent{Status: order.Status(ev.Status), At: ev.At})
	}

	vendorOrders := make([]*order.VendorOrder, 0, len(dto.VendorOrders))
	for _, voDTO := range dto.VendorOrders {
		vo, voErr := vendorOrderToDomain(voDTO)
		if voErr != nil {
			return nil, voErr
		}
		vendorOrders = append(vendorOrders, vo)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:               id,
		OrderID:          dto.OrderID,
		UserID:           userID,
		Amount:           dto.Amount,
		Discount:         dto.Discount,
		CouponDiscount:   dto.CouponDiscount,
		FinalOrderAmount: dto.FinalOrderAmount,
		Currency:         dto.Currency,
		PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:    order.PaymentStatus(dto.PaymentStatus),
		Status:           order.Status(dto.Status),
		StatusHistory:    history,
		ShippingAddress:  addr,
		Refund: order.RefundInfo{
			Requested: dto.Refund.Requested,
			Status:    order.RefundStatus(dto.Refund.Status),
			Amount:    dto.Refund.Amount,
			Reason:    dto.Refund.Reason,
		},
		ExtraData:      dto.ExtraData,
		VendorOrders:   vendorOrders,
		GatewayOrderID: dto.GatewayOrderID,
		IsDeleted:      dto.IsDeleted,
		Version:        dto.Version,
	})
}

func vendorOrderToDomain(dto VendorOrderDTO) (*order.VendorOrder, error) {
	vendorID, err := kernel.UUIDFromString(dto.VendorID)
	if err != nil {
		return nil, err
	}

	tracking := make([]order.TrackingEvent, 0, len(dto.Tracking))
	for _, ev := range dto.Tracking {
		tracking = append(tracking, order.TrackingEvent{
			Status: order.VendorOrderStatus(ev.Status),
			Note:   ev.Note,
			At:     ev.At,
		})
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromString(itemDTO.ProductID)
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, order.RestoreLineItem(
			productID,
			itemDTO.Name,
			itemDTO.Quantity,
			itemDTO.ItemCost,
			itemDTO.WeightKg,
			itemDTO.Customization,
			order.ItemStatus(itemDTO.Status),
			itemDTO.CancelledAt,
			itemDTO.CancelReason,
		))
	}

	return order.RestoreVendorOrder(
		vendorID,
		dto.SubOrderID,
		order.ShippingMethod(dto.ShippingMethod),
		dto.ShippingProvider,
		dto.ShippingCost,
		dto.EtaDays,
		dto.WaybillNo,
		order.VendorOrderStatus(dto.Status),
		tracking,
		dto.Note,
		dto.ShipmentRetryCount,
		items,
	), nil
}
