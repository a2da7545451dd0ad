package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CreateOrderResponse carries the identifiers the caller needs after a
// successful order placement.
type CreateOrderResponse struct {
	ID               kernel.UUID
	OrderID          string
	GatewayOrderID   string
	Status           string
	Amount           float64
	CouponDiscount   float64
	FinalOrderAmount float64
	Currency         string
}

// CreateOrderCommandHandler handles the business logic for order placement.
//
// The whole creation is one unit of work: the daily sequence increment, the
// vendor lookups, and the order insert commit or roll back together, so an
// order never exists without a valid id and an aborted creation never burns
// a sequence number.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, coupons, gateway, resolver)
//	resp, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// resp.OrderID is the business id shown to the customer
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	catalog    ports.CatalogReader
	coupons    ports.CouponReader
	gateway    ports.PaymentGateway
	splitter   services.VendorSplitter
	resolver   services.ShippingResolver
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	catalog ports.CatalogReader,
	coupons ports.CouponReader,
	gateway ports.PaymentGateway,
	resolver services.ShippingResolver,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		coupons:    coupons,
		gateway:    gateway,
		splitter:   services.NewVendorSplitter(),
		resolver:   resolver,
	}
}

// Handle processes the order placement command.
//
// Steps: resolve catalog snapshots, split the cart by vendor, resolve a
// shipping quote per group, apply the coupon leniently, generate the daily
// sequential order id, register a gateway order for prepaid payments, and
// persist the aggregate. Any failure rolls everything back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResponse{}, err
	}

	productIDs := make([]kernel.UUID, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := h.catalog.GetProducts(ctx, productIDs)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	groups, err := h.splitter.Split(cmd.Items(), products)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cod := cmd.PaymentMethod() == order.PaymentMethodCOD
	vendorOrders := make([]*order.VendorOrder, 0, len(groups))
	var itemsTotal, shippingTotal float64

	for _, group := range groups {
		vnd, err := uow.VendorRepository().Get(ctx, group.VendorID)
		if err != nil {
			return CreateOrderResponse{}, err
		}

		quote, err := h.resolver.Resolve(ctx, vnd, group, cmd.ShippingAddress().Pincode(), cod)
		if err != nil {
			return CreateOrderResponse{}, err
		}

		items := make([]*order.LineItem, 0, len(group.Items))
		for _, gi := range group.Items {
			item, err := order.NewLineItem(gi.Product.ID, gi.Product.Name, gi.Quantity,
				gi.Product.Price, gi.Product.WeightKg, gi.Customization)
			if err != nil {
				return CreateOrderResponse{}, err
			}
			items = append(items, item)
			itemsTotal += gi.Product.Price * float64(gi.Quantity)
		}

		vo, err := order.NewVendorOrder(group.VendorID, items, quote.Method,
			quote.Provider, quote.Cost, quote.EtaDays)
		if err != nil {
			return CreateOrderResponse{}, err
		}
		vendorOrders = append(vendorOrders, vo)
		shippingTotal += quote.Cost
	}

	couponDiscount := h.resolveCouponDiscount(ctx, cmd.CouponCode(), itemsTotal)

	now := time.Now()
	dateKey := order.DateKey(now)
	sequence, err := uow.SequenceRepository().Next(ctx, dateKey)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	orderID, err := order.ComposeOrderID(dateKey, sequence)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	var gatewayOrderID string
	if !cod {
		finalAmount := itemsTotal + shippingTotal - couponDiscount
		if finalAmount < 0 {
			finalAmount = 0
		}
		currency := cmd.Currency()
		if currency == "" {
			currency = "INR"
		}
		gatewayOrder, err := h.gateway.CreateOrder(ctx, finalAmount, currency, orderID)
		if err != nil {
			return CreateOrderResponse{}, err
		}
		gatewayOrderID = gatewayOrder.ID
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), orderID, cmd.UserID(),
		cmd.PaymentMethod(), cmd.ShippingAddress(), vendorOrders,
		couponDiscount, cmd.Currency(), gatewayOrderID)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	return CreateOrderResponse{
		ID:               aggregate.ID(),
		OrderID:          aggregate.OrderID(),
		GatewayOrderID:   aggregate.GatewayOrderID(),
		Status:           aggregate.Status().String(),
		Amount:           aggregate.Amount(),
		CouponDiscount:   aggregate.CouponDiscount(),
		FinalOrderAmount: aggregate.FinalOrderAmount(),
		Currency:         aggregate.Currency(),
	}, nil
}

// resolveCouponDiscount applies the coupon leniently: an unknown, expired, or
// under-threshold coupon drops the discount instead of failing the order.
func (h *CreateOrderCommandHandler) resolveCouponDiscount(ctx context.Context, code string, itemsTotal float64) float64 {
	if code == "" {
		return 0
	}

	coupon, err := h.coupons.GetCoupon(ctx, code)
	if err != nil {
		slog.Warn("coupon lookup failed, dropping discount", "code", code, "error", err)
		return 0
	}
	if !coupon.ExpiresAt.IsZero() && coupon.ExpiresAt.Before(time.Now()) {
		slog.Info("coupon expired, dropping discount", "code", code)
		return 0
	}
	if itemsTotal < coupon.MinPurchase {
		slog.Info("order below coupon minimum purchase, dropping discount",
			"code", code, "items_total", itemsTotal, "min_purchase", coupon.MinPurchase)
		return 0
	}
	return coupon.Discount
}
