// Package http exposes the order and warehouse use cases over a JSON API.
// Handlers bind the request, construct the command or query, and translate
// application errors to HTTP status codes; no business logic lives here.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	confirmPaymentHandler        commands.ConfirmPaymentCommandHandler
	cancelOrderHandler           commands.CancelOrderCommandHandler
	cancelVendorOrderHandler     commands.CancelVendorOrderCommandHandler
	cancelProductHandler         commands.CancelProductCommandHandler
	registerWarehouseHandler     commands.RegisterWarehouseCommandHandler
	resetWarehouseRetriesHandler commands.ResetWarehouseRetriesCommandHandler

	// Query handlers
	getOrderHandler      queries.GetOrderQueryHandler
	getUserOrdersHandler queries.GetUserOrdersQueryHandler
	getWarehouseHandler  queries.GetWarehouseStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	cancelVendorOrderHandler commands.CancelVendorOrderCommandHandler,
	cancelProductHandler commands.CancelProductCommandHandler,
	registerWarehouseHandler commands.RegisterWarehouseCommandHandler,
	resetWarehouseRetriesHandler commands.ResetWarehouseRetriesCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	getWarehouseHandler queries.GetWarehouseStatusQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		confirmPaymentHandler:        confirmPaymentHandler,
		cancelOrderHandler:           cancelOrderHandler,
		cancelVendorOrderHandler:     cancelVendorOrderHandler,
		cancelProductHandler:         cancelProductHandler,
		registerWarehouseHandler:     registerWarehouseHandler,
		resetWarehouseRetriesHandler: resetWarehouseRetriesHandler,
		getOrderHandler:              getOrderHandler,
		getUserOrdersHandler:         getUserOrdersHandler,
		getWarehouseHandler:          getWarehouseHandler,
	}
}

// RegisterRoutes wires all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetUserOrders)
	v1.GET("/orders/:orderID", s.GetOrder)
	v1.POST("/orders/:orderID/cancel", s.CancelOrder)
	v1.POST("/orders/:orderID/vendor-orders/:subOrderID/cancel", s.CancelVendorOrder)
	v1.POST("/orders/:orderID/vendor-orders/:subOrderID/items/:productID/cancel", s.CancelProduct)
	v1.POST("/payments/confirm", s.ConfirmPayment)
	v1.POST("/vendors/:vendorID/warehouse/retry", s.RetryWarehouseRegistration)
	v1.POST("/vendors/:vendorID/warehouse/reset", s.ResetWarehouseRetries)
	v1.GET("/vendors/:vendorID/warehouse", s.GetWarehouseStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	address, err := order.NewAddress(
		req.ShippingAddress.Name,
		req.ShippingAddress.Phone,
		req.ShippingAddress.Line1,
		req.ShippingAddress.Line2,
		req.ShippingAddress.City,
		req.ShippingAddress.State,
		req.ShippingAddress.Pincode,
		req.ShippingAddress.Country,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	items := make([]services.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return badRequest(ctx, "Invalid product id")
		}
		items = append(items, services.CartItem{
			ProductID:     productID,
			Quantity:      item.Quantity,
			Customization: item.Customization,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		userID, items, paymentMethod, address, req.CouponCode, req.Currency)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:               resp.ID.String(),
		OrderID:          resp.OrderID,
		GatewayOrderID:   resp.GatewayOrderID,
		Status:           resp.Status,
		Amount:           resp.Amount,
		CouponDiscount:   resp.CouponDiscount,
		FinalOrderAmount: resp.FinalOrderAmount,
		Currency:         resp.Currency,
	})
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromView(view))
}

// GetUserOrders handles GET /api/v1/orders?userId= - lists a user's orders,
// newest first.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.QueryParam("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	views, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(views))
	for i, view := range views {
		response[i] = OrderSummaryResponse{
			OrderID:          view.OrderID,
			Status:           view.Status,
			PaymentMethod:    view.PaymentMethod,
			PaymentStatus:    view.PaymentStatus,
			FinalOrderAmount: view.FinalOrderAmount,
			Currency:         view.Currency,
			VendorOrderCount: view.VendorOrderCount,
			CreatedAt:        view.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmPayment handles POST /api/v1/payments/confirm - the payment gateway
// callback. A rejected signature is a 400; individual shipment failures are
// reported per sub-order in a 200 response.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var req ConfirmPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(req.GatewayOrderID, req.PaymentID, req.Signature)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if !resp.Verified {
		return ctx.JSON(http.StatusBadRequest, ConfirmPaymentResponse{
			OrderID:  resp.OrderID,
			Verified: false,
			Status:   resp.Status,
		})
	}

	outcomes := make([]FanOutOutcomeResponse, len(resp.Outcomes))
	for i, outcome := range resp.Outcomes {
		outcomes[i] = FanOutOutcomeResponse{
			SubOrderID: outcome.SubOrderID,
			Outcome:    outcome.Outcome,
			WaybillNo:  outcome.WaybillNo,
			Note:       outcome.Note,
		}
	}

	return ctx.JSON(http.StatusOK, ConfirmPaymentResponse{
		OrderID:  resp.OrderID,
		Verified: true,
		Status:   resp.Status,
		Outcomes: outcomes,
	})
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var req CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(ctx.Param("orderID"), req.Reason, req.RefundAmount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelVendorOrder handles
// POST /api/v1/orders/:orderID/vendor-orders/:subOrderID/cancel.
func (s *Server) CancelVendorOrder(ctx echo.Context) error {
	var req CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelVendorOrderCommand(
		ctx.Param("orderID"), ctx.Param("subOrderID"), req.Reason, req.RefundAmount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelVendorOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelProduct handles
// POST /api/v1/orders/:orderID/vendor-orders/:subOrderID/items/:productID/cancel.
func (s *Server) CancelProduct(ctx echo.Context) error {
	var req CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productID"))
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	cmd, err := commands.NewCancelProductCommand(
		ctx.Param("orderID"), ctx.Param("subOrderID"), productID, req.Reason, req.RefundAmount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RetryWarehouseRegistration handles
// POST /api/v1/vendors/:vendorID/warehouse/retry - triggers one registration
// attempt immediately instead of waiting for the background sweep.
func (s *Server) RetryWarehouseRegistration(ctx echo.Context) error {
	vendorID, err := kernel.UUIDFromString(ctx.Param("vendorID"))
	if err != nil {
		return badRequest(ctx, "Invalid vendor id")
	}

	cmd, err := commands.NewRegisterWarehouseCommand(vendorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.registerWarehouseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WarehouseAttemptResponse{
		Status:       resp.Status,
		ExternalID:   resp.ExternalID,
		RetryCount:   resp.RetryCount,
		ErrorMessage: resp.ErrorMessage,
	})
}

// ResetWarehouseRetries handles
// POST /api/v1/vendors/:vendorID/warehouse/reset - clears an exhausted retry
// budget so the background sweep picks the vendor up again.
func (s *Server) ResetWarehouseRetries(ctx echo.Context) error {
	vendorID, err := kernel.UUIDFromString(ctx.Param("vendorID"))
	if err != nil {
		return badRequest(ctx, "Invalid vendor id")
	}

	cmd, err := commands.NewResetWarehouseRetriesCommand(vendorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.resetWarehouseRetriesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetWarehouseStatus handles GET /api/v1/vendors/:vendorID/warehouse.
func (s *Server) GetWarehouseStatus(ctx echo.Context) error {
	vendorID, err := kernel.UUIDFromString(ctx.Param("vendorID"))
	if err != nil {
		return badRequest(ctx, "Invalid vendor id")
	}

	query, err := queries.NewGetWarehouseStatusQuery(vendorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getWarehouseHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WarehouseStatusResponse{
		VendorID:     view.VendorID,
		VendorName:   view.VendorName,
		Status:       view.Status,
		RetryCount:   view.RetryCount,
		MaxRetries:   view.MaxRetries,
		LastAttempt:  view.LastAttempt,
		ErrorMessage: view.ErrorMessage,
		ExternalID:   view.ExternalID,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors onto HTTP status codes: missing
// objects are 404, version conflicts are 409, validation failures are 400,
// everything else is a 500.
func errorResponse(ctx echo.Context, err error) error {
	var notFoundErr *errs.ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	var versionErr *errs.VersionIsInvalidError
	if errors.As(err, &versionErr) {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	}

	if errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, services.ErrProductNotShippable) {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
