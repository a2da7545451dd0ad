package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/carrier"
	"marketplace/internal/adapters/out/catalog"
	"marketplace/internal/adapters/out/coupon"
	"marketplace/internal/adapters/out/geo"
	"marketplace/internal/adapters/out/payment"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
// Each Create* method builds a fresh handler over the shared infrastructure.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	carrierClient *carrier.Client
	gateway       *payment.Client
	catalogClient *catalog.Client
	couponClient  *coupon.Client

	shippingResolver services.ShippingResolver
	shipmentCreator  services.ShipmentCreator
}

// NewCompositionRoot builds the dependency graph from config. Fails when a
// domain service rejects its configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	carrierClient := carrier.NewClient(config.CarrierBaseURL, config.CarrierToken, config.CarrierTimeout)
	geoClient := geo.NewClient(config.GeoBaseURL, config.GeoFallbackKm, config.GeoTimeout)

	resolver, err := services.NewShippingResolver(
		carrierClient, geoClient, config.DefaultShippingCost, config.DefaultShippingEtaDays)
	if err != nil {
		return CompositionRoot{}, err
	}

	creator, err := services.NewShipmentCreator(
		carrierClient, config.PackageLengthCm, config.PackageBreadthCm, config.PackageHeightCm)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:           config,
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrierClient:    carrierClient,
		gateway:          payment.NewClient(config.PaymentBaseURL, config.PaymentKeyID, config.PaymentKeySecret, config.PaymentTimeout),
		catalogClient:    catalog.NewClient(config.CatalogBaseURL, config.CatalogTimeout),
		couponClient:     coupon.NewClient(config.CouponBaseURL, config.CouponTimeout),
		shippingResolver: resolver,
		shipmentCreator:  creator,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f, c.catalogClient, c.couponClient, c.gateway, c.shippingResolver)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.gateway, c.shipmentCreator)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateCancelVendorOrderCommandHandler() commands.CancelVendorOrderCommandHandler {
	return commands.NewCancelVendorOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateCancelProductCommandHandler() commands.CancelProductCommandHandler {
	return commands.NewCancelProductCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateRegisterWarehouseCommandHandler() commands.RegisterWarehouseCommandHandler {
	return commands.NewRegisterWarehouseCommandHandler(c.createVendorUoWFactory(), c.carrierClient)
}

func (c *CompositionRoot) CreateResetWarehouseRetriesCommandHandler() commands.ResetWarehouseRetriesCommandHandler {
	return commands.NewResetWarehouseRetriesCommandHandler(c.createVendorUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWarehouseStatusQueryHandler() queries.GetWarehouseStatusQueryHandler {
	return queries.NewGetWarehouseStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingWarehousesQueryHandler() queries.GetPendingWarehousesQueryHandler {
	return queries.NewGetPendingWarehousesQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the API server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCancelVendorOrderCommandHandler(),
		c.CreateCancelProductCommandHandler(),
		c.CreateRegisterWarehouseCommandHandler(),
		c.CreateResetWarehouseRetriesCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetUserOrdersQueryHandler(),
		c.CreateGetWarehouseStatusQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetPendingWarehousesQueryHandler(),
		c.CreateRegisterWarehouseCommandHandler(),
		c.config.WarehouseJobSchedule,
		logger,
	)
}

func (c *CompositionRoot) createOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createVendorUoWFactory() commands.VendorUoWFactory {
	return FuncVendorUoWFactory(func() commands.VendorUoW {
		return c.uowFactory.Create()
	})
}

// FuncOrderUoWFactory adapts a closure to the order unit of work factory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncVendorUoWFactory adapts a closure to the vendor unit of work factory.
type FuncVendorUoWFactory func() commands.VendorUoW

func (f FuncVendorUoWFactory) Create() commands.VendorUoW {
	return f()
}

// FuncCreateOrderUoWFactory adapts a closure to the order creation unit of
// work factory.
type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

// FuncFulfillmentUoWFactory adapts a closure to the fulfillment unit of work
// factory.
type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}
