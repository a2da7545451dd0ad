package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/sequencerepo"
	"marketplace/internal/adapters/out/postgres/vendorrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/vendor"
)

// UnitOfWorkIntegrationTestSuite verifies transaction boundaries: commits
// persist across repositories, rollbacks discard everything including the
// order-id sequence increment.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&vendorrepo.VendorDTO{},
		&sequencerepo.CounterDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, vendors, order_counters").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testVendor := suite.createTestVendor()
	suite.Require().NoError(uow.VendorRepository().Add(ctx, testVendor))

	seq, err := uow.SequenceRepository().Next(ctx, "20250901")
	suite.Require().NoError(err)
	suite.Equal(1, seq)

	orderID, err := order.ComposeOrderID("20250901", seq)
	suite.Require().NoError(err)

	testOrder := suite.createTestOrder(orderID, testVendor.ID())
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	suite.Require().NoError(uow.Commit(ctx))

	// Both aggregates visible outside the transaction after commit.
	verifyUow := suite.factory.Create()
	persistedVendor, err := verifyUow.VendorRepository().Get(ctx, testVendor.ID())
	suite.Require().NoError(err)
	suite.Equal(testVendor.Name(), persistedVendor.Name())

	persistedOrder, err := verifyUow.OrderRepository().GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), persistedOrder.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndSequenceIncrement() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	seq, err := uow.SequenceRepository().Next(ctx, "20250901")
	suite.Require().NoError(err)
	suite.Equal(1, seq)

	orderID, err := order.ComposeOrderID("20250901", seq)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder(orderID, kernel.NewUUID())))

	suite.Require().NoError(uow.Rollback(ctx))

	// The aborted creation burned nothing: the next transaction gets
	// sequence 1 again and the order row never landed.
	retryUow := suite.factory.Create()
	suite.Require().NoError(retryUow.Begin(ctx))
	seq, err = retryUow.SequenceRepository().Next(ctx, "20250901")
	suite.Require().NoError(err)
	suite.Equal(1, seq)
	suite.Require().NoError(retryUow.Commit(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestVendor() *vendor.Vendor {
	v, err := vendor.NewVendor(kernel.NewUUID(), "Pottery Studio", "560001", []vendor.DistanceRange{
		{MinKm: 0, MaxKm: 20, Cost: 40, EtaDays: 2},
	})
	suite.Require().NoError(err)
	return v
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(orderID string, vendorID kernel.UUID) *order.Order {
	addr, err := order.NewAddress(
		"Asha Rao", "9876543210", "12 MG Road", "", "Bengaluru", "KA", "560001", "India",
	)
	suite.Require().NoError(err)

	item, err := order.NewLineItem(kernel.NewUUID(), "Clay Mug", 1, 250, 0.4, "")
	suite.Require().NoError(err)

	vo, err := order.NewVendorOrder(vendorID, []*order.LineItem{item}, order.ShippingManual, "vendor", 40, 2)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), orderID, kernel.NewUUID(),
		order.PaymentMethodCOD, addr, []*order.VendorOrder{vo},
		0, "INR", "",
	)
	suite.Require().NoError(err)
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
