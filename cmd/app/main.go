package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/sequencerepo"
	"marketplace/internal/adapters/out/postgres/vendorrepo"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envVariable("HTTP_PORT", "8080"),
		DBHost:     envVariable("DB_HOST", "localhost"),
		DBPort:     envVariable("DB_PORT", "5432"),
		DBUser:     envVariable("DB_USER", "postgres"),
		DBPassword: envVariable("DB_PASSWORD", "postgres"),
		DBName:     envVariable("DB_NAME", "marketplace"),
		DBSslMode:  envVariable("DB_SSLMODE", "disable"),

		CarrierBaseURL: envVariable("CARRIER_BASE_URL", ""),
		CarrierToken:   envVariable("CARRIER_TOKEN", ""),
		CarrierTimeout: envDuration("CARRIER_TIMEOUT", 10*time.Second),

		PaymentBaseURL:   envVariable("PAYMENT_BASE_URL", ""),
		PaymentKeyID:     envVariable("PAYMENT_KEY_ID", ""),
		PaymentKeySecret: envVariable("PAYMENT_KEY_SECRET", ""),
		PaymentTimeout:   envDuration("PAYMENT_TIMEOUT", 10*time.Second),

		GeoBaseURL:    envVariable("GEO_BASE_URL", ""),
		GeoFallbackKm: envFloat("GEO_FALLBACK_KM", 15),
		GeoTimeout:    envDuration("GEO_TIMEOUT", 5*time.Second),

		CatalogBaseURL: envVariable("CATALOG_BASE_URL", ""),
		CatalogTimeout: envDuration("CATALOG_TIMEOUT", 5*time.Second),

		CouponBaseURL: envVariable("COUPON_BASE_URL", ""),
		CouponTimeout: envDuration("COUPON_TIMEOUT", 5*time.Second),

		DefaultShippingCost:    envFloat("DEFAULT_SHIPPING_COST", 100),
		DefaultShippingEtaDays: envInt("DEFAULT_SHIPPING_ETA_DAYS", 7),

		PackageLengthCm:  envFloat("PACKAGE_LENGTH_CM", 0),
		PackageBreadthCm: envFloat("PACKAGE_BREADTH_CM", 0),
		PackageHeightCm:  envFloat("PACKAGE_HEIGHT_CM", 0),

		WarehouseJobSchedule: envVariable("WAREHOUSE_JOB_SCHEDULE", "0 */5 * * * *"),
	}
}

func envVariable(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustMigrateDB(db *gorm.DB) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&vendorrepo.VendorDTO{},
		&sequencerepo.CounterDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
