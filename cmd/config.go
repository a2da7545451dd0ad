package cmd

import "time"

// Config carries everything the application reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CarrierBaseURL string
	CarrierToken   string
	CarrierTimeout time.Duration

	PaymentBaseURL   string
	PaymentKeyID     string
	PaymentKeySecret string
	PaymentTimeout   time.Duration

	GeoBaseURL    string
	GeoFallbackKm float64
	GeoTimeout    time.Duration

	CatalogBaseURL string
	CatalogTimeout time.Duration

	CouponBaseURL string
	CouponTimeout time.Duration

	DefaultShippingCost    float64
	DefaultShippingEtaDays int

	PackageLengthCm  float64
	PackageBreadthCm float64
	PackageHeightCm  float64

	WarehouseJobSchedule string
}
