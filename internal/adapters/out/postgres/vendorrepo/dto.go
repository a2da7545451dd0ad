// Package vendorrepo persists vendor aggregates: the seller profile, its
// manual delivery pricing tiers as a jsonb document, and the flattened
// warehouse registration workflow columns the read side and the registration
// job filter on.
package vendorrepo

import (
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/vendor"
)

// VendorDTO represents the database structure for persisting vendor
// aggregates. Warehouse workflow state is flattened into columns so the
// registration job can select awaiting vendors with a plain predicate.
type VendorDTO struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name                  string
	Pincode               string
	DistanceRanges        []DistanceRangeDTO `gorm:"type:jsonb;serializer:json"`
	WarehouseName         string
	WarehouseStatus       int `gorm:"index"`
	WarehouseRetryCount   int
	WarehouseMaxRetries   int
	WarehouseLastAttempt  *time.Time
	WarehouseErrorMessage string
	WarehouseExternalID   string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the database table name for vendor entities.
func (VendorDTO) TableName() string {
	return "vendors"
}

// DistanceRangeDTO is one manual pricing tier stored inside the vendor row.
type DistanceRangeDTO struct {
	MinKm   float64 `json:"min_km"`
	MaxKm   float64 `json:"max_km"`
	Cost    float64 `json:"cost"`
	EtaDays int     `json:"eta_days"`
}

// fromDomain converts a vendor domain aggregate to its database
// representation.
func fromDomain(aggregate *vendor.Vendor) VendorDTO {
	ranges := make([]DistanceRangeDTO, 0, len(aggregate.DistanceRanges()))
	for _, r := range aggregate.DistanceRanges() {
		ranges = append(ranges, DistanceRangeDTO{
			MinKm:   r.MinKm,
			MaxKm:   r.MaxKm,
			Cost:    r.Cost,
			EtaDays: r.EtaDays,
		})
	}

	w := aggregate.Warehouse()

	return VendorDTO{
		ID:                    aggregate.ID().Bytes(),
		Name:                  aggregate.Name(),
		Pincode:               aggregate.Pincode(),
		DistanceRanges:        ranges,
		WarehouseName:         w.Name(),
		WarehouseStatus:       int(w.Status()),
		WarehouseRetryCount:   w.RetryCount(),
		WarehouseMaxRetries:   w.MaxRetries(),
		WarehouseLastAttempt:  w.LastAttempt(),
		WarehouseErrorMessage: w.ErrorMessage(),
		WarehouseExternalID:   w.ExternalID(),
	}
}

// toDomain converts a database DTO to a vendor domain aggregate using
// RestoreVendor.
func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ranges := make([]vendor.DistanceRange, 0, len(dto.DistanceRanges))
	for _, r := range dto.DistanceRanges {
		ranges = append(ranges, vendor.DistanceRange{
			MinKm:   r.MinKm,
			MaxKm:   r.MaxKm,
			Cost:    r.Cost,
			EtaDays: r.EtaDays,
		})
	}

	warehouse := vendor.RestoreWarehouse(
		dto.WarehouseName,
		vendor.WarehouseStatus(dto.WarehouseStatus),
		dto.WarehouseRetryCount,
		dto.WarehouseMaxRetries,
		dto.WarehouseLastAttempt,
		dto.WarehouseErrorMessage,
		dto.WarehouseExternalID,
	)

	return vendor.RestoreVendor(id, dto.Name, dto.Pincode, ranges, warehouse)
}
