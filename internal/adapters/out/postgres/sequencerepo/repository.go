// Package sequencerepo implements the daily order-id sequence on a Postgres
// counter table. One row per calendar day; the upsert increments atomically
// under the surrounding transaction, so an aborted order creation never burns
// an id and concurrent creations never observe the same value.
package sequencerepo

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/pkg/errs"
)

// CounterDTO represents one day's order counter row.
type CounterDTO struct {
	DateKey string `gorm:"primaryKey"`
	Value   int
}

// TableName specifies the database table name for order counters.
func (CounterDTO) TableName() string {
	return "order_counters"
}

// GormSequenceRepository implements SequenceRepository using GORM.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GORM sequence repository.
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next returns the next sequence value for the given date key, starting at 1
// for the first order of a day. The row-level lock taken by the upsert
// serializes concurrent callers within and across transactions.
func (r *GormSequenceRepository) Next(ctx context.Context, dateKey string) (int, error) {
	if dateKey == "" {
		return 0, errs.NewValueIsRequiredError("dateKey")
	}

	var value int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_counters (date_key, value)
		VALUES (?, 1)
		ON CONFLICT (date_key)
		DO UPDATE SET value = order_counters.value + 1
		RETURNING value
	`, dateKey).Row().Scan(&value)
	if err != nil {
		return 0, err
	}

	return value, nil
}
