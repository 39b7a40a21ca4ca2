package storage

import (
	"context"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// FieldStore provides access to the field registry.
type FieldStore interface {
	// InsertBulk adds multiple fields atomically. Fails entire batch on any duplicate id.
	InsertBulk(ctx context.Context, fields []domain.Field) error

	// GetByID retrieves a field by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.Field, error)

	// GetAll retrieves every field, ordered by id ASC.
	GetAll(ctx context.Context) ([]domain.Field, error)
}

// OilPriceStore provides access to the monthly USD oil price series.
type OilPriceStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate date.
	InsertBulk(ctx context.Context, points []domain.USDPricePoint) error

	// GetByDateRange retrieves points within [start, end] (inclusive), ordered by date ASC.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.USDPricePoint, error)
}

// FXRateStore provides access to the monthly FX rate series.
type FXRateStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate date.
	InsertBulk(ctx context.Context, points []domain.FXRatePoint) error

	// GetByDateRange retrieves points within [start, end] (inclusive), ordered by date ASC.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.FXRatePoint, error)
}

// GeneralCostStore provides access to the monthly company-wide overhead series.
type GeneralCostStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate date.
	InsertBulk(ctx context.Context, points []domain.GeneralCostPoint) error

	// GetByDateRange retrieves points within [start, end] (inclusive), ordered by date ASC.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.GeneralCostPoint, error)
}
