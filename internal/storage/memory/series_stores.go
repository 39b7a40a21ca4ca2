package memory

import (
	"context"
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

// OilPriceStore is an in-memory implementation of storage.OilPriceStore.
type OilPriceStore struct {
	series *monthlySeries[domain.USDPricePoint]
}

// NewOilPriceStore creates a new in-memory oil price store.
func NewOilPriceStore() *OilPriceStore {
	return &OilPriceStore{
		series: newMonthlySeries(func(p domain.USDPricePoint) time.Time { return p.Date }),
	}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate date.
func (s *OilPriceStore) InsertBulk(_ context.Context, points []domain.USDPricePoint) error {
	return s.series.insertBulk(points)
}

// GetByDateRange retrieves points within [start, end] (inclusive).
func (s *OilPriceStore) GetByDateRange(_ context.Context, start, end time.Time) ([]domain.USDPricePoint, error) {
	return s.series.getByDateRange(start, end), nil
}

// FXRateStore is an in-memory implementation of storage.FXRateStore.
type FXRateStore struct {
	series *monthlySeries[domain.FXRatePoint]
}

// NewFXRateStore creates a new in-memory FX rate store.
func NewFXRateStore() *FXRateStore {
	return &FXRateStore{
		series: newMonthlySeries(func(p domain.FXRatePoint) time.Time { return p.Date }),
	}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate date.
func (s *FXRateStore) InsertBulk(_ context.Context, points []domain.FXRatePoint) error {
	return s.series.insertBulk(points)
}

// GetByDateRange retrieves points within [start, end] (inclusive).
func (s *FXRateStore) GetByDateRange(_ context.Context, start, end time.Time) ([]domain.FXRatePoint, error) {
	return s.series.getByDateRange(start, end), nil
}

// GeneralCostStore is an in-memory implementation of storage.GeneralCostStore.
type GeneralCostStore struct {
	series *monthlySeries[domain.GeneralCostPoint]
}

// NewGeneralCostStore creates a new in-memory general cost store.
func NewGeneralCostStore() *GeneralCostStore {
	return &GeneralCostStore{
		series: newMonthlySeries(func(p domain.GeneralCostPoint) time.Time { return p.Date }),
	}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate date.
func (s *GeneralCostStore) InsertBulk(_ context.Context, points []domain.GeneralCostPoint) error {
	return s.series.insertBulk(points)
}

// GetByDateRange retrieves points within [start, end] (inclusive).
func (s *GeneralCostStore) GetByDateRange(_ context.Context, start, end time.Time) ([]domain.GeneralCostPoint, error) {
	return s.series.getByDateRange(start, end), nil
}

var (
	_ storage.OilPriceStore    = (*OilPriceStore)(nil)
	_ storage.FXRateStore      = (*FXRateStore)(nil)
	_ storage.GeneralCostStore = (*GeneralCostStore)(nil)
)
