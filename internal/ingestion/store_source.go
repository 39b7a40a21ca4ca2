package ingestion

import (
	"context"
	"fmt"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

// StoreSource loads the input tables from storage backends.
// Series are read for the horizon only.
type StoreSource struct {
	fieldStore       storage.FieldStore
	oilPriceStore    storage.OilPriceStore
	fxRateStore      storage.FXRateStore
	generalCostStore storage.GeneralCostStore
	horizon          domain.Horizon
}

// StoreSourceOptions contains configuration for creating a StoreSource.
type StoreSourceOptions struct {
	FieldStore       storage.FieldStore
	OilPriceStore    storage.OilPriceStore
	FXRateStore      storage.FXRateStore
	GeneralCostStore storage.GeneralCostStore
	Horizon          domain.Horizon
}

// NewStoreSource creates a new store-backed source.
func NewStoreSource(opts StoreSourceOptions) *StoreSource {
	return &StoreSource{
		fieldStore:       opts.FieldStore,
		oilPriceStore:    opts.OilPriceStore,
		fxRateStore:      opts.FXRateStore,
		generalCostStore: opts.GeneralCostStore,
		horizon:          opts.Horizon,
	}
}

// Load reads every table from its store.
func (s *StoreSource) Load(ctx context.Context) (*Tables, error) {
	var t Tables
	var err error

	if t.Fields, err = s.fieldStore.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}
	if t.USDPrices, err = s.oilPriceStore.GetByDateRange(ctx, s.horizon.Start, s.horizon.End); err != nil {
		return nil, fmt.Errorf("load oil prices: %w", err)
	}
	if t.FXRates, err = s.fxRateStore.GetByDateRange(ctx, s.horizon.Start, s.horizon.End); err != nil {
		return nil, fmt.Errorf("load fx rates: %w", err)
	}
	if t.GeneralCosts, err = s.generalCostStore.GetByDateRange(ctx, s.horizon.Start, s.horizon.End); err != nil {
		return nil, fmt.Errorf("load general costs: %w", err)
	}
	return &t, nil
}

// Store writes the tables into storage backends. Used by cmd/ingest.
// Returns row counts per table.
func Store(ctx context.Context, t *Tables, opts StoreSourceOptions) (map[string]int, error) {
	counts := make(map[string]int, 4)

	if err := opts.FieldStore.InsertBulk(ctx, t.Fields); err != nil {
		return counts, fmt.Errorf("store fields: %w", err)
	}
	counts[domain.TableFields] = len(t.Fields)

	if err := opts.OilPriceStore.InsertBulk(ctx, t.USDPrices); err != nil {
		return counts, fmt.Errorf("store oil prices: %w", err)
	}
	counts[domain.TableOilPrice] = len(t.USDPrices)

	if err := opts.FXRateStore.InsertBulk(ctx, t.FXRates); err != nil {
		return counts, fmt.Errorf("store fx rates: %w", err)
	}
	counts[domain.TableFXRate] = len(t.FXRates)

	if err := opts.GeneralCostStore.InsertBulk(ctx, t.GeneralCosts); err != nil {
		return counts, fmt.Errorf("store general costs: %w", err)
	}
	counts[domain.TableGeneralCost] = len(t.GeneralCosts)

	return counts, nil
}

var (
	_ Source = (*StoreSource)(nil)
	_ Source = (*CSVSource)(nil)
)
