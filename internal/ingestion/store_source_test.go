package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
	"oilfield-finance-lab/internal/storage/memory"
)

func memoryOptions(h domain.Horizon) StoreSourceOptions {
	return StoreSourceOptions{
		FieldStore:       memory.NewFieldStore(),
		OilPriceStore:    memory.NewOilPriceStore(),
		FXRateStore:      memory.NewFXRateStore(),
		GeneralCostStore: memory.NewGeneralCostStore(),
		Horizon:          h,
	}
}

func TestStoreSource_RoundTrip(t *testing.T) {
	ctx := context.Background()
	h := domain.Horizon{Start: month(2010, 1), End: month(2010, 2)}
	opts := memoryOptions(h)

	tables := &Tables{
		Fields: []domain.Field{{ID: 1, Name: "A", Region: domain.RegionRN, OilType: domain.OilTypeLight,
			Capacity: 20000, StartDate: month(2009, 1)}},
		USDPrices: []domain.USDPricePoint{
			{Date: month(2009, 12), USDPrice: 59},
			{Date: month(2010, 1), USDPrice: 60},
			{Date: month(2010, 2), USDPrice: 61},
		},
		FXRates: []domain.FXRatePoint{
			{Date: month(2010, 2), FXRate: 2.2},
			{Date: month(2010, 1), FXRate: 2.1},
		},
		GeneralCosts: []domain.GeneralCostPoint{
			{Date: month(2010, 1), AdminCost: 1, MaintenanceCost: 1, LogisticsCost: 1},
			{Date: month(2010, 2), AdminCost: 1, MaintenanceCost: 1, LogisticsCost: 1},
		},
	}

	counts, err := Store(ctx, tables, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[domain.TableOilPrice])

	loaded, err := NewStoreSource(opts).Load(ctx)
	require.NoError(t, err)

	// Only the horizon is read back, ordered by date.
	require.Len(t, loaded.USDPrices, 2)
	assert.Equal(t, 60.0, loaded.USDPrices[0].USDPrice)
	require.Len(t, loaded.FXRates, 2)
	assert.Equal(t, 2.1, loaded.FXRates[0].FXRate)
	assert.Len(t, loaded.Fields, 1)
	assert.Len(t, loaded.GeneralCosts, 2)
}

func TestStore_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	opts := memoryOptions(domain.Horizon{Start: month(2010, 1), End: month(2010, 1)})

	tables := &Tables{
		Fields: []domain.Field{{ID: 1, Name: "A", Region: domain.RegionRN, OilType: domain.OilTypeLight,
			Capacity: 20000, StartDate: month(2009, 1)}},
	}
	_, err := Store(ctx, tables, opts)
	require.NoError(t, err)

	_, err = Store(ctx, tables, opts)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}
