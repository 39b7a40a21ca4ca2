package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestOilPriceStore_InsertBulk(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOilPriceStore(conn)
	ctx := context.Background()

	assert.NoError(t, store.InsertBulk(ctx, nil))

	points := []domain.USDPricePoint{
		{Date: month(2010, 2), USDPrice: 62.5},
		{Date: month(2010, 1), USDPrice: 61.25},
	}
	require.NoError(t, store.InsertBulk(ctx, points))

	got, err := store.GetByDateRange(ctx, month(2010, 1), month(2010, 12))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Equal(month(2010, 1)))
	assert.Equal(t, 61.25, got[0].USDPrice)
	assert.Equal(t, 62.5, got[1].USDPrice)
}

func TestOilPriceStore_InsertBulk_DuplicateKey(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOilPriceStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, []domain.USDPricePoint{{Date: month(2010, 1), USDPrice: 60}}))

	err := store.InsertBulk(ctx, []domain.USDPricePoint{{Date: month(2010, 1), USDPrice: 61}})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	err = store.InsertBulk(ctx, []domain.USDPricePoint{
		{Date: month(2011, 1), USDPrice: 61},
		{Date: month(2011, 1), USDPrice: 62},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestFXRateAndGeneralCostStores(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	fx := NewFXRateStore(conn)
	costs := NewGeneralCostStore(conn)

	require.NoError(t, fx.InsertBulk(ctx, []domain.FXRatePoint{{Date: month(2015, 3), FXRate: 3.21}}))
	require.NoError(t, costs.InsertBulk(ctx, []domain.GeneralCostPoint{
		{Date: month(2015, 3), AdminCost: 50000, MaintenanceCost: 40000, LogisticsCost: 30000},
	}))

	gotFX, err := fx.GetByDateRange(ctx, month(2015, 1), month(2015, 12))
	require.NoError(t, err)
	require.Len(t, gotFX, 1)
	assert.Equal(t, 3.21, gotFX[0].FXRate)

	gotCosts, err := costs.GetByDateRange(ctx, month(2015, 3), month(2015, 3))
	require.NoError(t, err)
	require.Len(t, gotCosts, 1)
	assert.Equal(t, 120000.0, gotCosts[0].Total())
}
