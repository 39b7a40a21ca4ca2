package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

func mo(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestOilPriceStore_RangeOrdered(t *testing.T) {
	store := NewOilPriceStore()
	ctx := context.Background()

	points := []domain.USDPricePoint{
		{Date: mo(2010, 3), USDPrice: 63},
		{Date: mo(2010, 1), USDPrice: 61},
		{Date: mo(2010, 2), USDPrice: 62},
		{Date: mo(2010, 4), USDPrice: 64},
	}
	if err := store.InsertBulk(ctx, points); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByDateRange(ctx, mo(2010, 1), mo(2010, 3))
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(got))
	}
	for i, want := range []float64{61, 62, 63} {
		if got[i].USDPrice != want {
			t.Errorf("point %d: got %f, want %f", i, got[i].USDPrice, want)
		}
	}
}

func TestFXRateStore_Duplicate(t *testing.T) {
	store := NewFXRateStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []domain.FXRatePoint{{Date: mo(2010, 1), FXRate: 2.5}}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	err := store.InsertBulk(ctx, []domain.FXRatePoint{{Date: mo(2010, 1), FXRate: 2.6}})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestGeneralCostStore_RejectsMidMonth(t *testing.T) {
	store := NewGeneralCostStore()

	err := store.InsertBulk(context.Background(), []domain.GeneralCostPoint{
		{Date: time.Date(2010, 1, 15, 0, 0, 0, 0, time.UTC), AdminCost: 1, MaintenanceCost: 1, LogisticsCost: 1},
	})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
