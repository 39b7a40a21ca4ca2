package idhash

import (
	"testing"
	"time"

	"oilfield-finance-lab/internal/domain"
)

func TestComputeNoiseSeed_Determinism(t *testing.T) {
	m := time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC)

	results := make([][2]uint64, 10)
	for i := 0; i < 10; i++ {
		a, b := ComputeNoiseSeed(42, 7, m, "production")
		results[i] = [2]uint64{a, b}
	}

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Errorf("Determinism failed: results[%d]=%v != results[0]=%v", i, results[i], results[0])
		}
	}
}

func TestComputeNoiseSeed_DifferentInputs(t *testing.T) {
	m := time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC)
	base, _ := ComputeNoiseSeed(42, 7, m, "production")

	if s, _ := ComputeNoiseSeed(43, 7, m, "production"); s == base {
		t.Error("Different seed should produce different hash")
	}
	if s, _ := ComputeNoiseSeed(42, 8, m, "production"); s == base {
		t.Error("Different field should produce different hash")
	}
	if s, _ := ComputeNoiseSeed(42, 7, m.AddDate(0, 1, 0), "production"); s == base {
		t.Error("Different month should produce different hash")
	}
	if s, _ := ComputeNoiseSeed(42, 7, m, "other"); s == base {
		t.Error("Different stream should produce different hash")
	}
}

func TestComputeDataVersion(t *testing.T) {
	m := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	fields := []domain.Field{
		{ID: 2, Name: "B", Region: domain.RegionES, OilType: domain.OilTypeHeavy, Capacity: 30000, StartDate: m},
		{ID: 1, Name: "A", Region: domain.RegionRJ, OilType: domain.OilTypeLight, Capacity: 50000, StartDate: m},
	}
	prices := []domain.PricePoint{{Date: m, USDPrice: 60, FXRate: 2.5}}
	costs := []domain.GeneralCostPoint{{Date: m, AdminCost: 1, MaintenanceCost: 2, LogisticsCost: 3}}

	v1 := ComputeDataVersion(fields, prices, costs)
	if len(v1) != 12 {
		t.Fatalf("version length = %d, want 12", len(v1))
	}

	// Input order must not matter.
	reordered := []domain.Field{fields[1], fields[0]}
	if v2 := ComputeDataVersion(reordered, prices, costs); v2 != v1 {
		t.Errorf("version depends on field order: %s != %s", v2, v1)
	}

	prices[0].USDPrice = 61
	if v3 := ComputeDataVersion(fields, prices, costs); v3 == v1 {
		t.Error("changed price should change version")
	}
}
