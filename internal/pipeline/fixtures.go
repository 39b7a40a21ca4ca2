package pipeline

import (
	"context"
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/ingestion"
)

// FixtureTables returns a small hand-written dataset covering h: three
// fields, one of which only starts producing in the second half of 2010.
func FixtureTables(h domain.Horizon) *ingestion.Tables {
	t := &ingestion.Tables{
		Fields: []domain.Field{
			{ID: 1, Name: "Field Marlim Azul", Region: domain.RegionRJ, OilType: domain.OilTypeMedium,
				Capacity: 45000, StartDate: date(2006, time.March)},
			{ID: 2, Name: "Field Jubarte Verde", Region: domain.RegionES, OilType: domain.OilTypeHeavy,
				Capacity: 72000, StartDate: date(2008, time.October)},
			{ID: 3, Name: "Field Pampo Prata", Region: domain.RegionBA, OilType: domain.OilTypeLight,
				Capacity: 28000, StartDate: date(2010, time.July)},
		},
	}

	for i, m := range h.Months() {
		t.USDPrices = append(t.USDPrices, domain.USDPricePoint{Date: m, USDPrice: 55 + float64(i%24)})
		t.FXRates = append(t.FXRates, domain.FXRatePoint{Date: m, FXRate: 2.1 + 0.01*float64(i%12)})
		t.GeneralCosts = append(t.GeneralCosts, domain.GeneralCostPoint{
			Date: m, AdminCost: 50000, MaintenanceCost: 40000, LogisticsCost: 30000,
		})
	}
	return t
}

// LoadFixtures populates the stores with FixtureTables for the horizon in opts.
func LoadFixtures(ctx context.Context, opts ingestion.StoreSourceOptions) error {
	_, err := ingestion.Store(ctx, FixtureTables(opts.Horizon), opts)
	return err
}

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
