package normalization

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/ingestion"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func horizon() domain.Horizon {
	return domain.Horizon{Start: month(2010, 1), End: month(2010, 4)}
}

func validTables() *ingestion.Tables {
	t := &ingestion.Tables{
		Fields: []domain.Field{
			{ID: 2, Name: "B", Region: domain.RegionES, OilType: domain.OilTypeHeavy, Capacity: 30000, StartDate: month(2009, 1)},
			{ID: 1, Name: "A", Region: domain.RegionRJ, OilType: domain.OilTypeLight, Capacity: 50000, StartDate: month(2010, 2)},
		},
	}
	// Series extend one month either side of the horizon and arrive unordered.
	for _, m := range []time.Time{month(2010, 5), month(2009, 12), month(2010, 3), month(2010, 1), month(2010, 2), month(2010, 4)} {
		t.USDPrices = append(t.USDPrices, domain.USDPricePoint{Date: m, USDPrice: 60})
		t.FXRates = append(t.FXRates, domain.FXRatePoint{Date: m, FXRate: 2.5})
		t.GeneralCosts = append(t.GeneralCosts, domain.GeneralCostPoint{Date: m, AdminCost: 3, MaintenanceCost: 2, LogisticsCost: 1})
	}
	return t
}

func requireContractError(t *testing.T, err error, kind domain.ContractKind, table string) *domain.DataContractError {
	t.Helper()
	var dce *domain.DataContractError
	require.True(t, errors.As(err, &dce), "expected DataContractError, got %v", err)
	assert.Equal(t, kind, dce.Kind)
	assert.Equal(t, table, dce.Table)
	return dce
}

func TestNormalize_Valid(t *testing.T) {
	ds, err := Normalize(validTables(), horizon())
	require.NoError(t, err)

	require.Len(t, ds.Fields, 2)
	assert.Equal(t, int64(1), ds.Fields[0].ID)

	require.Len(t, ds.Prices, 4)
	require.Len(t, ds.Costs, 4)
	for i, m := range horizon().Months() {
		assert.True(t, ds.Prices[i].Date.Equal(m))
		assert.True(t, ds.Costs[i].Date.Equal(m))
		assert.Equal(t, 150.0, ds.Prices[i].LocalPrice())
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	tables := validTables()
	firstID := tables.Fields[0].ID
	firstDate := tables.USDPrices[0].Date

	_, err := Normalize(tables, horizon())
	require.NoError(t, err)
	assert.Equal(t, firstID, tables.Fields[0].ID)
	assert.True(t, tables.USDPrices[0].Date.Equal(firstDate))
}

func TestNormalize_PriceGap(t *testing.T) {
	tables := validTables()
	var kept []domain.USDPricePoint
	for _, p := range tables.USDPrices {
		if !p.Date.Equal(month(2010, 3)) {
			kept = append(kept, p)
		}
	}
	tables.USDPrices = kept

	_, err := Normalize(tables, horizon())
	dce := requireContractError(t, err, domain.KindMissingDate, domain.TableOilPrice)
	assert.True(t, dce.Date.Equal(month(2010, 3)))
	assert.Contains(t, err.Error(), "2010-03-01")
}

func TestNormalize_DuplicateCostMonth(t *testing.T) {
	tables := validTables()
	tables.GeneralCosts = append(tables.GeneralCosts, tables.GeneralCosts[3])

	_, err := Normalize(tables, horizon())
	requireContractError(t, err, domain.KindDuplicateDate, domain.TableGeneralCost)
}

func TestNormalize_NonPositiveValue(t *testing.T) {
	tables := validTables()
	tables.FXRates[2].FXRate = 0

	_, err := Normalize(tables, horizon())
	dce := requireContractError(t, err, domain.KindInvalidValue, domain.TableFXRate)
	assert.Equal(t, "fx_rate", dce.Column)
}

func TestNormalize_DuplicateField(t *testing.T) {
	tables := validTables()
	tables.Fields = append(tables.Fields, tables.Fields[0])

	_, err := Normalize(tables, horizon())
	dce := requireContractError(t, err, domain.KindDuplicateField, domain.TableFields)
	assert.Equal(t, int64(2), dce.FieldID)
}

func TestNormalize_EmptyRoster(t *testing.T) {
	tables := validTables()
	tables.Fields = nil

	_, err := Normalize(tables, horizon())
	requireContractError(t, err, domain.KindInvalidValue, domain.TableFields)
}

func TestJoinPriceFX_Mismatch(t *testing.T) {
	prices := []domain.USDPricePoint{{Date: month(2010, 1), USDPrice: 60}, {Date: month(2010, 2), USDPrice: 61}}
	fx := []domain.FXRatePoint{{Date: month(2010, 1), FXRate: 2}}

	_, err := JoinPriceFX(prices, fx)
	dce := requireContractError(t, err, domain.KindMissingDate, domain.TableFXRate)
	assert.True(t, dce.Date.Equal(month(2010, 2)))

	_, err = JoinPriceFX(prices[:1], []domain.FXRatePoint{{Date: month(2010, 1), FXRate: 2}, {Date: month(2010, 3), FXRate: 2}})
	requireContractError(t, err, domain.KindMissingDate, domain.TableOilPrice)
}

func TestSortProductionRecords(t *testing.T) {
	records := []domain.ProductionRecord{
		{FieldID: 2, Date: month(2010, 2)},
		{FieldID: 1, Date: month(2010, 2)},
		{FieldID: 3, Date: month(2010, 1)},
	}
	SortProductionRecords(records)

	assert.Equal(t, int64(3), records[0].FieldID)
	assert.Equal(t, int64(1), records[1].FieldID)
	assert.Equal(t, int64(2), records[2].FieldID)
}
