package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/ingestion"
	"oilfield-finance-lab/internal/observability"
	"oilfield-finance-lab/internal/production"
	"oilfield-finance-lab/internal/storage/memory"
	"oilfield-finance-lab/internal/validation"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// testTables builds a two-field dataset over 2010. Field 2 starts mid-year.
func testTables(h domain.Horizon) *ingestion.Tables {
	t := &ingestion.Tables{
		Fields: []domain.Field{
			{ID: 2, Name: "Beta", Region: domain.RegionES, OilType: domain.OilTypeHeavy, Capacity: 60000, StartDate: month(2010, 7)},
			{ID: 1, Name: "Alpha", Region: domain.RegionRJ, OilType: domain.OilTypeLight, Capacity: 40000, StartDate: month(2005, 1)},
		},
	}
	for i, m := range h.Months() {
		t.USDPrices = append(t.USDPrices, domain.USDPricePoint{Date: m, USDPrice: 60 + float64(i)})
		t.FXRates = append(t.FXRates, domain.FXRatePoint{Date: m, FXRate: 2 + 0.05*float64(i)})
		t.GeneralCosts = append(t.GeneralCosts, domain.GeneralCostPoint{
			Date: m, AdminCost: 50000, MaintenanceCost: 40000, LogisticsCost: 30000,
		})
	}
	return t
}

func testHorizon(t *testing.T) domain.Horizon {
	t.Helper()
	h, err := domain.NewHorizon("2010-01", "2010-12")
	require.NoError(t, err)
	return h
}

func TestOrchestrator_RunTables(t *testing.T) {
	h := testHorizon(t)
	m := observability.NewMetrics("")
	orch, err := New(Options{Horizon: h, Metrics: m})
	require.NoError(t, err)

	result, err := orch.RunTables(context.Background(), testTables(h))
	require.NoError(t, err)

	assert.Len(t, result.Production, 24)
	assert.Len(t, result.Financials, 24)
	assert.Len(t, result.Aggregates, 12)
	assert.Empty(t, result.Degenerate)
	assert.Len(t, result.DataVersion, 12)

	// (date, field_id) order
	assert.Equal(t, int64(1), result.Financials[0].FieldID)
	assert.Equal(t, int64(2), result.Financials[1].FieldID)
	assert.True(t, result.Financials[0].Date.Equal(h.Start))

	// Field 2 is inactive before July.
	assert.Zero(t, result.Financials[1].ProductionVolume)
	assert.Equal(t, 1, result.Aggregates[0].ActiveFields)
	assert.Equal(t, 2, result.Aggregates[6].ActiveFields)

	require.NotNil(t, result.Validation)
	check, ok := result.Validation.Check(validation.CheckProfitIdentity)
	require.True(t, ok)
	assert.True(t, check.Pass)

	assert.Equal(t, 24.0, testutil.ToFloat64(m.RecordsProduced.WithLabelValues(domain.TableProduction)))
}

func TestOrchestrator_RunFromSource(t *testing.T) {
	ctx := context.Background()
	h := testHorizon(t)
	opts := ingestion.StoreSourceOptions{
		FieldStore:       memory.NewFieldStore(),
		OilPriceStore:    memory.NewOilPriceStore(),
		FXRateStore:      memory.NewFXRateStore(),
		GeneralCostStore: memory.NewGeneralCostStore(),
		Horizon:          h,
	}
	_, err := ingestion.Store(ctx, testTables(h), opts)
	require.NoError(t, err)

	orch, err := New(Options{Source: ingestion.NewStoreSource(opts), Horizon: h})
	require.NoError(t, err)

	result, err := orch.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Financials, 24)
}

func TestOrchestrator_RunWithoutSource(t *testing.T) {
	orch, err := New(Options{Horizon: testHorizon(t)})
	require.NoError(t, err)

	_, err = orch.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestOrchestrator_PriceGapAborts(t *testing.T) {
	h := testHorizon(t)
	tables := testTables(h)
	tables.USDPrices = append(tables.USDPrices[:3], tables.USDPrices[4:]...)

	orch, err := New(Options{Horizon: h})
	require.NoError(t, err)

	_, err = orch.RunTables(context.Background(), tables)
	require.Error(t, err)

	var dce *domain.DataContractError
	require.True(t, errors.As(err, &dce))
	assert.True(t, dce.Date.Equal(month(2010, 4)))
	assert.Contains(t, err.Error(), StageNormalize)
}

func TestOrchestrator_ZeroProductionMonthIsDegenerate(t *testing.T) {
	h := testHorizon(t)
	tables := testTables(h)
	tables.Fields = tables.Fields[:1] // only Beta, starting July

	orch, err := New(Options{Horizon: h})
	require.NoError(t, err)

	result, err := orch.RunTables(context.Background(), tables)
	require.NoError(t, err)

	assert.Len(t, result.Degenerate, 6)
	assert.Equal(t, 120000.0, result.Aggregates[0].UnallocatedGeneralCost)
	assert.Zero(t, result.Aggregates[0].NetProfit)
	assert.Zero(t, result.Financials[0].GeneralCost)
}

func TestOrchestrator_DeterministicAcrossWorkers(t *testing.T) {
	h := testHorizon(t)
	tables := testTables(h)

	run := func(workers int) *RunResult {
		orch, err := New(Options{
			Horizon: h,
			Noise:   production.NewKeyedNoise(42, production.DefaultNoiseStdDev),
			Workers: workers,
		})
		require.NoError(t, err)
		result, err := orch.RunTables(context.Background(), tables)
		require.NoError(t, err)
		return result
	}

	base := run(1)
	for _, w := range []int{2, 4} {
		other := run(w)
		assert.Equal(t, base.Financials, other.Financials)
		assert.Equal(t, base.Aggregates, other.Aggregates)
	}
}

func TestNew_InvalidHorizon(t *testing.T) {
	_, err := New(Options{Horizon: domain.Horizon{Start: month(2011, 1), End: month(2010, 1)}})
	assert.Error(t, err)
}

func TestOrchestrator_EveryStageRecorded(t *testing.T) {
	h := testHorizon(t)
	m := observability.NewMetrics("")
	orch, err := New(Options{Horizon: h, Metrics: m})
	require.NoError(t, err)

	_, err = orch.RunTables(context.Background(), testTables(h))
	require.NoError(t, err)

	// RunTables skips the load stage.
	assert.Equal(t, 5, testutil.CollectAndCount(m.StageDuration))
}

func TestStage_WrapsErrorWithStageName(t *testing.T) {
	orch, err := New(Options{Horizon: testHorizon(t)})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = orch.stage(StageConsolidate, func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, StageConsolidate+": boom")
}
