package allocation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilfield-finance-lab/internal/domain"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestAllocateMonth_Proportional(t *testing.T) {
	m := month(2010, 1)
	records := []domain.ProductionRecord{
		{FieldID: 1, Date: m, ProductionVolume: 1000},
		{FieldID: 2, Date: m, ProductionVolume: 3000},
	}
	cost := domain.GeneralCostPoint{Date: m, AdminCost: 10000, MaintenanceCost: 8000, LogisticsCost: 4000}

	shares, degenerate, err := AllocateMonth(records, cost)
	require.NoError(t, err)
	assert.False(t, degenerate)
	require.Len(t, shares, 2)

	assert.InDelta(t, 2500, shares[0].AdminShare, 1e-9)
	assert.InDelta(t, 7500, shares[1].AdminShare, 1e-9)
	assert.InDelta(t, 2000, shares[0].MaintenanceShare, 1e-9)
	assert.InDelta(t, 3000, shares[1].LogisticsShare, 1e-9)

	assert.InDelta(t, cost.AdminCost, shares[0].AdminShare+shares[1].AdminShare, 1e-9)
	assert.InDelta(t, cost.Total(), shares[0].Total()+shares[1].Total(), 1e-9)
}

func TestAllocateMonth_ZeroProduction(t *testing.T) {
	m := month(2004, 6)
	records := []domain.ProductionRecord{
		{FieldID: 1, Date: m},
		{FieldID: 2, Date: m},
	}
	cost := domain.GeneralCostPoint{Date: m, AdminCost: 1, MaintenanceCost: 1, LogisticsCost: 1}

	shares, degenerate, err := AllocateMonth(records, cost)
	require.NoError(t, err)
	assert.True(t, degenerate)
	for _, s := range shares {
		assert.Zero(t, s.Total())
	}
}

func TestAllocateMonth_Empty(t *testing.T) {
	shares, degenerate, err := AllocateMonth(nil, domain.GeneralCostPoint{Date: month(2010, 1), AdminCost: 1})
	require.NoError(t, err)
	assert.True(t, degenerate)
	assert.Empty(t, shares)
}

func TestAllocateMonth_WrongMonth(t *testing.T) {
	records := []domain.ProductionRecord{{FieldID: 4, Date: month(2010, 2), ProductionVolume: 5}}
	_, _, err := AllocateMonth(records, domain.GeneralCostPoint{Date: month(2010, 1)})

	var dce *domain.DataContractError
	require.True(t, errors.As(err, &dce))
	assert.Equal(t, domain.KindUnexpectedDate, dce.Kind)
	assert.Equal(t, int64(4), dce.FieldID)
}

func TestAllocateMonth_NegativeVolume(t *testing.T) {
	m := month(2010, 1)
	_, _, err := AllocateMonth([]domain.ProductionRecord{{FieldID: 1, Date: m, ProductionVolume: -1}},
		domain.GeneralCostPoint{Date: m})
	assert.ErrorIs(t, err, domain.ErrDataContract)
}

func TestCostPolicy(t *testing.T) {
	p := DefaultCostPolicy()
	require.NoError(t, p.Validate())

	assert.Equal(t, 50000.0, p.VariableCost(1000))
	assert.Equal(t, 5000.0, p.FixedCost(0.001))
	assert.Zero(t, p.FixedCost(0))

	assert.ErrorIs(t, CostPolicy{UnitVariableCost: -1}.Validate(), ErrInvalidPolicy)
}

func TestCostPolicy_ValidateNamesFirstInvalidParameter(t *testing.T) {
	p := CostPolicy{UnitVariableCost: math.NaN(), FixedCostPerField: -1}
	for i := 0; i < 20; i++ {
		err := p.Validate()
		require.ErrorIs(t, err, ErrInvalidPolicy)
		assert.EqualError(t, err, "invalid cost policy: unit_variable_cost=NaN")
	}

	err := CostPolicy{UnitVariableCost: 50, FixedCostPerField: math.Inf(1)}.Validate()
	assert.EqualError(t, err, "invalid cost policy: fixed_cost_per_field=+Inf")
}
