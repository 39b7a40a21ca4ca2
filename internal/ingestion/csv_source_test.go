package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilfield-finance-lab/internal/domain"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeValidDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "fields.csv", "id,name,region,oil_type,capacity,start_date,notes\n"+
		"1,Campo 1,RJ,light,50000,2010-01-01,ignored\n"+
		"2,Campo 2,es,Heavy,30000.5,2011-06,\n")
	writeFile(t, dir, "oil_price.csv", "date,usd_price\n2010-01-01,60.5\n2010-02-01,61\n")
	writeFile(t, dir, "fx_rate.csv", "fx_rate,date\n2.5,2010-01-01\n2.6,2010-02-01\n")
	writeFile(t, dir, "general_cost.csv", "date,admin_cost,maintenance_cost,logistics_cost\n"+
		"2010-01-01,50000,40000,30000\n2010-02-01,50000,40000,30000\n")
	return dir
}

func TestCSVSource_Load(t *testing.T) {
	dir := writeValidDir(t)

	tables, err := NewCSVSource(dir).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, tables.Fields, 2)
	assert.Equal(t, domain.RegionES, tables.Fields[1].Region)
	assert.Equal(t, domain.OilTypeHeavy, tables.Fields[1].OilType)
	assert.Equal(t, 30000.5, tables.Fields[1].Capacity)
	assert.True(t, tables.Fields[1].StartDate.Equal(month(2011, 6)))

	require.Len(t, tables.USDPrices, 2)
	assert.Equal(t, 60.5, tables.USDPrices[0].USDPrice)

	// Column order in the header does not matter.
	require.Len(t, tables.FXRates, 2)
	assert.Equal(t, 2.6, tables.FXRates[1].FXRate)
	assert.True(t, tables.FXRates[1].Date.Equal(month(2010, 2)))

	require.Len(t, tables.GeneralCosts, 2)
	assert.Equal(t, 120000.0, tables.GeneralCosts[0].Total())
}

func TestCSVSource_MissingColumn(t *testing.T) {
	dir := writeValidDir(t)
	writeFile(t, dir, "general_cost.csv", "date,admin_cost,maintenance_cost\n2010-01-01,1,2\n")

	_, err := NewCSVSource(dir).Load(context.Background())
	var dce *domain.DataContractError
	require.True(t, errors.As(err, &dce), "got %v", err)
	assert.Equal(t, domain.KindMissingColumn, dce.Kind)
	assert.Equal(t, domain.TableGeneralCost, dce.Table)
	assert.Equal(t, "logistics_cost", dce.Column)
}

func TestReadTable_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		column string
	}{
		{"not a number", "date,usd_price\n2010-01-01,abc\n", "usd_price"},
		{"nan", "date,usd_price\n2010-01-01,NaN\n", "usd_price"},
		{"mid-month date", "date,usd_price\n2010-01-15,60\n", "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.input), OilPriceSchema, parseUSDPrice)
			var dce *domain.DataContractError
			require.True(t, errors.As(err, &dce), "got %v", err)
			assert.Equal(t, domain.KindInvalidValue, dce.Kind)
			assert.Equal(t, tt.column, dce.Column)
		})
	}
}

func TestReadTable_EmptyFile(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), FXRateSchema, parseFXRate)
	assert.ErrorIs(t, err, domain.ErrDataContract)
}

func TestWriteTables_ReadBack(t *testing.T) {
	dir := t.TempDir()
	in := &Tables{
		Fields: []domain.Field{{ID: 3, Name: "Campo 3", Region: domain.RegionBA, OilType: domain.OilTypeMedium,
			Capacity: 42000, StartDate: month(2009, 9)}},
		USDPrices:    []domain.USDPricePoint{{Date: month(2010, 1), USDPrice: 71.33}},
		FXRates:      []domain.FXRatePoint{{Date: month(2010, 1), FXRate: 2.41}},
		GeneralCosts: []domain.GeneralCostPoint{{Date: month(2010, 1), AdminCost: 51500, MaintenanceCost: 41200, LogisticsCost: 30900}},
	}
	require.NoError(t, WriteTables(dir, in))

	out, err := NewCSVSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in.Fields, out.Fields)
	assert.Equal(t, in.USDPrices[0].USDPrice, out.USDPrices[0].USDPrice)
	assert.Equal(t, in.GeneralCosts[0], out.GeneralCosts[0])
}
