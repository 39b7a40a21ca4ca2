package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validField() Field {
	return Field{
		ID:        1,
		Name:      "Campo 1",
		Region:    RegionRJ,
		OilType:   OilTypeLight,
		Capacity:  50000,
		StartDate: month(2010, 1),
	}
}

func TestFieldValidate(t *testing.T) {
	f := validField()
	require.NoError(t, f.Validate())

	tests := []struct {
		name   string
		mutate func(*Field)
		column string
	}{
		{"bad id", func(f *Field) { f.ID = 0 }, "id"},
		{"bad region", func(f *Field) { f.Region = "SP" }, "region"},
		{"bad oil type", func(f *Field) { f.OilType = "bitumen" }, "oil_type"},
		{"zero capacity", func(f *Field) { f.Capacity = 0 }, "capacity"},
		{"mid-month start", func(f *Field) { f.StartDate = f.StartDate.AddDate(0, 0, 3) }, "start_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validField()
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDataContract))

			var dce *DataContractError
			require.True(t, errors.As(err, &dce))
			assert.Equal(t, KindInvalidValue, dce.Kind)
			assert.Equal(t, tt.column, dce.Column)
		})
	}
}

func TestDataContractErrorMessage(t *testing.T) {
	err := &DataContractError{
		Kind:   KindMissingPrice,
		Table:  TableOilPrice,
		Date:   month(2010, 3),
		Detail: "no price for month",
	}
	assert.Equal(t, "data contract: missing_price table=oil_price date=2010-03-01: no price for month", err.Error())
}

func TestPricePointLocalPrice(t *testing.T) {
	p := PricePoint{USDPrice: 80, FXRate: 5}
	assert.Equal(t, 400.0, p.LocalPrice())
}
