package normalization

import (
	"fmt"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/ingestion"
)

// Dataset is the checked, horizon-aligned engine input.
type Dataset struct {
	Horizon domain.Horizon
	Fields  []domain.Field            // sorted by id
	Prices  []domain.PricePoint       // one per horizon month, date ASC
	Costs   []domain.GeneralCostPoint // one per horizon month, date ASC
}

// Normalize checks raw tables against the horizon and joins price with FX.
// The first contract violation aborts; the input tables are not modified.
func Normalize(t *ingestion.Tables, h domain.Horizon) (*Dataset, error) {
	if t == nil {
		return nil, fmt.Errorf("normalize: nil tables")
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	fields, err := CheckFields(t.Fields)
	if err != nil {
		return nil, err
	}
	prices, err := CheckUSDPrices(t.USDPrices, h)
	if err != nil {
		return nil, err
	}
	fx, err := CheckFXRates(t.FXRates, h)
	if err != nil {
		return nil, err
	}
	costs, err := CheckGeneralCosts(t.GeneralCosts, h)
	if err != nil {
		return nil, err
	}
	joined, err := JoinPriceFX(prices, fx)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Horizon: h,
		Fields:  fields,
		Prices:  joined,
		Costs:   costs,
	}, nil
}
