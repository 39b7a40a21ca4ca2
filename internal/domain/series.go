package domain

import "time"

// USDPricePoint is one month of the oil price series, in USD per barrel.
type USDPricePoint struct {
	Date     time.Time
	USDPrice float64
}

// FXRatePoint is one month of the FX series (local currency per USD).
type FXRatePoint struct {
	Date   time.Time
	FXRate float64
}

// PricePoint is the joined price/FX record for one month.
type PricePoint struct {
	Date     time.Time
	USDPrice float64
	FXRate   float64
}

// LocalPrice returns the barrel price in local currency.
func (p PricePoint) LocalPrice() float64 {
	return p.USDPrice * p.FXRate
}

// GeneralCostPoint holds the company-wide overhead for one month.
// Shared by every field active that month.
type GeneralCostPoint struct {
	Date            time.Time
	AdminCost       float64
	MaintenanceCost float64
	LogisticsCost   float64
}

// Total returns the sum of all cost components.
func (c GeneralCostPoint) Total() float64 {
	return c.AdminCost + c.MaintenanceCost + c.LogisticsCost
}
