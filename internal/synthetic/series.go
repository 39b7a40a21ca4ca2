package synthetic

import (
	"math"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/production"
)

// Price model parameters (USD per barrel).
const (
	priceBase      = 60.0
	priceAmplitude = 15.0
	pricePhaseEnd  = 12.0
	priceNoiseStd  = 3.0
	priceFloor     = 25.0
)

// FX model parameters (local currency per USD).
const (
	fxBase      = 2.5
	fxAmplitude = 0.5
	fxPhaseEnd  = 10.0
	fxNoiseStd  = 0.1
	fxMin       = 1.5
	fxMax       = 6.0
)

// Calendar-year shocks applied multiplicatively before smoothing.
var (
	priceShocks = map[int]float64{2008: 1.6, 2009: 0.6, 2014: 0.7, 2020: 0.5, 2022: 1.4}
	fxShocks    = map[int]float64{2015: 1.4, 2020: 1.3, 2022: 1.2}
)

// USDPrices generates one price per horizon month, rounded to cents.
func (g *Generator) USDPrices(h domain.Horizon) []domain.USDPricePoint {
	months := h.Months()
	r := g.rng(streamPrice)
	phase := linspace(0, pricePhaseEnd, len(months))

	raw := make([]float64, len(months))
	for i, m := range months {
		v := priceBase + priceAmplitude*math.Sin(phase[i]) + r.NormFloat64()*priceNoiseStd
		if f, ok := priceShocks[m.Year()]; ok {
			v *= f
		}
		raw[i] = math.Max(v, priceFloor)
	}

	smoothed := centeredMean3(raw)
	out := make([]domain.USDPricePoint, len(months))
	for i, m := range months {
		out[i] = domain.USDPricePoint{Date: m, USDPrice: round(smoothed[i], 2)}
	}
	return out
}

// FXRates generates one exchange rate per horizon month, rounded to 2 places.
func (g *Generator) FXRates(h domain.Horizon) []domain.FXRatePoint {
	months := h.Months()
	r := g.rng(streamFX)
	phase := linspace(0, fxPhaseEnd, len(months))

	raw := make([]float64, len(months))
	for i, m := range months {
		v := fxBase + fxAmplitude*math.Sin(phase[i]) + r.NormFloat64()*fxNoiseStd
		if f, ok := fxShocks[m.Year()]; ok {
			v *= f
		}
		raw[i] = v
	}

	smoothed := centeredMean3(raw)
	out := make([]domain.FXRatePoint, len(months))
	for i, m := range months {
		v := math.Min(fxMax, math.Max(fxMin, smoothed[i]))
		out[i] = domain.FXRatePoint{Date: m, FXRate: round(v, 2)}
	}
	return out
}

// CostBase is the monthly general cost at the first horizon year.
type CostBase struct {
	Admin       float64
	Maintenance float64
	Logistics   float64
	Inflation   float64 // yearly rate
}

// DefaultCostBase returns 50k/40k/30k with 3% yearly inflation.
func DefaultCostBase() CostBase {
	return CostBase{Admin: 50000, Maintenance: 40000, Logistics: 30000, Inflation: 0.03}
}

// GeneralCosts generates one cost point per horizon month. Costs grow by
// yearly inflation from the horizon start year and carry the same monthly
// seasonality as production.
func (g *Generator) GeneralCosts(h domain.Horizon, base CostBase) []domain.GeneralCostPoint {
	months := h.Months()
	startYear := h.Start.Year()
	out := make([]domain.GeneralCostPoint, len(months))
	for i, m := range months {
		k := math.Pow(1+base.Inflation, float64(m.Year()-startYear)) * production.Seasonality(m.Month())
		out[i] = domain.GeneralCostPoint{
			Date:            m,
			AdminCost:       base.Admin * k,
			MaintenanceCost: base.Maintenance * k,
			LogisticsCost:   base.Logistics * k,
		}
	}
	return out
}
