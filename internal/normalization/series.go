package normalization

import (
	"fmt"
	"math"
	"sort"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// monthly is implemented by every input series point.
type monthly interface {
	domain.USDPricePoint | domain.FXRatePoint | domain.GeneralCostPoint
}

// seriesRule describes how to check one series.
type seriesRule[T monthly] struct {
	table  string
	dateOf func(T) time.Time
	// values returns (column, value) pairs that must be finite and > 0.
	values func(T) []namedValue
}

type namedValue struct {
	column string
	value  float64
}

// checkSeries returns the points inside the horizon, sorted by date, after
// verifying they are unique, month-aligned, positive and cover every
// horizon month. Points outside the horizon are dropped.
func checkSeries[T monthly](points []T, h domain.Horizon, rule seriesRule[T]) ([]T, error) {
	byMonth := make(map[time.Time]T, h.Len())

	for _, p := range points {
		d := rule.dateOf(p)
		if !domain.IsMonthStart(d) {
			return nil, &domain.DataContractError{
				Kind:   domain.KindInvalidValue,
				Table:  rule.table,
				Column: "date",
				Date:   domain.MonthStart(d),
				Detail: fmt.Sprintf("date %s is not the first day of a month", d.Format(time.RFC3339)),
			}
		}
		if !h.Contains(d) {
			continue
		}
		if _, dup := byMonth[d]; dup {
			return nil, &domain.DataContractError{
				Kind:   domain.KindDuplicateDate,
				Table:  rule.table,
				Date:   d,
				Detail: "month appears more than once",
			}
		}
		for _, v := range rule.values(p) {
			if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value <= 0 {
				return nil, &domain.DataContractError{
					Kind:   domain.KindInvalidValue,
					Table:  rule.table,
					Column: v.column,
					Date:   d,
					Detail: fmt.Sprintf("value must be positive and finite, got %v", v.value),
				}
			}
		}
		byMonth[d] = p
	}

	for _, m := range h.Months() {
		if _, ok := byMonth[m]; !ok {
			return nil, &domain.DataContractError{
				Kind:   domain.KindMissingDate,
				Table:  rule.table,
				Date:   m,
				Detail: fmt.Sprintf("series does not cover horizon %s", h),
			}
		}
	}

	out := make([]T, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return rule.dateOf(out[i]).Before(rule.dateOf(out[j]))
	})
	return out, nil
}

// CheckUSDPrices validates the oil price series against the horizon.
func CheckUSDPrices(points []domain.USDPricePoint, h domain.Horizon) ([]domain.USDPricePoint, error) {
	return checkSeries(points, h, seriesRule[domain.USDPricePoint]{
		table:  domain.TableOilPrice,
		dateOf: func(p domain.USDPricePoint) time.Time { return p.Date },
		values: func(p domain.USDPricePoint) []namedValue {
			return []namedValue{{"usd_price", p.USDPrice}}
		},
	})
}

// CheckFXRates validates the FX series against the horizon.
func CheckFXRates(points []domain.FXRatePoint, h domain.Horizon) ([]domain.FXRatePoint, error) {
	return checkSeries(points, h, seriesRule[domain.FXRatePoint]{
		table:  domain.TableFXRate,
		dateOf: func(p domain.FXRatePoint) time.Time { return p.Date },
		values: func(p domain.FXRatePoint) []namedValue {
			return []namedValue{{"fx_rate", p.FXRate}}
		},
	})
}

// CheckGeneralCosts validates the general cost series against the horizon.
func CheckGeneralCosts(points []domain.GeneralCostPoint, h domain.Horizon) ([]domain.GeneralCostPoint, error) {
	return checkSeries(points, h, seriesRule[domain.GeneralCostPoint]{
		table:  domain.TableGeneralCost,
		dateOf: func(p domain.GeneralCostPoint) time.Time { return p.Date },
		values: func(p domain.GeneralCostPoint) []namedValue {
			return []namedValue{
				{"admin_cost", p.AdminCost},
				{"maintenance_cost", p.MaintenanceCost},
				{"logistics_cost", p.LogisticsCost},
			}
		},
	})
}
