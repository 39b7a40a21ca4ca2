package metrics

import (
	"math"
	"sort"
	"time"

	"oilfield-finance-lab/internal/allocation"
	"oilfield-finance-lab/internal/domain"
)

// Consolidate sums per-field financial records into one aggregate per month.
// Net profit is derived from the summed components, so it equals the sum of
// per-field net profit up to floating point rounding. Degenerate months carry
// their unallocated overhead separately. Output is date ASC.
func Consolidate(records []domain.FinancialRecord, degenerate []allocation.DegenerateMonth) []domain.MonthlyAggregate {
	byMonth := make(map[time.Time]*domain.MonthlyAggregate)
	for _, r := range records {
		agg, ok := byMonth[r.Date]
		if !ok {
			agg = &domain.MonthlyAggregate{Date: r.Date}
			byMonth[r.Date] = agg
		}
		agg.ProductionVolume += r.ProductionVolume
		agg.Revenue += r.Revenue
		agg.OperationalCost += r.OperationalCost
		agg.GeneralCost += r.GeneralCost
		if r.ProductionVolume > 0 {
			agg.ActiveFields++
		}
	}

	for _, d := range degenerate {
		if agg, ok := byMonth[d.Date]; ok {
			agg.UnallocatedGeneralCost += d.Unallocated
		}
	}

	out := make([]domain.MonthlyAggregate, 0, len(byMonth))
	for _, agg := range byMonth {
		agg.NetProfit = agg.Revenue - agg.OperationalCost - agg.GeneralCost
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ProfitIdentityDelta returns, per aggregate month, |aggregate net - sum of per-field net|.
// Months with no per-field records compare against zero.
func ProfitIdentityDelta(aggregates []domain.MonthlyAggregate, records []domain.FinancialRecord) map[time.Time]float64 {
	fieldNet := make(map[time.Time]float64)
	for _, r := range records {
		fieldNet[r.Date] += r.NetProfit
	}

	out := make(map[time.Time]float64, len(aggregates))
	for _, a := range aggregates {
		out[a.Date] = math.Abs(a.NetProfit - fieldNet[a.Date])
	}
	return out
}
