package metrics

import "oilfield-finance-lab/internal/domain"

// ProfitProfile summarises the company net profit path over the horizon.
type ProfitProfile struct {
	CumulativeNetProfit      float64
	LossMonths               int
	MaxConsecutiveLossMonths int
	MaxDrawdown              float64 // worst peak-to-trough of cumulative net profit
}

// ComputeProfitProfile walks aggregates in order. Aggregates must be date ASC.
func ComputeProfitProfile(aggregates []domain.MonthlyAggregate) ProfitProfile {
	var p ProfitProfile
	net := make([]float64, len(aggregates))
	for i, a := range aggregates {
		net[i] = a.NetProfit
		p.CumulativeNetProfit += a.NetProfit
		if a.NetProfit < 0 {
			p.LossMonths++
		}
	}
	p.MaxDrawdown = computeMaxDrawdown(net)
	p.MaxConsecutiveLossMonths = computeMaxConsecutiveLosses(net)
	return p
}

// computeMaxDrawdown calculates worst peak-to-trough on cumulative values.
// max_drawdown = MAX(peak_cumulative - trough_cumulative)
func computeMaxDrawdown(values []float64) float64 {
	cumulative := 0.0
	peak := 0.0
	maxDrawdown := 0.0

	for _, v := range values {
		cumulative += v
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	return maxDrawdown
}

// computeMaxConsecutiveLosses finds the longest streak of values < 0.
func computeMaxConsecutiveLosses(values []float64) int {
	maxStreak := 0
	currentStreak := 0

	for _, v := range values {
		if v < 0 {
			currentStreak++
			if currentStreak > maxStreak {
				maxStreak = currentStreak
			}
		} else {
			currentStreak = 0
		}
	}
	return maxStreak
}
